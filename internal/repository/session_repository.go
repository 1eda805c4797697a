// Package repository 提供了数据访问层的实现。
package repository

import (
	"errors"
	"sync"

	"news-agent-go/internal/model"
)

// ErrSessionNotFound 表示请求的会话不存在于存储中。
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository 定义了会话存储的操作接口。
// 存储为进程生命周期内的内存映射，不做持久化，也不做过期淘汰。
type SessionRepository interface {
	// Create 创建并登记一个新会话。
	Create() *model.Session
	// Get 按 ID 查找会话，不存在时返回 ErrSessionNotFound。纯查询，不做任何变更。
	Get(id string) (*model.Session, error)
	// Reset 清空指定会话的偏好与提问游标，历史保留。
	// 不存在时返回 ErrSessionNotFound。
	Reset(id string) (*model.Session, error)
}

type memorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*model.Session
}

// NewSessionRepository 创建一个新的内存 SessionRepository 实例。
// 存储实例由调用方显式构造并注入，不使用包级全局变量。
func NewSessionRepository() SessionRepository {
	return &memorySessionRepository{sessions: make(map[string]*model.Session)}
}

func (r *memorySessionRepository) Create() *model.Session {
	session := model.NewSession()
	r.mu.Lock()
	r.sessions[session.ID] = session
	r.mu.Unlock()
	return session
}

func (r *memorySessionRepository) Get(id string) (*model.Session, error) {
	r.mu.RLock()
	session, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (r *memorySessionRepository) Reset(id string) (*model.Session, error) {
	session, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	session.ResetPreferences()
	return session, nil
}
