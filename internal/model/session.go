// Package model 包含了应用的数据模型定义。
package model

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// 消息角色常量。
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// PreferenceCount 是偏好槽位的数量，与提问列表一一对应。
const PreferenceCount = 5

// Preferences 保存五个偏好槽位，字段声明顺序即提问顺序。
// 未收集的槽位为 nil，序列化后呈现为 null。
type Preferences struct {
	ToneOfVoice      *string `json:"tone_of_voice"`
	ResponseFormat   *string `json:"response_format"`
	Language         *string `json:"language"`
	InteractionStyle *string `json:"interaction_style"`
	NewsTopics       *string `json:"news_topics"`
}

// slots 按提问顺序返回各槽位的指针，供按下标读写。
func (p *Preferences) slots() [PreferenceCount]**string {
	return [PreferenceCount]**string{
		&p.ToneOfVoice,
		&p.ResponseFormat,
		&p.Language,
		&p.InteractionStyle,
		&p.NewsTopics,
	}
}

// Slot 返回指定下标的槽位值，未收集时返回空字符串和 false。
func (p *Preferences) Slot(index int) (string, bool) {
	if index < 0 || index >= PreferenceCount {
		return "", false
	}
	v := *p.slots()[index]
	if v == nil {
		return "", false
	}
	return *v, true
}

// setSlot 写入指定下标的槽位。
func (p *Preferences) setSlot(index int, value string) {
	if index < 0 || index >= PreferenceCount {
		return
	}
	*p.slots()[index] = &value
}

// IsComplete 当且仅当所有槽位均已填写非空值时返回 true。
func (p *Preferences) IsComplete() bool {
	for _, s := range p.slots() {
		if *s == nil || **s == "" {
			return false
		}
	}
	return true
}

// ChatMessage 代表会话历史中的单条消息。
type ChatMessage struct {
	Role      string    `json:"role"` // "user" 或 "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Session 代表一次偏好收集会话。
// QuestionIndex 是提问进度游标，取值范围 [0, PreferenceCount]；
// 由于空白回答会被拒绝，游标到达 PreferenceCount 与
// Preferences.IsComplete() 恒等价。
type Session struct {
	ID            string
	Preferences   Preferences
	Conversation  []ChatMessage
	QuestionIndex int

	// 同一会话内的消息处理必须串行，控制器在整个请求期间持有该锁。
	mu sync.Mutex
}

// NewSession 创建一个空白会话并分配进程内唯一的标识符。
func NewSession() *Session {
	return &Session{ID: uuid.NewString()}
}

// Lock 获取会话级互斥锁。
func (s *Session) Lock() { s.mu.Lock() }

// Unlock 释放会话级互斥锁。
func (s *Session) Unlock() { s.mu.Unlock() }

// IsComplete 当所有偏好槽位均已收集时返回 true。
func (s *Session) IsComplete() bool {
	return s.Preferences.IsComplete()
}

// RecordAnswer 将回答记录到当前游标对应的槽位并推进游标。
// 收集已完成时本方法是空操作，防止后续输入覆盖已有偏好；
// 去除首尾空白后为空的回答同样不被记录，返回 false 以便
// 调用方重新提问当前问题。
func (s *Session) RecordAnswer(answer string) bool {
	if s.QuestionIndex >= PreferenceCount {
		return false
	}
	trimmed := strings.TrimSpace(answer)
	if trimmed == "" {
		return false
	}
	s.Preferences.setSlot(s.QuestionIndex, trimmed)
	s.QuestionIndex++
	return true
}

// ResetPreferences 清空全部偏好并将提问游标归零。
// 会话历史刻意保留：历史是证据，不是状态。
func (s *Session) ResetPreferences() {
	s.Preferences = Preferences{}
	s.QuestionIndex = 0
}

// AppendMessage 向会话历史追加一条消息。历史只增不减。
func (s *Session) AppendMessage(role, content string) {
	s.Conversation = append(s.Conversation, ChatMessage{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	})
}
