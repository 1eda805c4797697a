// Package service 包含了应用的业务逻辑层。
package service

import (
	"context"
	"strings"

	"news-agent-go/internal/model"
	"news-agent-go/internal/repository"
)

// defaultNewsCount 是单条新闻回复包含的文章数量。
const defaultNewsCount = 3

// command 是消息中可识别的显式指令。
// 先解析指令再落入默认的记录回答路径。
type command int

const (
	cmdNone command = iota
	cmdReset
	cmdMore
)

// parseCommand 对输入做大小写不敏感的精确匹配。
func parseCommand(input string) command {
	switch strings.ToLower(input) {
	case "reset":
		return cmdReset
	case "more", "next", "another":
		return cmdMore
	default:
		return cmdNone
	}
}

// SessionService 定义了会话式偏好收集的业务接口。
type SessionService interface {
	// CreateSession 创建新会话并返回第一条问题。
	CreateSession() *model.CreateSessionResponse
	// HandleMessage 处理一条用户消息，返回按序排列的助手回复、
	// 收集完成标志和偏好快照。会话不存在时返回 ErrSessionNotFound。
	HandleMessage(ctx context.Context, sessionID, message string) (*model.ChatResponse, error)
	// GetConversation 返回会话的完整消息历史。
	GetConversation(sessionID string) ([]model.ChatMessage, error)
}

type sessionService struct {
	repo        repository.SessionRepository
	newsService NewsService
}

// NewSessionService 创建一个新的 SessionService 实例。
func NewSessionService(repo repository.SessionRepository, newsService NewsService) SessionService {
	return &sessionService{repo: repo, newsService: newsService}
}

// CreateSession 创建会话，并把第一条问题写入会话历史。
func (s *sessionService) CreateSession() *model.CreateSessionResponse {
	session := s.repo.Create()
	first := Questions[0]
	session.AppendMessage(model.RoleAssistant, first)
	return &model.CreateSessionResponse{
		SessionID: session.ID,
		Message:   first,
	}
}

// HandleMessage 是核心状态机：按优先级依次处理 reset 指令、
// more 指令、收集中的回答记录，以及收集完成后的隐式续订。
// 用户消息与产生的每条助手回复都会写入会话历史。
func (s *sessionService) HandleMessage(ctx context.Context, sessionID, message string) (*model.ChatResponse, error) {
	session, err := s.repo.Get(sessionID)
	if err != nil {
		return nil, err
	}

	// 同一会话的消息处理串行化，避免游标与偏好丢失更新
	session.Lock()
	defer session.Unlock()

	session.AppendMessage(model.RoleUser, message)

	var responses []string
	complete := false

	switch parseCommand(strings.TrimSpace(message)) {
	case cmdReset:
		session.ResetPreferences()
		responses = append(responses, s.askNext(session))

	case cmdMore:
		if session.IsComplete() {
			responses = append(responses, s.appendNews(ctx, session))
			complete = true
		} else {
			// 收集尚未完成时，指令与普通消息同样只得到下一条问题
			responses = append(responses, s.askNext(session))
		}

	default:
		if !session.IsComplete() {
			if !session.RecordAnswer(message) {
				// 空白回答不被记录，重新提问当前问题
				responses = append(responses, s.askNext(session))
				break
			}
			if session.QuestionIndex < model.PreferenceCount {
				responses = append(responses, s.askNext(session))
				break
			}
			// 最后一个槽位刚被填上，立即生成第一条新闻回复
			responses = append(responses, s.appendNews(ctx, session))
			complete = true
			break
		}
		// 偏好已集齐，任何其他输入都视为隐式的 more
		responses = append(responses, s.appendNews(ctx, session))
		complete = true
	}

	prefs := session.Preferences
	return &model.ChatResponse{
		Responses:           responses,
		PreferencesComplete: complete,
		Preferences:         &prefs,
	}, nil
}

// GetConversation 返回会话历史的副本。
func (s *sessionService) GetConversation(sessionID string) ([]model.ChatMessage, error) {
	session, err := s.repo.Get(sessionID)
	if err != nil {
		return nil, err
	}
	session.Lock()
	defer session.Unlock()
	history := make([]model.ChatMessage, len(session.Conversation))
	copy(history, session.Conversation)
	return history, nil
}

// askNext 取出当前游标对应的问题，写入历史并返回。
// 调用方保证游标处于有效区间。
func (s *sessionService) askNext(session *model.Session) string {
	question := Questions[session.QuestionIndex]
	session.AppendMessage(model.RoleAssistant, question)
	return question
}

// appendNews 生成一条新闻回复并写入历史。
func (s *sessionService) appendNews(ctx context.Context, session *model.Session) string {
	news := s.newsService.GenerateNewsResponse(ctx, &session.Preferences, defaultNewsCount)
	session.AppendMessage(model.RoleAssistant, news)
	return news
}
