// Package model 包含了应用的数据模型定义。
package model

// CreateSessionResponse 是创建会话接口的响应体。
// Message 为第一条待回答的问题。
type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// ChatRequest 是会话消息接口的请求体。
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse 是会话消息接口的响应体。
type ChatResponse struct {
	Responses           []string     `json:"responses"`
	PreferencesComplete bool         `json:"preferences_complete"`
	Preferences         *Preferences `json:"preferences"`
}

// PrefsSnapshot 是流式聊天请求携带的偏好快照。
// 所有字段均可缺省，空字符串表示未设置。
type PrefsSnapshot struct {
	Tone        string   `json:"tone,omitempty"`
	Format      string   `json:"format,omitempty"`
	Language    string   `json:"language,omitempty"`
	Interaction string   `json:"interaction,omitempty"`
	Topics      []string `json:"topics,omitempty"`
}

// StreamChatRequest 是流式聊天（Agent 事件流）接口的请求体。
type StreamChatRequest struct {
	SessionID     string        `json:"session_id"`
	Message       string        `json:"message"`
	PrefsSnapshot PrefsSnapshot `json:"prefs_snapshot"`
}
