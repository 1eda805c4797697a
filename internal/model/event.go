// Package model 包含了应用的数据模型定义。
package model

// Agent 事件类型常量。
const (
	EventTypeToolCall   = "tool_call"
	EventTypeToolResult = "tool_result"
	EventTypeContent    = "content"
	EventTypeDone       = "done"
)

// Event 是 Agent 事件流中的单个事件。
// 按 Type 取用不同字段：tool_call 携带 Name+Args，
// tool_result 携带 Name+Result，content 携带 Text。
type Event struct {
	Type   string                 `json:"type"`
	Name   string                 `json:"name,omitempty"`
	Args   map[string]interface{} `json:"args,omitempty"`
	Result map[string]interface{} `json:"result,omitempty"`
	Text   string                 `json:"text,omitempty"`
}

// DoneEvent 返回事件流的结束哨兵。
func DoneEvent() Event {
	return Event{Type: EventTypeDone}
}
