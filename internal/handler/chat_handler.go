// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"news-agent-go/internal/model"
	"news-agent-go/internal/service"
	"news-agent-go/pkg/log"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // 允许所有来源
	},
}

// ChatHandler 负责 Agent 事件流的两种下发方式：
// SSE（POST /chat）与 WebSocket（GET /chat/ws）。
// 两条通路共享同一套事件序列，仅传输格式不同。
type ChatHandler struct {
	agentService service.AgentService
}

// NewChatHandler 创建一个新的 ChatHandler。
func NewChatHandler(agentService service.AgentService) *ChatHandler {
	return &ChatHandler{agentService: agentService}
}

// Chat 以 SSE 下发 Agent 事件流。每个事件序列化为一行 JSON，
// 以 data: 前缀发送，最后追加 done 哨兵事件。
func (h *ChatHandler) Chat(c *gin.Context) {
	var req model.StreamChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    http.StatusBadRequest,
			"message": "无效的请求体",
			"data":    nil,
		})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	events := h.agentService.RunAgent(c.Request.Context(), req.Message, req.PrefsSnapshot)
	events = append(events, model.DoneEvent())
	for _, ev := range events {
		b, err := json.Marshal(ev)
		if err != nil {
			log.Errorf("序列化事件失败: %v", err)
			continue
		}
		if _, err := fmt.Fprintf(c.Writer, "data: %s\n\n", b); err != nil {
			log.Warnf("SSE 写入失败，客户端可能已断开: %v", err)
			return
		}
		c.Writer.Flush()
	}
}

// HandleWS 处理 WebSocket 连接上的流式聊天。
// 每条入站消息跑一轮 Agent，事件逐条以 JSON 文本帧下发，
// 每轮以 done 事件收尾。
func (h *ChatHandler) HandleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("WebSocket 升级失败", err)
		return
	}
	defer conn.Close()

	log.Info("WebSocket 连接已建立")

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			log.Warnf("从 WebSocket 读取消息失败: %v", err)
			break
		}

		var req model.StreamChatRequest
		if err := json.Unmarshal(message, &req); err != nil {
			// 非 JSON 输入按纯文本消息处理，偏好快照为空
			req = model.StreamChatRequest{Message: string(message)}
		}

		events := h.agentService.RunAgent(c.Request.Context(), req.Message, req.PrefsSnapshot)
		events = append(events, model.DoneEvent())
		for _, ev := range events {
			b, merr := json.Marshal(ev)
			if merr != nil {
				log.Errorf("序列化事件失败: %v", merr)
				continue
			}
			if werr := conn.WriteMessage(websocket.TextMessage, b); werr != nil {
				log.Warnf("WebSocket 写入失败: %v", werr)
				return
			}
		}
	}
}
