// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"errors"
	"net/http"

	"news-agent-go/internal/model"
	"news-agent-go/internal/repository"
	"news-agent-go/internal/service"

	"github.com/gin-gonic/gin"
)

// SessionHandler 处理会话式偏好收集相关的 API 请求。
type SessionHandler struct {
	service service.SessionService
}

// NewSessionHandler 创建一个新的 SessionHandler。
func NewSessionHandler(service service.SessionService) *SessionHandler {
	return &SessionHandler{service: service}
}

// CreateSession 处理创建会话的请求，返回会话 ID 和第一条问题。
func (h *SessionHandler) CreateSession(c *gin.Context) {
	resp := h.service.CreateSession()
	c.JSON(http.StatusOK, resp)
}

// PostMessage 处理一条用户消息：记录回答、提出下一条问题，
// 或在偏好集齐后返回新闻简报。
func (h *SessionHandler) PostMessage(c *gin.Context) {
	sessionID := c.Param("sessionId")

	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    http.StatusBadRequest,
			"message": "无效的请求体",
			"data":    nil,
		})
		return
	}

	resp, err := h.service.HandleMessage(c.Request.Context(), sessionID, req.Message)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			// 未知会话必须显式报错，而不是悄悄新建
			c.JSON(http.StatusNotFound, gin.H{
				"code":    http.StatusNotFound,
				"message": "Session not found",
				"data":    nil,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    http.StatusInternalServerError,
			"message": "Failed to handle message",
			"data":    nil,
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetConversation 返回指定会话的完整消息历史。
func (h *SessionHandler) GetConversation(c *gin.Context) {
	sessionID := c.Param("sessionId")

	history, err := h.service.GetConversation(sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"code":    http.StatusNotFound,
				"message": "Session not found",
				"data":    nil,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    http.StatusInternalServerError,
			"message": "Failed to retrieve conversation history",
			"data":    nil,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "success",
		"data":    history,
	})
}
