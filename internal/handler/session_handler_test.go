package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"news-agent-go/internal/config"
	"news-agent-go/internal/model"
	"news-agent-go/internal/repository"
	"news-agent-go/internal/service"
	"news-agent-go/pkg/exa"
	"news-agent-go/pkg/llm"
	"news-agent-go/pkg/log"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	log.Init("error", "console", "")
	os.Exit(m.Run())
}

func newTestRouter() *gin.Engine {
	repo := repository.NewSessionRepository()
	newsService := service.NewNewsService(llm.NewClient(config.LLMConfig{Enabled: false}))
	sessionService := service.NewSessionService(repo, newsService)
	agentService := service.NewAgentService(exa.NewClient(config.NewsConfig{MockMode: true}), config.AgentConfig{})

	r := gin.New()
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	sessionHandler := NewSessionHandler(sessionService)
	apiV1 := r.Group("/api/v1")
	{
		s := apiV1.Group("/session")
		{
			s.POST("", sessionHandler.CreateSession)
			s.POST("/:sessionId/message", sessionHandler.PostMessage)
			s.GET("/:sessionId/conversation", sessionHandler.GetConversation)
		}
	}
	chatHandler := NewChatHandler(agentService)
	r.POST("/chat", chatHandler.Chat)
	r.GET("/chat/ws", chatHandler.HandleWS)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createSession(t *testing.T, r *gin.Engine) model.CreateSessionResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/session", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp model.CreateSessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestCreateSessionEndpoint(t *testing.T) {
	r := newTestRouter()
	resp := createSession(t, r)
	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, service.Questions[0], resp.Message)
}

func TestPostMessageFlow(t *testing.T) {
	r := newTestRouter()
	created := createSession(t, r)
	path := fmt.Sprintf("/api/v1/session/%s/message", created.SessionID)

	w := postJSON(t, r, path, model.ChatRequest{Message: "casual"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp model.ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Responses, 1)
	assert.Equal(t, service.Questions[1], resp.Responses[0])
	assert.False(t, resp.PreferencesComplete)
	require.NotNil(t, resp.Preferences)
	require.NotNil(t, resp.Preferences.ToneOfVoice)
	assert.Equal(t, "casual", *resp.Preferences.ToneOfVoice)
	assert.Nil(t, resp.Preferences.ResponseFormat)
}

func TestPostMessageUnknownSession(t *testing.T) {
	r := newTestRouter()
	w := postJSON(t, r, "/api/v1/session/no-such-session/message", model.ChatRequest{Message: "hello"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPostMessageInvalidBody(t *testing.T) {
	r := newTestRouter()
	created := createSession(t, r)
	path := fmt.Sprintf("/api/v1/session/%s/message", created.SessionID)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetConversationEndpoint(t *testing.T) {
	r := newTestRouter()
	created := createSession(t, r)
	postJSON(t, r, fmt.Sprintf("/api/v1/session/%s/message", created.SessionID), model.ChatRequest{Message: "casual"})

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/session/%s/conversation", created.SessionID), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Code    int                 `json:"code"`
		Message string              `json:"message"`
		Data    []model.ChatMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, http.StatusOK, envelope.Code)
	require.Len(t, envelope.Data, 3)
	assert.Equal(t, model.RoleAssistant, envelope.Data[0].Role)
	assert.Equal(t, model.RoleUser, envelope.Data[1].Role)
}

func TestGetConversationUnknownSession(t *testing.T) {
	r := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/session/no-such-session/conversation", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
