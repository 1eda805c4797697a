// Package llm provides a client for invoking a local text-generation model.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"news-agent-go/internal/config"
)

// ErrUnavailable 表示文本生成协作方被禁用或不可达。
// 调用方应将其视为正常情况并走确定性回退路径，而非错误上抛。
var ErrUnavailable = errors.New("llm: generation unavailable")

// Client defines the interface for a text-generation client.
type Client interface {
	// Generate 将 prompt 交给本地模型生成文本。单次尝试，超时受配置约束；
	// 协作方被禁用时返回 ErrUnavailable。
	Generate(ctx context.Context, prompt string) (string, error)
}

type ollamaClient struct {
	cfg    config.LLMConfig
	client *http.Client
}

// NewClient creates a new text-generation client from the config.
func NewClient(cfg config.LLMConfig) Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ollamaClient{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

// generateRequest 是 Ollama generate 接口的请求体。
type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// generateResponse 是 Ollama generate 接口的响应体。
type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

func (c *ollamaClient) Generate(ctx context.Context, prompt string) (string, error) {
	if !c.cfg.Enabled {
		return "", ErrUnavailable
	}

	reqBody := generateRequest{
		Model:  c.cfg.Model,
		Prompt: prompt,
		Stream: false,
	}
	reqBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.cfg.BaseURL+"/api/generate", bytes.NewReader(reqBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call generate api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("generate api returned non-200 status: %s, body: %s", resp.Status, string(bodyBytes))
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("failed to decode generate response: %w", err)
	}

	text := strings.TrimSpace(genResp.Response)
	if text == "" {
		return "", ErrUnavailable
	}
	return text, nil
}
