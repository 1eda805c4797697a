// Package exa provides a client for the Exa news-search collaborator.
//
// MockMode（默认开启）或缺少 API Key 时不发起任何网络请求，
// 返回确定性的本地文章数据；真实请求失败时同样回退到本地数据，
// 检索失败永远不会上抛给调用方。
package exa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"news-agent-go/internal/config"
	"news-agent-go/internal/model"
	"news-agent-go/pkg/log"
)

// FetchParams 是新闻检索的参数。
type FetchParams struct {
	Query       string `json:"query"`
	NumResults  int    `json:"num_results"`
	RecencyDays int    `json:"recency_days"`
}

// Client 定义了新闻搜索协作方的接口。
type Client interface {
	// SearchNews 检索指定主题的新闻。任何失败都在内部回退为
	// 确定性的 mock 数据，因此本方法总能返回非空结果。
	SearchNews(ctx context.Context, params FetchParams) []model.NewsArticle
}

type exaClient struct {
	cfg    config.NewsConfig
	client *http.Client
}

// NewClient 根据配置创建一个新的 Exa 客户端。
func NewClient(cfg config.NewsConfig) Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &exaClient{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

// searchRequest 对应 Exa 搜索接口的请求体。
type searchRequest struct {
	Query          string   `json:"query"`
	Type           string   `json:"type"`
	NumResults     int      `json:"numResults"`
	RecencyDays    int      `json:"recencyDays"`
	IncludeDomains []string `json:"includeDomains"`
	UseAutoprompt  bool     `json:"useAutoprompt"`
}

// searchResponse 对应 Exa 搜索接口的响应体。
type searchResponse struct {
	Results []struct {
		Title         string `json:"title"`
		URL           string `json:"url"`
		Text          string `json:"text"`
		PublishedDate string `json:"publishedDate"`
		Domain        string `json:"domain"`
	} `json:"results"`
}

func (c *exaClient) SearchNews(ctx context.Context, params FetchParams) []model.NewsArticle {
	if c.cfg.MockMode || c.cfg.ExaAPIKey == "" {
		return MockArticles(params.Query, params.NumResults)
	}

	articles, err := c.search(ctx, params)
	if err != nil {
		log.Warnf("Exa 检索失败，回退到本地数据: %v", err)
		return MockArticles(params.Query, params.NumResults)
	}
	if len(articles) == 0 {
		// 所有记录均缺少必需字段时走同样的回退，保证管道永不为空
		return MockArticles(params.Query, params.NumResults)
	}
	return articles
}

func (c *exaClient) search(ctx context.Context, params FetchParams) ([]model.NewsArticle, error) {
	reqBody := searchRequest{
		Query:          params.Query,
		Type:           "news",
		NumResults:     params.NumResults,
		RecencyDays:    params.RecencyDays,
		IncludeDomains: []string{},
		UseAutoprompt:  true,
	}
	reqBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.cfg.ExaBaseURL+"/search", bytes.NewReader(reqBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.ExaAPIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call search api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search api returned non-200 status: %s", resp.Status)
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	out := make([]model.NewsArticle, 0, len(searchResp.Results))
	for _, item := range searchResp.Results {
		// 缺少必需字段的记录直接跳过，不作为致命错误
		if item.Title == "" || item.URL == "" {
			continue
		}
		article := model.NewsArticle{
			Title:   item.Title,
			URL:     item.URL,
			Snippet: item.Text,
			Source:  item.Domain,
		}
		if item.PublishedDate != "" {
			if ts, perr := time.Parse(time.RFC3339, item.PublishedDate); perr == nil {
				article.PublishedAt = &ts
			}
		}
		out = append(out, article)
	}
	return out, nil
}

// MockArticles 生成确定性的本地文章数据，供开发与测试使用。
// 标题内嵌查询词，发布时间从当前时刻起逐条递减 3 小时。
func MockArticles(query string, n int) []model.NewsArticle {
	now := time.Now().UTC()
	articles := make([]model.NewsArticle, 0, n)
	for i := 0; i < n; i++ {
		published := now.Add(-time.Duration(i*3) * time.Hour)
		articles = append(articles, model.NewsArticle{
			Title:       fmt.Sprintf("Mock headline about %s #%d", query, i+1),
			URL:         fmt.Sprintf("https://example.com/%s/%d", strings.ReplaceAll(query, " ", "-"), i+1),
			Snippet:     "This is a mock snippet for development.",
			PublishedAt: &published,
			Source:      "example.com",
		})
	}
	return articles
}
