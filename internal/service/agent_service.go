// Package service 包含了应用的业务逻辑层。
package service

import (
	"context"
	"fmt"
	"strings"

	"news-agent-go/internal/config"
	"news-agent-go/internal/model"
	"news-agent-go/pkg/exa"
)

// Agent 可调用的工具名。
const (
	toolNewsFetcher    = "exa_news_fetcher"
	toolNewsSummarizer = "news_summarizer"
)

// newsKeywords 触发新闻检索的关键词集合。
var newsKeywords = []string{"news", "latest", "headlines"}

// AgentService 定义了启发式 Agent 的接口。
// 每次调用无状态，产出一个有限的、顺序确定的事件序列；
// 是否增量下发由传输层决定，与事件顺序无关。
type AgentService interface {
	RunAgent(ctx context.Context, message string, prefs model.PrefsSnapshot) []model.Event
}

type agentService struct {
	exaClient exa.Client
	cfg       config.AgentConfig
}

// NewAgentService 创建一个新的 AgentService 实例。
func NewAgentService(exaClient exa.Client, cfg config.AgentConfig) AgentService {
	if cfg.FetchResults <= 0 {
		cfg.FetchResults = 5
	}
	if cfg.RecencyDays <= 0 {
		cfg.RecencyDays = 7
	}
	return &agentService{exaClient: exaClient, cfg: cfg}
}

// RunAgent 用简单启发式决定是否检索新闻：消息包含新闻类关键词，
// 或偏好快照携带主题时，走「检索 + 摘要」路径；否则原样回显。
func (s *agentService) RunAgent(ctx context.Context, message string, prefs model.PrefsSnapshot) []model.Event {
	lower := strings.ToLower(message)
	wantsNews := false
	for _, kw := range newsKeywords {
		if strings.Contains(lower, kw) {
			wantsNews = true
			break
		}
	}
	hasTopics := len(prefs.Topics) > 0

	if !wantsNews && !hasTopics {
		return []model.Event{{
			Type: model.EventTypeContent,
			Text: fmt.Sprintf("You said: %s", message),
		}}
	}

	// 有主题偏好时用主题拼查询串，否则直接用用户原话
	query := message
	if hasTopics {
		query = strings.Join(prefs.Topics, ", ")
	}
	params := exa.FetchParams{
		Query:       query,
		NumResults:  s.cfg.FetchResults,
		RecencyDays: s.cfg.RecencyDays,
	}

	events := make([]model.Event, 0, 5)
	events = append(events, model.Event{
		Type: model.EventTypeToolCall,
		Name: toolNewsFetcher,
		Args: map[string]interface{}{
			"query":        params.Query,
			"num_results":  params.NumResults,
			"recency_days": params.RecencyDays,
		},
	})

	articles := s.exaClient.SearchNews(ctx, params)
	events = append(events, model.Event{
		Type:   model.EventTypeToolResult,
		Name:   toolNewsFetcher,
		Result: map[string]interface{}{"articles": articles},
	})

	events = append(events, model.Event{
		Type: model.EventTypeToolCall,
		Name: toolNewsSummarizer,
		Args: map[string]interface{}{},
	})

	summary := summarizeNews(articles, prefs)
	events = append(events, model.Event{
		Type:   model.EventTypeToolResult,
		Name:   toolNewsSummarizer,
		Result: map[string]interface{}{"summary": summary},
	})

	events = append(events, model.Event{
		Type: model.EventTypeContent,
		Text: summary,
	})
	return events
}

// summarizeNews 按偏好把文章列表汇总成一段简报。
// 问候语由语气决定；正文按格式渲染；非 detailed 时截断为前三条。
func summarizeNews(articles []model.NewsArticle, prefs model.PrefsSnapshot) string {
	if len(articles) == 0 {
		return "I couldn't find any articles on that topic."
	}

	lines := make([]string, 0, len(articles))
	for _, art := range articles {
		lines = append(lines, fmt.Sprintf("%s (%s)", art.Title, art.Source))
	}

	var greeting string
	tone := strings.ToLower(prefs.Tone)
	switch {
	case tone == "formal":
		greeting = "Here is a formal summary of the latest articles:"
	case strings.HasPrefix(tone, "enthusias"):
		greeting = "Great news! Here are some exciting headlines:"
	default:
		greeting = "Here's what I found:"
	}

	if prefs.Interaction != "detailed" {
		// concise：只保留前三条
		const maxItems = 3
		if len(lines) > maxItems {
			lines = lines[:maxItems]
		}
	}

	var body string
	if prefs.Format == "bullets" {
		bullets := make([]string, 0, len(lines))
		for _, line := range lines {
			bullets = append(bullets, "- "+line)
		}
		body = strings.Join(bullets, "\n")
	} else {
		body = strings.Join(lines, " ")
	}

	// 回退摘要不做多语言处理，语言偏好仅透传
	return greeting + "\n" + body
}
