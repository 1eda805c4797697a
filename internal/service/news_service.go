// Package service 包含了应用的业务逻辑层。
package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"news-agent-go/internal/model"
	"news-agent-go/pkg/llm"
	"news-agent-go/pkg/log"
)

// Questions 是按固定顺序排列的偏好收集问题，
// 与 model.Preferences 的槽位一一对应。进程级常量。
var Questions = [model.PreferenceCount]string{
	"What is your preferred tone of voice? For example: formal, casual or enthusiastic.",
	"What is your preferred response format? For example: bullet points or paragraphs.",
	"Which language would you like your news summaries in?",
	"How detailed would you like the summaries? For example: concise or detailed.",
	"What topics are you interested in? For example: technology, sports, politics.",
}

// dummyNews 是内置的新闻语料库。每条包含标题、描述和单个主题标签。
var dummyNews = []model.Article{
	{
		Title:       "Breakthrough in Quantum Computing",
		Description: "Scientists have achieved a major milestone in quantum computing by demonstrating a 100-qubit processor.",
		Topics:      "technology",
	},
	{
		Title:       "Local Team Wins Championship",
		Description: "In an exciting finale, the underdogs clinched the national championship with a last-minute score.",
		Topics:      "sports",
	},
	{
		Title:       "New Environmental Policies Introduced",
		Description: "The government has introduced sweeping new policies aimed at reducing carbon emissions by 50% by 2030.",
		Topics:      "politics",
	},
	{
		Title:       "Advances in Renewable Energy",
		Description: "Researchers have developed a more efficient solar cell that could significantly reduce the cost of renewable energy.",
		Topics:      "technology",
	},
	{
		Title:       "Historic Peace Agreement Signed",
		Description: "Two neighbouring countries have signed a historic peace agreement, ending decades of conflict.",
		Topics:      "politics",
	},
	{
		Title:       "Athlete Breaks World Record",
		Description: "A world record was shattered at the international meet, with the athlete setting a new benchmark in track and field.",
		Topics:      "sports",
	},
}

// 偏好缺省值。回退路径下语言偏好不生效，仅透传给模型。
const (
	defaultTone        = "formal"
	defaultFormat      = "paragraphs"
	defaultLanguage    = "English"
	defaultInteraction = "concise"
)

// NewsService 定义了新闻内容选取与偏好化改写的接口。
type NewsService interface {
	// FetchNews 从语料库中选取匹配主题的文章，乱序后最多返回 count 条。
	// 无匹配时回退到完整语料库，语料库非空则结果永不为空。
	FetchNews(topics string, count int) []model.Article
	// AdaptArticle 将一篇文章改写为符合偏好的文本块。
	AdaptArticle(ctx context.Context, article model.Article, prefs *model.Preferences) string
	// GenerateNewsResponse 组合 count 篇改写后的文章为一条新闻回复。
	GenerateNewsResponse(ctx context.Context, prefs *model.Preferences, count int) string
}

type newsService struct {
	llmClient llm.Client
}

// NewNewsService 创建一个新的 NewsService 实例。
func NewNewsService(llmClient llm.Client) NewsService {
	return &newsService{llmClient: llmClient}
}

// FetchNews 按逗号切分主题串，去空白并转小写后做标签匹配。
func (s *newsService) FetchNews(topics string, count int) []model.Article {
	requested := make(map[string]struct{})
	for _, t := range strings.Split(topics, ",") {
		requested[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
	}

	var matches []model.Article
	for _, item := range dummyNews {
		if _, ok := requested[item.Topics]; ok {
			matches = append(matches, item)
		}
	}
	if len(matches) == 0 {
		matches = append(matches, dummyNews...)
	}

	rand.Shuffle(len(matches), func(i, j int) {
		matches[i], matches[j] = matches[j], matches[i]
	})
	if len(matches) > count {
		matches = matches[:count]
	}
	return matches
}

// AdaptArticle 优先委托本地模型改写；模型不可用、超时或出错时
// 走确定性回退格式化。回退路径永不失败。
func (s *newsService) AdaptArticle(ctx context.Context, article model.Article, prefs *model.Preferences) string {
	tone := prefValue(prefs.ToneOfVoice, defaultTone)
	format := prefValue(prefs.ResponseFormat, defaultFormat)
	language := prefValue(prefs.Language, defaultLanguage)
	interaction := prefValue(prefs.InteractionStyle, defaultInteraction)

	prompt := buildAdaptPrompt(article, tone, format, language, interaction)
	if s.llmClient != nil {
		summary, err := s.llmClient.Generate(ctx, prompt)
		if err == nil && summary != "" {
			return summary
		}
		if err != nil && err != llm.ErrUnavailable {
			// 协作方失败属于预期情况，记录后走回退即可
			log.Warnf("模型改写失败，使用回退格式化: %v", err)
		}
	}

	return fallbackAdapt(article, tone, format, interaction)
}

// GenerateNewsResponse 依据主题偏好选取文章并逐篇改写，
// 各篇之间以空行分隔拼接。
func (s *newsService) GenerateNewsResponse(ctx context.Context, prefs *model.Preferences, count int) string {
	topics := prefValue(prefs.NewsTopics, "technology")
	articles := s.FetchNews(topics, count)
	summaries := make([]string, 0, len(articles))
	for _, article := range articles {
		summaries = append(summaries, s.AdaptArticle(ctx, article, prefs))
	}
	return strings.Join(summaries, "\n\n")
}

// buildAdaptPrompt 构造改写指令，嵌入语气、语言、详略与格式要求。
func buildAdaptPrompt(article model.Article, tone, format, language, interaction string) string {
	var b strings.Builder
	b.WriteString("You are a helpful assistant tasked with rewriting news articles.\n")
	fmt.Fprintf(&b, "Please summarise the following news article in %s.\n", language)
	fmt.Fprintf(&b, "Use a %s tone and make the summary %s.\n", tone, interaction)
	fmt.Fprintf(&b, "Present the response as %s.\n\n", format)
	fmt.Fprintf(&b, "Title: %s\n", article.Title)
	fmt.Fprintf(&b, "Description: %s\n", article.Description)
	fmt.Fprintf(&b, "Topics: %s\n\n", article.Topics)
	b.WriteString("Summary:")
	return b.String()
}

// fallbackAdapt 是确定性的回退格式化。
// 变换顺序固定：先列表/段落，再详略前缀，最后语气替换。
func fallbackAdapt(article model.Article, tone, format, interaction string) string {
	var body string
	if strings.HasPrefix(strings.ToLower(format), "bullet") {
		var bullets []string
		for _, sentence := range strings.Split(article.Description, ".") {
			sentence = strings.TrimSpace(sentence)
			if sentence == "" {
				continue
			}
			bullets = append(bullets, fmt.Sprintf("• %s.", sentence))
		}
		body = strings.Join(bullets, "\n")
	} else {
		body = article.Description
	}

	if strings.HasPrefix(strings.ToLower(interaction), "detailed") {
		body = fmt.Sprintf("%s: %s", article.Title, body)
	}
	if strings.HasPrefix(strings.ToLower(tone), "enthusias") {
		body = strings.ReplaceAll(body, ".", "!")
	}
	return body
}

// prefValue 返回槽位值，未设置或为空时采用缺省值。
func prefValue(slot *string, fallback string) string {
	if slot == nil || strings.TrimSpace(*slot) == "" {
		return fallback
	}
	return *slot
}
