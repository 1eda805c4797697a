// Package model 包含了应用的数据模型定义。
package model

import "time"

// Article 代表本地语料库中的一条新闻条目。
// Topics 是单个主题标签，不是集合。
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Topics      string `json:"topics"`
}

// NewsArticle 代表新闻搜索协作方返回的规范化文章记录。
// PublishedAt 可能为空，mock 数据之外的来源不保证提供。
type NewsArticle struct {
	Title       string     `json:"title"`
	URL         string     `json:"url"`
	Snippet     string     `json:"snippet,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Source      string     `json:"source,omitempty"`
}
