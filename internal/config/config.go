// Package config 负责加载和管理应用程序的配置。
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// 全局配置变量，存储从配置文件加载的所有设置。
var Conf Config

// Config 是整个应用程序的配置结构体，与 config.yaml 文件结构对应。
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	LLM    LLMConfig    `mapstructure:"llm"`
	News   NewsConfig   `mapstructure:"news"`
	Agent  AgentConfig  `mapstructure:"agent"`
}

// ServerConfig 存储服务器相关的配置。
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// LogConfig 存储日志相关的配置。
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// LLMConfig 存储本地文本生成模型相关的配置。
// Enabled 为 false（默认）时不会发起任何模型调用，
// 摘要适配直接走确定性回退路径。
type LLMConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	BaseURL        string `mapstructure:"base_url"`
	Model          string `mapstructure:"model"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// NewsConfig 存储新闻搜索协作方（Exa）相关的配置。
// MockMode 为 true（默认）时所有检索返回确定性的本地数据，
// 不发起任何外部网络请求。
type NewsConfig struct {
	MockMode       bool   `mapstructure:"mock_mode"`
	ExaBaseURL     string `mapstructure:"exa_base_url"`
	ExaAPIKey      string `mapstructure:"exa_api_key"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// AgentConfig 存储 Agent 事件流相关的配置。
type AgentConfig struct {
	FetchResults int `mapstructure:"fetch_results"`
	RecencyDays  int `mapstructure:"recency_days"`
}

// Init 初始化配置加载，从指定的路径读取 YAML 文件并解析到 Conf 变量中。
// MOCK_MODE 与 EXA_API_KEY 允许通过环境变量覆盖，便于部署时切换。
func Init(configPath string) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	viper.SetDefault("server.port", "8000")
	viper.SetDefault("server.mode", "release")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "json")
	viper.SetDefault("llm.base_url", "http://localhost:11434")
	viper.SetDefault("llm.model", "phi3")
	viper.SetDefault("llm.timeout_seconds", 30)
	viper.SetDefault("news.mock_mode", true)
	viper.SetDefault("news.exa_base_url", "https://api.exa.ai")
	viper.SetDefault("news.timeout_seconds", 15)
	viper.SetDefault("agent.fetch_results", 5)
	viper.SetDefault("agent.recency_days", 7)

	_ = viper.BindEnv("news.mock_mode", "MOCK_MODE")
	_ = viper.BindEnv("news.exa_api_key", "EXA_API_KEY")

	if err := viper.ReadInConfig(); err != nil {
		panic(fmt.Errorf("读取配置文件失败: %w", err))
	}

	if err := viper.Unmarshal(&Conf); err != nil {
		panic(fmt.Errorf("无法将配置解析到结构体中: %w", err))
	}
}
