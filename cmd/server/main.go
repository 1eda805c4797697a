// Package main 是应用程序的入口点。
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"news-agent-go/internal/config"
	"news-agent-go/internal/handler"
	"news-agent-go/internal/middleware"
	"news-agent-go/internal/repository"
	"news-agent-go/internal/service"
	"news-agent-go/pkg/exa"
	"news-agent-go/pkg/llm"
	"news-agent-go/pkg/log"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. 初始化配置
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	// 2. 初始化日志记录器
	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync() // 确保在程序退出时刷新所有缓冲的日志条目
	log.Info("日志记录器初始化成功")
	if cfg.News.MockMode {
		log.Info("Mock 模式已开启，所有外部协作方返回本地确定性数据")
	}

	// 3. 初始化外部协作方客户端
	llmClient := llm.NewClient(cfg.LLM)
	exaClient := exa.NewClient(cfg.News)

	// 4. 初始化 Repository
	sessionRepo := repository.NewSessionRepository()

	// 5. 初始化 Service (依赖注入)
	newsService := service.NewNewsService(llmClient)
	sessionService := service.NewSessionService(sessionRepo, newsService)
	agentService := service.NewAgentService(exaClient, cfg.Agent)

	// 6. 设置 Gin 模式并创建路由引擎
	gin.SetMode(cfg.Server.Mode)
	r := gin.New() // 使用 New() 创建一个不带默认中间件的引擎
	// 添加我们自定义的日志中间件和 Gin 的 Recovery 中间件
	r.Use(middleware.RequestLogger(), gin.Recovery())

	// 7. 注册路由
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiV1 := r.Group("/api/v1")
	{
		// Session 路由组：会话式偏好收集与新闻简报
		sessionHandler := handler.NewSessionHandler(sessionService)
		session := apiV1.Group("/session")
		{
			session.POST("", sessionHandler.CreateSession)
			session.POST("/:sessionId/message", sessionHandler.PostMessage)
			session.GET("/:sessionId/conversation", sessionHandler.GetConversation)
		}
	}

	// Chat 路由：Agent 事件流（SSE 与 WebSocket 两种传输）
	chatHandler := handler.NewChatHandler(agentService)
	r.POST("/chat", chatHandler.Chat)
	r.GET("/chat/ws", chatHandler.HandleWS)

	// 启动 HTTP 服务器并实现优雅停机
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("服务启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP 服务监听失败: %s\n", err)
		}
	}()

	// 等待中断信号以实现优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭服务...")

	// 设置一个5秒的超时上下文
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// 关闭 HTTP 服务器
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("HTTP 服务器关闭失败: %v", err)
	}

	log.Info("服务已优雅关闭")
}
