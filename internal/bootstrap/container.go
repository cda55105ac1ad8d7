package bootstrap

import (
	"time"

	"doc-chat-be/internal/config"
	"doc-chat-be/internal/controller"
	"doc-chat-be/internal/pkg/logger"
	"doc-chat-be/internal/repository/memory"
	"doc-chat-be/internal/service"
	"doc-chat-be/internal/websocket"
	"doc-chat-be/pkg/llm/openai"
)

type Container struct {
	// Controllers
	ChatController controller.IChatController

	// WebSocket stream delivery
	WebSocketHub *websocket.Hub
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. LLM Provider
	llmProvider := openai.NewOpenAIProvider(cfg.Ai.BaseURL, cfg.Ai.APIKey, cfg.Ai.Model)
	sysLogger.Info("Bootstrap", "LLM provider configured", map[string]interface{}{
		"base_url": cfg.Ai.BaseURL,
		"model":    cfg.Ai.Model,
	})

	// 3. In-Memory Session Storage
	ttl := time.Duration(cfg.App.SessionTTLMinutes) * time.Minute
	sessionRepo := memory.NewSessionRepository(ttl, 10*time.Minute)

	// 4. WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/stream.log")
	wsHub := websocket.NewHub(wsLogger)
	go wsHub.Run()

	// 5. Services
	chatService := service.NewChatService(
		sessionRepo,
		llmProvider,
		wsHub,
		sysLogger,
		cfg.Ai.ContextMaxChars,
	)

	// 6. Controllers
	return &Container{
		ChatController: controller.NewChatController(chatService, wsHub),
		WebSocketHub:   wsHub,
	}
}
