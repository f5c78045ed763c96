package bootstrap

import (
	"context"
	"log"

	"github.com/nithinvarma411/concizee/internal/config"
	"github.com/nithinvarma411/concizee/internal/controller"
	"github.com/nithinvarma411/concizee/internal/pkg/logger"
	"github.com/nithinvarma411/concizee/internal/pkg/serverutils"
	"github.com/nithinvarma411/concizee/internal/repository/unitofwork"
	"github.com/nithinvarma411/concizee/internal/service"
	"github.com/nithinvarma411/concizee/internal/websocket"
	"github.com/nithinvarma411/concizee/pkg/llm/factory"

	pktNats "github.com/nithinvarma411/concizee/pkg/nats"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	OAuthController      controller.IOAuthController
	UserController       controller.IUserController
	ChatController       controller.IChatController
	CompletionController controller.ICompletionController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	WebSocketHub *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/websocket.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. LLM Provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.LLM.Provider,
		cfg.LLM.Model,
		cfg.LLM.GroqAPIKey,
		cfg.LLM.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.LLM.Provider, cfg.LLM.Model)

	// 4. Services
	publisherService := service.NewPublisherService()
	oauthService := service.NewOAuthService(uowFactory, cfg.Auth, natsPub)
	userService := service.NewUserService(uowFactory)
	chatService := service.NewChatService(uowFactory, natsPub)
	completionService := service.NewCompletionService(llmProvider, publisherService, wsHub, sysLogger)
	consumerService := service.NewConsumerService(publisherService, chatService, sysLogger)

	// 5. Middleware
	jwtMiddleware := serverutils.NewJwtMiddleware(cfg.Auth.JWTSecret, uowFactory)

	// 6. Controllers
	return &Container{
		OAuthController:      controller.NewOAuthController(oauthService, cfg.App, cfg.Auth),
		UserController:       controller.NewUserController(userService, jwtMiddleware),
		ChatController:       controller.NewChatController(chatService, jwtMiddleware),
		CompletionController: controller.NewCompletionController(completionService),

		ConsumerService: consumerService,
		WebSocketHub:    wsHub,
	}
}
