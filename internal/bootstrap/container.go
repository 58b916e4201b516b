package bootstrap

import (
	"context"
	"log"

	"mcq-writer-be/internal/config"
	"mcq-writer-be/internal/controller"
	"mcq-writer-be/internal/handler"
	"mcq-writer-be/internal/pkg/logger"
	"mcq-writer-be/internal/repository/memory"
	"mcq-writer-be/internal/repository/unitofwork"
	"mcq-writer-be/internal/service"
	"mcq-writer-be/internal/websocket"
	"mcq-writer-be/pkg/database"
	"mcq-writer-be/pkg/embedding"
	"mcq-writer-be/pkg/imagen"
	"mcq-writer-be/pkg/llm/factory"
	"mcq-writer-be/pkg/media"
	pktNats "mcq-writer-be/pkg/nats"
	"mcq-writer-be/pkg/pdfext"
	"mcq-writer-be/pkg/pubmed"
	"mcq-writer-be/pkg/tavily"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	SourceController  controller.ISourceController
	KBController      controller.IKBController
	MCQController     controller.IMCQController
	SessionController controller.ISessionController
	SearchController  controller.ISearchController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub

	// Shared infrastructure exposed for the server layer
	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.EmbeddingModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)
	} else if cfg.Keys.GoogleGemini != "" {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	} else {
		log.Printf("[WARN] No embedding provider configured, similarity queries disabled")
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.TextProvider,
		textProviderKey(cfg),
		cfg.Ai.TextModel,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.TextProvider, cfg.Ai.TextModel)

	imageProvider, err := imagen.NewImageProvider(
		cfg.Ai.ImageProvider,
		imageProviderKey(cfg),
		cfg.Ai.ImageModel,
		"",
	)
	if err != nil {
		log.Printf("[WARN] Image generation disabled: %v", err)
		imageProvider = nil
	} else {
		log.Printf("[INFO] Using Image Provider: %s (%s)", cfg.Ai.ImageProvider, cfg.Ai.ImageModel)
	}

	// 4. Domain Clients
	pubmedClient := pubmed.NewClient(cfg.PubMed.Email)
	tavilyClient := tavily.NewClient(cfg.Keys.Tavily)
	pdfExtractor := pdfext.NewExtractor()

	mediaStore, err := media.NewStore(cfg.Media.Dir)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize media store: %v", err)
	}

	// In-memory working state for refinement
	draftRepo := memory.NewDraftRepository()

	// 5. Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
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
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 6. Services
	// Vector similarity needs pgvector, which only Postgres carries.
	vectorEnabled := database.IsPostgresDSN(cfg.Database.Connection) && embeddingProvider != nil

	publisherService := service.NewPublisherService(pubSub, cfg.Keys.ExtractionTopic)
	kbService := service.NewKBService(uowFactory, embeddingProvider, vectorEnabled)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.ExtractionTopic,
		uowFactory,
		llmProvider,
		kbService,
	)

	sourceService := service.NewSourceService(uowFactory, pubmedClient, pdfExtractor, publisherService, natsPub)
	mcqService := service.NewMCQService(
		uowFactory,
		llmProvider,
		imageProvider,
		mediaStore,
		draftRepo,
		kbService,
		natsPub,
		cfg.Ai.TextModel,
	)
	sessionService := service.NewSessionService(uowFactory, llmProvider)
	searchService := service.NewSearchService(tavilyClient)

	// 7. Notification System
	notifService := service.NewNotificationService(natsSub, wsHub, wsLogger)
	if natsSub != nil {
		go notifService.Start()
	}
	notifHandler := handler.NewNotificationHandler(natsPub, wsHub, wsLogger)

	// 8. Controllers
	return &Container{
		SourceController:  controller.NewSourceController(sourceService),
		KBController:      controller.NewKBController(kbService),
		MCQController:     controller.NewMCQController(mcqService),
		SessionController: controller.NewSessionController(sessionService),
		SearchController:  controller.NewSearchController(searchService),

		ConsumerService: consumerService,

		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,

		Logger: sysLogger,
	}
}

func textProviderKey(cfg *config.Config) string {
	switch cfg.Ai.TextProvider {
	case "openai":
		return cfg.Keys.OpenAI
	case "ollama":
		return ""
	default:
		return cfg.Keys.GoogleGemini
	}
}

func imageProviderKey(cfg *config.Config) string {
	if cfg.Ai.ImageProvider == "openai" {
		return cfg.Keys.OpenAI
	}
	return cfg.Keys.GoogleGemini
}
