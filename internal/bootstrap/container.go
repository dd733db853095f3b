package bootstrap

import (
	"context"
	"log"
	"os"

	"research-assistant-be/internal/config"
	"research-assistant-be/internal/controller"
	"research-assistant-be/internal/handler"
	"research-assistant-be/internal/pkg/logger"
	"research-assistant-be/internal/repository/implementation"
	"research-assistant-be/internal/repository/memory"
	"research-assistant-be/internal/repository/unitofwork"
	"research-assistant-be/internal/service"
	"research-assistant-be/internal/websocket"
	"research-assistant-be/pkg/agent/analyst"
	"research-assistant-be/pkg/agent/docsearch"
	"research-assistant-be/pkg/agent/executor"
	"research-assistant-be/pkg/agent/history"
	"research-assistant-be/pkg/agent/researcher"
	agentrouter "research-assistant-be/pkg/agent/router"
	"research-assistant-be/pkg/agent/summarizer"
	"research-assistant-be/pkg/arxiv"
	"research-assistant-be/pkg/embedding"
	"research-assistant-be/pkg/embedding/jina"
	"research-assistant-be/pkg/extract"
	"research-assistant-be/pkg/llm/factory"
	"research-assistant-be/pkg/llm/gemini"
	"research-assistant-be/pkg/webscrape"
	"research-assistant-be/pkg/websearch"

	pktNats "research-assistant-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ResearchController controller.IResearchController
	SessionController  controller.ISessionController
	DocumentController controller.IDocumentController
	SearchController   controller.ISearchController
	StatusController   controller.IStatusController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
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
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else if cfg.Ai.EmbeddingProvider == "jina" {
		embeddingProvider = jina.NewJinaProvider(cfg.Keys.Jina)
		log.Printf("[INFO] Using Embedding Provider: JINA AI")
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: GEMINI (%s)", cfg.Ai.EmbeddingModel)
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// Vision extraction always goes through Gemini regardless of the chat
	// provider, PDFs and images need multimodal input
	visionProvider := gemini.NewGeminiProvider(cfg.Keys.GoogleGemini, cfg.Ai.LLMModel)
	extractor := extract.NewExtractor(visionProvider)

	// Initialize In-Memory Session Storage
	sessionRepo := memory.NewSessionRepository()

	// 3.5 External Research Clients
	arxivConfig := arxiv.DefaultConfig()
	arxivConfig.RatePerSecond = cfg.Research.ArxivRatePerSec
	arxivConfig.MaxResults = cfg.Research.ArxivMaxResults
	arxivClient := arxiv.NewClient(arxivConfig)

	webClient := websearch.NewPerplexityClient(
		cfg.Keys.Perplexity,
		cfg.Research.PerplexityModel,
		cfg.Research.PerplexityBaseURL,
	)

	scraper := webscrape.NewScraper(webscrape.ScraperConfig{})

	// 4. Infrastructure
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

	// 5. Agent Layer
	agentLogger := log.New(os.Stdout, "", log.LstdFlags)
	searchConfig := docsearch.Config{
		ScoreThreshold: cfg.Research.ScoreThreshold,
		TopK:           cfg.Research.SearchLimit,
	}

	documentSearch := docsearch.NewOrchestrator(embeddingProvider, agentLogger)
	researchAgent := researcher.NewResearcher(
		arxivClient,
		webClient,
		documentSearch,
		llmProvider,
		searchConfig,
		agentLogger,
	)
	summarizerAgent := summarizer.NewSummarizer(llmProvider, agentLogger)
	analystAgent := analyst.NewAnalyst(llmProvider, agentLogger)
	queryRouter := agentrouter.NewRouter(llmProvider, agentLogger)
	pipelineExecutor := executor.NewPipelineExecutor(
		researchAgent,
		summarizerAgent,
		analystAgent,
		sessionRepo,
		agentLogger,
	)
	historyLoader := history.NewLoader(uowFactory)

	// 6. Services
	publisherService := service.NewPublisherService(cfg.Keys.ProcessTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.ProcessTopic,
		uowFactory,
		embeddingProvider,
		extractor,
		natsPub,
		cfg.Upload.ChunkSize,
		cfg.Upload.ChunkOverlap,
	)

	userService := service.NewUserService(uowFactory, cfg.App.LocalUserName)
	sessionService := service.NewSessionService(uowFactory)
	searchService := service.NewSearchService(arxivClient, webClient)

	documentService := service.NewDocumentService(
		uowFactory,
		publisherService,
		documentSearch,
		scraper,
		sysLogger,
		cfg.Upload.Dir,
		cfg.Upload.MaxUploadSizeMB,
		searchConfig,
	)

	researchService := service.NewResearchService(
		uowFactory,
		userService,
		sessionService,
		historyLoader,
		queryRouter,
		pipelineExecutor,
		llmProvider,
		natsPub,
		sysLogger,
		cfg.Research.HistoryLimit,
	)

	// 7. Notification System
	notifRepo := implementation.NewNotificationRepository(db)
	notifService := service.NewNotificationService(notifRepo, natsSub, wsHub, wsLogger) // Hub implements NotificationDelivery

	// Start Service (Worker)
	if natsSub != nil {
		go notifService.Start()
	}

	notifHandler := handler.NewNotificationHandler(notifService, userService, wsHub, wsLogger)

	// 8. Controllers
	return &Container{
		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,

		ResearchController: controller.NewResearchController(researchService),
		SessionController:  controller.NewSessionController(sessionService, userService),
		DocumentController: controller.NewDocumentController(documentService, userService),
		SearchController:   controller.NewSearchController(searchService),
		StatusController: controller.NewStatusController(db, rdb, natsPub != nil, controller.ServiceInfo{
			LLMProvider:       cfg.Ai.LLMProvider,
			LLMModel:          cfg.Ai.LLMModel,
			EmbeddingProvider: cfg.Ai.EmbeddingProvider,
		}),

		ConsumerService: consumerService,
	}
}
