package bootstrap

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"teen-coach-be/internal/config"
	"teen-coach-be/internal/controller"
	"teen-coach-be/internal/handler"
	"teen-coach-be/internal/pkg/logger"
	"teen-coach-be/internal/repository/memory"
	"teen-coach-be/internal/repository/unitofwork"
	"teen-coach-be/internal/service"
	"teen-coach-be/internal/websocket"
	"teen-coach-be/pkg/cards"
	"teen-coach-be/pkg/coach"
	"teen-coach-be/pkg/docindex"
	"teen-coach-be/pkg/hotlines"
	"teen-coach-be/pkg/llm/factory"
	pktNats "teen-coach-be/pkg/nats"
	"teen-coach-be/pkg/retrieval"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const turnEventsTopic = "TURN_RECORDED"

type Container struct {
	// Controllers
	ChatController     controller.IChatController
	ResourceController controller.IResourceController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	StreamHandler *handler.StreamHandler
	WebSocketHub  *websocket.Hub
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

	// 3. Retrieval Corpus
	retrievalLogger := initRetrievalLogger()

	// A missing or malformed card file is a configuration error, not
	// something to limp along without.
	skillCards, err := cards.LoadCards(cfg.Data.CardsPath)
	if err != nil {
		log.Fatalf("[FATAL] Failed to load skill cards from %s: %v", cfg.Data.CardsPath, err)
	}
	log.Printf("[INFO] Loaded %d skill cards", len(skillCards))

	library := docindex.NewLibrary(cfg.Data.DocumentsDir, cfg.Retrieval.MaxVocabulary, retrievalLogger)
	searcher := retrieval.NewSearcher(library, cfg.Retrieval.SimilarityThreshold, retrievalLogger)
	retriever := retrieval.NewRetriever(skillCards, searcher)

	hotlineEntries, err := hotlines.Load(cfg.Data.HotlinesPath)
	if err != nil {
		log.Printf("[WARN] Failed to load hotlines from %s: %v", cfg.Data.HotlinesPath, err)
	}
	directory := hotlines.NewDirectory(hotlineEntries)

	// 4. LLM Provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		providerBaseURL(cfg),
		cfg.Ai.OpenAIAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	if llmProvider == nil {
		log.Printf("[WARN] No LLM credentials configured, replies degrade to placeholders")
	} else {
		log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)
	}

	classifier := coach.NewClassifier(llmProvider, retrievalLogger)
	pipeline := coach.NewPipeline(retriever, classifier, directory, retrievalLogger)
	pipeline.SetRetrievalCounts(cfg.Retrieval.CardCount, cfg.Retrieval.DocumentCount)
	pipeline.SetResourceCount(cfg.Retrieval.ResourceCount)

	// 5. In-Memory Session Storage
	sessionRepo := memory.NewSessionRepository()

	// 6. Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
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
	wsLogger := logger.NewIsolatedLogger("logs/stream.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 7. Services
	publisherService := service.NewPublisherService(turnEventsTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		turnEventsTopic,
		cfg.App.TurnLogPath,
		natsPub,
		wsHub,
	)

	chatService := service.NewChatService(
		uowFactory,
		pipeline,
		sessionRepo,
		publisherService,
		wsHub,
	)
	resourceService := service.NewResourceService(directory)

	streamHandler := handler.NewStreamHandler(wsHub, wsLogger)

	sysLogger.Info("Bootstrap", "Container initialized", map[string]interface{}{
		"skill_cards": len(skillCards),
		"hotlines":    len(hotlineEntries),
		"documents":   len(library.Documents()),
	})

	// 8. Controllers
	return &Container{
		ChatController:     controller.NewChatController(chatService),
		ResourceController: controller.NewResourceController(resourceService),

		ConsumerService: consumerService,

		StreamHandler: streamHandler,
		WebSocketHub:  wsHub,
	}
}

func providerBaseURL(cfg *config.Config) string {
	if cfg.Ai.LLMProvider == "ollama" {
		return cfg.Ai.OllamaBaseURL
	}
	return cfg.Ai.OpenAIBaseURL
}

func initRetrievalLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "retrieval.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[RETRIEVAL] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}
