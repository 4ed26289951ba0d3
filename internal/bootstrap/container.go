package bootstrap

import (
	"context"
	"log"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"

	"startup-chatbot-be/internal/config"
	"startup-chatbot-be/internal/controller"
	"startup-chatbot-be/internal/pkg/logger"
	"startup-chatbot-be/internal/service"
	"startup-chatbot-be/pkg/embedding"
	"startup-chatbot-be/pkg/embedding/jina"
	"startup-chatbot-be/pkg/knowledge"
	"startup-chatbot-be/pkg/llm/factory"
	"startup-chatbot-be/pkg/rag/response"
	"startup-chatbot-be/pkg/rag/session"
	"startup-chatbot-be/pkg/retrieval"
	"startup-chatbot-be/pkg/security"
	"startup-chatbot-be/pkg/speech"
	"startup-chatbot-be/pkg/store"
)

// Container wires every dependency once at startup. Construction is
// infallible by design: missing credentials or an unreachable Redis
// degrade the respective feature instead of aborting boot.
type Container struct {
	ChatbotController    controller.IChatbotController
	TranscribeController controller.ITranscribeController
	SystemController     controller.ISystemController
	ConsumerService      service.IConsumerService
	Logger               logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	appLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Session store. No Redis URL means the in-memory store; a configured
	// but unreachable Redis is kept (fail-soft reads) with a warning.
	ttl := time.Duration(cfg.Session.TTLHours) * time.Hour
	sessionStore := buildSessionStore(cfg, ttl, appLogger)

	// Embedding provider for indexing and query-time retrieval.
	embedProvider := buildEmbeddingProvider(cfg)

	index := knowledge.Load(context.Background(), cfg.Knowledge.CSVPath, embedProvider, appLogger)
	retriever := retrieval.NewRetriever(index, embedProvider, appLogger)

	llmKey := cfg.Keys.GoogleGemini
	if cfg.Ai.LLMProvider == "huggingface" {
		llmKey = cfg.Keys.HuggingFace
	}
	llmProvider, err := factory.NewLLMProvider(cfg.Ai.LLMProvider, cfg.Ai.LLMModel, cfg.Ai.OllamaBaseURL, llmKey)
	if err != nil {
		appLogger.Warn("bootstrap", "LLM provider misconfigured, answers will use fallback", map[string]interface{}{
			"provider": cfg.Ai.LLMProvider,
			"error":    err.Error(),
		})
		llmProvider = nil
	}
	if llmProvider == nil {
		appLogger.Warn("bootstrap", "No LLM credential configured, refinement disabled", map[string]interface{}{
			"provider": cfg.Ai.LLMProvider,
		})
	}
	refiner := response.NewRefiner(llmProvider, appLogger)

	guard := security.NewCSRFGuard(sessionStore, appLogger)
	sessions := session.NewManager(sessionStore, appLogger)

	// In-process pubsub for telemetry events.
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	publisher := service.NewPublisherService(pubSub, appLogger)
	telemetry := service.NewTelemetryService(publisher, cfg.App.TelemetryTopic, appLogger)
	consumer := service.NewConsumerService(pubSub, cfg.App.TelemetryTopic, appLogger)

	speechClient := speech.NewClient(cfg.Keys.GoogleSpeech)

	chatbotService := service.NewChatbotService(sessions, guard, retriever, refiner, telemetry, appLogger)
	transcribeService := service.NewTranscribeService(speechClient, telemetry, appLogger)

	return &Container{
		ChatbotController:    controller.NewChatbotController(chatbotService, telemetry, appLogger),
		TranscribeController: controller.NewTranscribeController(transcribeService, guard, appLogger),
		SystemController:     controller.NewSystemController(sessionStore, appLogger),
		ConsumerService:      consumer,
		Logger:               appLogger,
	}
}

func buildSessionStore(cfg *config.Config, ttl time.Duration, appLogger logger.ILogger) store.SessionStore {
	if cfg.App.RedisURL == "" {
		log.Println("INFO: Using in-memory session store")
		return store.NewMemoryStore(ttl)
	}

	opts, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		// Tolerate a bare host:port value.
		opts = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		appLogger.Warn("bootstrap", "Redis unreachable at startup, sessions degrade until it recovers", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return store.NewRedisStore(rdb, ttl, appLogger)
}

func buildEmbeddingProvider(cfg *config.Config) embedding.EmbeddingProvider {
	switch cfg.Ai.EmbeddingProvider {
	case "ollama":
		log.Println("INFO: Using Ollama embedding provider")
		return embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
	case "jina":
		if cfg.Keys.Jina == "" {
			log.Println("WARN: Jina selected but JINA_API_KEY empty, retrieval disabled")
			return nil
		}
		log.Println("INFO: Using Jina embedding provider")
		return jina.NewJinaProvider(cfg.Keys.Jina)
	default:
		if cfg.Keys.GoogleGemini == "" {
			log.Println("WARN: GEMINI_API_KEY empty, retrieval disabled")
			return nil
		}
		log.Println("INFO: Using Gemini embedding provider")
		return embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
	}
}
