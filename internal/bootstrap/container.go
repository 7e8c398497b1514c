package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	"legal-assistant-be/internal/config"
	"legal-assistant-be/internal/controller"
	"legal-assistant-be/internal/pkg/logger"
	"legal-assistant-be/internal/pkg/serverutils"
	"legal-assistant-be/internal/repository/implementation"
	"legal-assistant-be/internal/service"
	"legal-assistant-be/pkg/embedding"
	"legal-assistant-be/pkg/llm/factory"
	"legal-assistant-be/pkg/retrieval"
	"legal-assistant-be/pkg/session"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AssistantController controller.IAssistantController
	HealthController    controller.IHealthController

	// Shared infrastructure (exposed for shutdown and probes)
	Logger logger.ILogger
	Redis  *redis.Client
}

// NewContainer wires every dependency once at startup. There are no hidden
// singletons; everything downstream receives its collaborators explicitly.
// A dead redis is a hard failure, a dead vector store is not (it may come
// back before the first query).
func NewContainer(db *gorm.DB, cfg *config.Config) (*Container, error) {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Repositories
	sectionRepo := implementation.NewSectionRepository(db)

	// Vector store connectivity probe. Failure is logged, not returned; the
	// store may come up before the first query needs it.
	probeCtx, cancelProbe := context.WithTimeout(context.Background(), 5*time.Second)
	if count, err := sectionRepo.Count(probeCtx); err != nil {
		sysLogger.Warn("Bootstrap", "Vector store unreachable at startup", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		sysLogger.Info("Bootstrap", "Vector store reachable", map[string]interface{}{
			"sections": count,
		})
	}
	cancelProbe()

	// Embedding provider, lazily constructed on first use. The warm-up
	// probe confirms the model actually answers before it serves queries.
	lazyEmbedder := embedding.NewLazyProvider(func(ctx context.Context) (embedding.EmbeddingProvider, error) {
		var provider embedding.EmbeddingProvider
		switch cfg.Ai.EmbeddingProvider {
		case "openai":
			provider = embedding.NewOpenAIProvider(cfg.Ai.EmbeddingBaseURL, cfg.Ai.EmbeddingAPIKey, cfg.Ai.EmbeddingModel)
		default:
			provider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)
		}

		probeCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
		defer cancel()
		if _, err := provider.Generate(probeCtx, "warm-up probe"); err != nil {
			return nil, fmt.Errorf("embedding model warm-up: %w", err)
		}

		sysLogger.Info("Bootstrap", "Embedding model loaded", map[string]interface{}{
			"provider": cfg.Ai.EmbeddingProvider,
			"model":    cfg.Ai.EmbeddingModel,
		})
		return provider, nil
	})

	// LLM provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		llmBaseURL(cfg),
		cfg.Ai.GroqAPIKey,
	)
	if err != nil {
		return nil, fmt.Errorf("initialize LLM provider: %w", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)

	// Session store construction pings redis; an unreachable store is fatal.
	sessionStore, err := session.NewStore(
		rdb,
		cfg.Session.MaxHistoryLength,
		time.Duration(cfg.Session.TTLHours)*time.Hour,
		sysLogger,
	)
	if err != nil {
		return nil, fmt.Errorf("initialize session store: %w", err)
	}

	// Retrieval engine
	engine := retrieval.NewEngine(sectionRepo, lazyEmbedder, sysLogger, retrieval.Config{
		TopK:            cfg.Retrieval.TopK,
		MaxQueryChars:   cfg.Retrieval.MaxQueryChars,
		PerSectionLimit: cfg.Retrieval.PerSectionLimit,
	})

	// Services
	assistantService := service.NewAssistantService(
		engine,
		sessionStore,
		llmProvider,
		sysLogger,
		cfg.Retrieval.MaxContextLength,
	)

	rateLimiter := serverutils.RateLimitMiddleware(cfg.App.RateLimitPerMinute)

	return &Container{
		AssistantController: controller.NewAssistantController(assistantService, rateLimiter),
		HealthController:    controller.NewHealthController(cfg, rdb, lazyEmbedder, sectionRepo),
		Logger:              sysLogger,
		Redis:               rdb,
	}, nil
}

func llmBaseURL(cfg *config.Config) string {
	if cfg.Ai.LLMProvider == "ollama" {
		return cfg.Ai.OllamaBaseURL
	}
	return cfg.Ai.GroqBaseURL
}
