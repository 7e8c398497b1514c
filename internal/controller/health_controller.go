package controller

import (
	"legal-assistant-be/internal/config"
	"legal-assistant-be/internal/dto"
	"legal-assistant-be/internal/repository/contract"
	"legal-assistant-be/pkg/embedding"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const apiVersion = "1.0.0"

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Root(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
	Ready(ctx *fiber.Ctx) error
}

type healthController struct {
	cfg      *config.Config
	rdb      *redis.Client
	embedder *embedding.LazyProvider
	sections contract.SectionRepository
}

func NewHealthController(
	cfg *config.Config,
	rdb *redis.Client,
	embedder *embedding.LazyProvider,
	sections contract.SectionRepository,
) IHealthController {
	return &healthController{
		cfg:      cfg,
		rdb:      rdb,
		embedder: embedder,
		sections: sections,
	}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	r.Get("/", c.Root)
	r.Get("/health", c.Health)
	r.Get("/ready", c.Ready)
}

func (c *healthController) Root(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{
		"name":        "Legal AI Assistant API",
		"version":     apiVersion,
		"description": "Indian Penal Code AI Assistant with RAG",
		"health":      "/health",
	})
}

// Health reports dependency state without forcing an embedding-model load.
func (c *healthController) Health(ctx *fiber.Ctx) error {
	services := map[string]interface{}{}

	if count, err := c.sections.Count(ctx.Context()); err != nil {
		services["vector_store"] = fiber.Map{"status": "unhealthy", "error": err.Error()}
	} else {
		services["vector_store"] = fiber.Map{"status": "healthy", "sections": count}
	}

	if err := c.rdb.Ping(ctx.Context()).Err(); err != nil {
		services["session_store"] = fiber.Map{"status": "unhealthy", "error": err.Error()}
	} else {
		services["session_store"] = fiber.Map{"status": "healthy"}
	}

	if c.embedder.Loaded() {
		services["embedding_model"] = fiber.Map{"status": "healthy"}
	} else {
		services["embedding_model"] = fiber.Map{
			"status": "not_loaded",
			"note":   "Model loads on first query",
		}
	}

	status := "healthy"
	for _, name := range []string{"vector_store", "session_store"} {
		if m, ok := services[name].(fiber.Map); ok && m["status"] != "healthy" {
			status = "degraded"
		}
	}

	return ctx.JSON(dto.HealthResponse{
		Status:      status,
		Environment: c.cfg.App.Environment,
		Version:     apiVersion,
		Services:    services,
	})
}

// Ready is the readiness probe; unlike Health it warms the embedding
// provider so the first user query does not pay the load.
func (c *healthController) Ready(ctx *fiber.Ctx) error {
	res := dto.ReadyResponse{Ready: true, Checks: map[string]string{}}

	if _, err := c.sections.Count(ctx.Context()); err != nil {
		res.Ready = false
		res.Checks["vector_store"] = "unavailable"
	} else {
		res.Checks["vector_store"] = "ok"
	}

	if err := c.rdb.Ping(ctx.Context()).Err(); err != nil {
		res.Ready = false
		res.Checks["session_store"] = "unavailable"
	} else {
		res.Checks["session_store"] = "ok"
	}

	if err := c.embedder.Warm(ctx.Context()); err != nil {
		res.Ready = false
		res.Checks["embedding_model"] = "unavailable"
	} else {
		res.Checks["embedding_model"] = "ok"
	}

	status := fiber.StatusOK
	if !res.Ready {
		status = fiber.StatusServiceUnavailable
	}
	return ctx.Status(status).JSON(res)
}
