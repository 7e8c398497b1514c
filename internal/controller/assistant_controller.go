package controller

import (
	"legal-assistant-be/internal/dto"
	"legal-assistant-be/internal/pkg/serverutils"
	"legal-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	Query(ctx *fiber.Ctx) error
	CreateSession(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
	GetLatestSession(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
}

type assistantController struct {
	service     service.IAssistantService
	rateLimiter fiber.Handler
}

func NewAssistantController(service service.IAssistantService, rateLimiter fiber.Handler) IAssistantController {
	return &assistantController{service: service, rateLimiter: rateLimiter}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/query", c.rateLimiter, c.Query)
	h.Post("/session", c.CreateSession)
	h.Get("/session/latest", c.GetLatestSession)
	h.Get("/session/:id/history", c.GetHistory)
	h.Delete("/session/:id", c.DeleteSession)
}

func (c *assistantController) Query(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	var req dto.QueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Query(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success query legal assistant", res))
}

func (c *assistantController) CreateSession(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	res, err := c.service.CreateSession(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create session", res))
}

func (c *assistantController) GetHistory(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)
	sessionId := ctx.Params("id")

	res, err := c.service.GetHistory(ctx.Context(), userId, sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get session history", res))
}

func (c *assistantController) GetLatestSession(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	res, err := c.service.GetLatestSession(ctx.Context(), userId)
	if err != nil {
		return err
	}
	if res == nil {
		return ctx.JSON(serverutils.SuccessResponse[any]("No active session", nil))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get latest session", res))
}

func (c *assistantController) DeleteSession(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)
	sessionId := ctx.Params("id")

	if err := c.service.DeleteSession(ctx.Context(), userId, sessionId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete session", nil))
}
