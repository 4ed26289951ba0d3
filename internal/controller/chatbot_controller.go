package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"startup-chatbot-be/internal/constant"
	"startup-chatbot-be/internal/dto"
	"startup-chatbot-be/internal/pkg/logger"
	"startup-chatbot-be/internal/pkg/serverutils"
	"startup-chatbot-be/internal/service"
	"startup-chatbot-be/pkg/obfuscate"
	"startup-chatbot-be/pkg/security"
)

type IChatbotController interface {
	RegisterRoutes(r fiber.Router)
}

type ChatbotController struct {
	chatbot   service.IChatbotService
	telemetry service.ITelemetryService
	log       logger.ILogger
}

func NewChatbotController(chatbot service.IChatbotService, telemetry service.ITelemetryService, log logger.ILogger) IChatbotController {
	return &ChatbotController{chatbot: chatbot, telemetry: telemetry, log: log}
}

func (c *ChatbotController) RegisterRoutes(r fiber.Router) {
	r.Get("/csrf-token", rateLimit(10), c.IssueToken)
	r.Post("/query", rateLimit(20), c.Query)
	r.Post("/api/v1/secure/process", rateLimit(20), c.SecureQuery)
}

func rateLimit(perMinute int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        perMinute,
		Expiration: time.Minute,
		LimitReached: func(ctx *fiber.Ctx) error {
			return ctx.Status(fiber.StatusTooManyRequests).
				JSON(serverutils.ErrorResponse("Rate limit exceeded"))
		},
	})
}

// IssueToken hands out a fresh session id plus its CSRF token.
func (c *ChatbotController) IssueToken(ctx *fiber.Ctx) error {
	res, err := c.chatbot.IssueSession(ctx.UserContext())
	if err != nil {
		c.log.Error("ChatbotController", "Failed to issue session", map[string]interface{}{
			"error": err.Error(),
		})
		return fiber.NewError(fiber.StatusInternalServerError, "Could not issue session")
	}
	return ctx.Status(fiber.StatusOK).JSON(res)
}

// Query is the plain JSON endpoint. A known session must present its
// token here.
func (c *ChatbotController) Query(ctx *fiber.Ctx) error {
	var req dto.QueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.chatbot.SendQuery(ctx.UserContext(), &req, true)
	if err != nil {
		return c.renderQueryError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(res)
}

// SecureQuery unwraps the base64 envelope, runs the same pipeline with
// relaxed CSRF handling and re-wraps the response.
func (c *ChatbotController) SecureQuery(ctx *fiber.Ctx) error {
	var envelope dto.SecureRequest
	if err := ctx.BodyParser(&envelope); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(&envelope); err != nil {
		return err
	}

	var req dto.QueryRequest
	if err := obfuscate.Decode(envelope.Data, &req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request payload")
	}

	res, err := c.chatbot.SendQuery(ctx.UserContext(), &req, false)
	if err != nil {
		return c.renderQueryError(ctx, err)
	}

	encoded, err := obfuscate.Encode(res)
	if err != nil {
		c.log.Error("ChatbotController", "Failed to encode response envelope", map[string]interface{}{
			"error": err.Error(),
		})
		return fiber.NewError(fiber.StatusInternalServerError, "Internal server error")
	}
	return ctx.Status(fiber.StatusOK).JSON(dto.SecureResponse{Data: encoded})
}

// renderQueryError maps pipeline errors onto the wire. Anything that is
// not a client fault becomes a 200 with the canned apology so the
// conversational UI always has a message to show.
func (c *ChatbotController) renderQueryError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, security.ErrCSRFTokenRequired),
		errors.Is(err, security.ErrInvalidCSRFToken):
		return fiber.NewError(fiber.StatusForbidden, "CSRF validation failed")
	case errors.Is(err, service.ErrEmptyQuery):
		return fiber.NewError(fiber.StatusBadRequest, "Query text must not be empty")
	}

	c.log.Error("ChatbotController", "Query pipeline failed", map[string]interface{}{
		"error": err.Error(),
	})
	c.telemetry.TrackLLMRequest(false)
	return ctx.Status(fiber.StatusOK).JSON(dto.QueryResponse{
		Answer:           constant.AnswerServerError,
		SimilarQuestions: []string{},
	})
}
