package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"startup-chatbot-be/internal/dto"
	"startup-chatbot-be/internal/pkg/logger"
	"startup-chatbot-be/internal/pkg/serverutils"
	"startup-chatbot-be/internal/service"
	"startup-chatbot-be/pkg/obfuscate"
	"startup-chatbot-be/pkg/security"
)

const (
	headerCSRFToken = "X-CSRF-Token"
	headerSessionID = "X-Session-ID"
)

type ITranscribeController interface {
	RegisterRoutes(r fiber.Router)
}

type TranscribeController struct {
	transcribe service.ITranscribeService
	guard      *security.CSRFGuard
	log        logger.ILogger
}

func NewTranscribeController(transcribe service.ITranscribeService, guard *security.CSRFGuard, log logger.ILogger) ITranscribeController {
	return &TranscribeController{transcribe: transcribe, guard: guard, log: log}
}

func (c *TranscribeController) RegisterRoutes(r fiber.Router) {
	r.Post("/transcribe", rateLimit(5), c.requireCSRF, c.Transcribe)
	r.Post("/api/v1/secure/audio", rateLimit(5), c.requireCSRF, c.SecureTranscribe)
}

// requireCSRF enforces header-based CSRF on audio uploads. Unlike the
// query routes there is no first-request bypass here: uploads without a
// valid session and token pair are refused outright.
func (c *TranscribeController) requireCSRF(ctx *fiber.Ctx) error {
	token := ctx.Get(headerCSRFToken)
	sessionID := ctx.Get(headerSessionID)
	if token == "" || sessionID == "" {
		return fiber.NewError(fiber.StatusForbidden, "CSRF token and session id headers are required")
	}
	if err := c.guard.Validate(ctx.UserContext(), token, sessionID); err != nil {
		return fiber.NewError(fiber.StatusForbidden, "CSRF validation failed")
	}
	return ctx.Next()
}

// Transcribe accepts a multipart audio upload and returns the transcript.
func (c *TranscribeController) Transcribe(ctx *fiber.Ctx) error {
	res, err := c.runTranscription(ctx)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusOK).JSON(res)
}

// SecureTranscribe is the envelope variant: same upload, base64-wrapped
// response.
func (c *TranscribeController) SecureTranscribe(ctx *fiber.Ctx) error {
	res, err := c.runTranscription(ctx)
	if err != nil {
		return err
	}

	encoded, err := obfuscate.Encode(res)
	if err != nil {
		c.log.Error("TranscribeController", "Failed to encode response envelope", map[string]interface{}{
			"error": err.Error(),
		})
		return fiber.NewError(fiber.StatusInternalServerError, "Internal server error")
	}
	return ctx.Status(fiber.StatusOK).JSON(dto.SecureResponse{Data: encoded})
}

func (c *TranscribeController) runTranscription(ctx *fiber.Ctx) (*dto.TranscribeResponse, error) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Audio file is required")
	}

	res, err := c.transcribe.Transcribe(ctx.UserContext(), fileHeader)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAudioFile) {
			return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		c.log.Error("TranscribeController", "Transcription failed", map[string]interface{}{
			"filename": serverutils.SanitizeForLogging(fileHeader.Filename, 100),
		})
		return nil, fiber.NewError(fiber.StatusBadGateway, "Transcription service unavailable")
	}
	return res, nil
}
