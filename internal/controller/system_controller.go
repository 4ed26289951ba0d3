package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"startup-chatbot-be/internal/pkg/logger"
	"startup-chatbot-be/pkg/metrics"
	"startup-chatbot-be/pkg/store"
)

type ISystemController interface {
	RegisterRoutes(r fiber.Router)
}

type SystemController struct {
	store store.SessionStore
	log   logger.ILogger
}

func NewSystemController(st store.SessionStore, log logger.ILogger) ISystemController {
	return &SystemController{store: st, log: log}
}

func (c *SystemController) RegisterRoutes(r fiber.Router) {
	r.Get("/", c.Root)
	r.Get("/health", c.Health)
	r.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
}

func (c *SystemController) Root(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Startup chatbot backend is running",
	})
}

// Health reports liveness plus the session store reachability. A down
// store degrades the report but keeps the 200: the service still answers
// queries without persistent history.
func (c *SystemController) Health(ctx *fiber.Ctx) error {
	storeStatus := "ok"
	if err := c.store.Ping(ctx.UserContext()); err != nil {
		storeStatus = "unavailable"
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":        "healthy",
		"session_store": storeStatus,
	})
}
