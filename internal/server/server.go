package server

import (
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"startup-chatbot-be/internal/bootstrap"
	"startup-chatbot-be/internal/config"
	"startup-chatbot-be/internal/pkg/serverutils"
	"startup-chatbot-be/pkg/metrics"
)

type Server struct {
	app  *fiber.App
	cfg  *config.Config
	cont *bootstrap.Container
}

func New(cfg *config.Config, cont *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		AppName:   "startup-chatbot-be",
		BodyLimit: 10 * 1024 * 1024,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.App.CorsAllowedOrigins,
		AllowMethods: "GET,POST",
		AllowHeaders: "Origin, Content-Type, Accept, X-CSRF-Token, X-Session-ID",
	}))
	app.Use(otelfiber.Middleware())
	app.Use(httpMetricsMiddleware())
	app.Use(serverutils.ErrorHandlerMiddleware())

	s := &Server{app: app, cfg: cfg, cont: cont}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.cont.SystemController.RegisterRoutes(s.app)
	s.cont.ChatbotController.RegisterRoutes(s.app)
	s.cont.TranscribeController.RegisterRoutes(s.app)
}

func (s *Server) Run() error {
	s.cont.Logger.Info("server", "HTTP server listening", map[string]interface{}{
		"port": s.cfg.App.Port,
	})
	return s.app.Listen(":" + s.cfg.App.Port)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func httpMetricsMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		endpoint := ctx.Route().Path
		if endpoint == "" {
			endpoint = ctx.Path()
		}
		metrics.ObserveHTTPRequest(ctx.Method(), endpoint, ctx.Response().StatusCode(), time.Since(start).Seconds())
		return err
	}
}
