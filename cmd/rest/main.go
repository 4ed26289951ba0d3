package main

import (
	"context"
	"log"

	"startup-chatbot-be/internal/bootstrap"
	"startup-chatbot-be/internal/config"
	"startup-chatbot-be/internal/server"
	"startup-chatbot-be/internal/tracer"
)

func main() {
	cfg := config.Load()

	shutdownTracer := tracer.InitTracer()
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("WARN: tracer shutdown: %v", err)
		}
	}()

	container := bootstrap.NewContainer(cfg)
	defer container.Logger.Sync()

	go func() {
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			container.Logger.Error("main", "Telemetry consumer stopped", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
