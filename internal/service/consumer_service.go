package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"

	"startup-chatbot-be/internal/dto"
	"startup-chatbot-be/internal/pkg/logger"
	"startup-chatbot-be/pkg/metrics"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// ConsumerService drains the telemetry topic and folds events into the
// Prometheus collectors. Malformed payloads are acked and dropped so
// they cannot wedge the subscription.
type ConsumerService struct {
	subscriber message.Subscriber
	topic      string
	log        logger.ILogger
}

func NewConsumerService(subscriber message.Subscriber, topic string, log logger.ILogger) IConsumerService {
	return &ConsumerService{subscriber: subscriber, topic: topic, log: log}
}

func (s *ConsumerService) Consume(ctx context.Context) error {
	messages, err := s.subscriber.Subscribe(ctx, s.topic)
	if err != nil {
		s.log.Error("ConsumerService", "Failed to subscribe", map[string]interface{}{
			"topic": s.topic,
			"error": err.Error(),
		})
		return err
	}

	s.log.Info("ConsumerService", "Telemetry consumer started", map[string]interface{}{
		"topic": s.topic,
	})

	for msg := range messages {
		s.handle(msg)
	}
	return nil
}

func (s *ConsumerService) handle(msg *message.Message) {
	defer msg.Ack()

	var event dto.TelemetryEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		s.log.Warn("ConsumerService", "Dropped malformed telemetry payload", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}

	switch event.Kind {
	case dto.TelemetryKindLLM:
		metrics.TrackLLMRequest(event.Success)
	case dto.TelemetryKindTranscription:
		metrics.TrackAudioTranscription(event.Success)
	default:
		s.log.Warn("ConsumerService", "Unknown telemetry kind", map[string]interface{}{
			"kind": event.Kind,
		})
	}
}
