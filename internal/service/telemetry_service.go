package service

import (
	"startup-chatbot-be/internal/dto"
	"startup-chatbot-be/internal/pkg/logger"
)

// ITelemetryService records pipeline outcomes. Publishing is
// fire-and-forget: a telemetry failure must never surface to a caller.
type ITelemetryService interface {
	TrackLLMRequest(success bool)
	TrackTranscription(success bool)
}

type TelemetryService struct {
	publisher IPublisherService
	topic     string
	log       logger.ILogger
}

func NewTelemetryService(publisher IPublisherService, topic string, log logger.ILogger) ITelemetryService {
	return &TelemetryService{publisher: publisher, topic: topic, log: log}
}

func (s *TelemetryService) TrackLLMRequest(success bool) {
	s.track(dto.TelemetryEvent{Kind: dto.TelemetryKindLLM, Success: success})
}

func (s *TelemetryService) TrackTranscription(success bool) {
	s.track(dto.TelemetryEvent{Kind: dto.TelemetryKindTranscription, Success: success})
}

func (s *TelemetryService) track(event dto.TelemetryEvent) {
	if err := s.publisher.Publish(s.topic, event); err != nil {
		s.log.Warn("TelemetryService", "Dropped telemetry event", map[string]interface{}{
			"kind":  event.Kind,
			"error": err.Error(),
		})
	}
}
