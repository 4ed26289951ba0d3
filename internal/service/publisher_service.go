package service

import (
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"startup-chatbot-be/internal/pkg/logger"
)

type IPublisherService interface {
	Publish(topic string, payload interface{}) error
}

type PublisherService struct {
	publisher message.Publisher
	log       logger.ILogger
}

func NewPublisherService(publisher message.Publisher, log logger.ILogger) IPublisherService {
	return &PublisherService{publisher: publisher, log: log}
}

func (s *PublisherService) Publish(topic string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		s.log.Error("PublisherService", "Failed to marshal payload", map[string]interface{}{
			"topic": topic,
			"error": err.Error(),
		})
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), body)
	if err := s.publisher.Publish(topic, msg); err != nil {
		s.log.Error("PublisherService", "Failed to publish message", map[string]interface{}{
			"topic": topic,
			"error": err.Error(),
		})
		return err
	}
	return nil
}
