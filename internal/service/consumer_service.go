package service

import (
	"context"
	"encoding/json"

	"github.com/nithinvarma411/concizee/internal/pkg/logger"

	"github.com/google/uuid"
)

// ExchangeJob is the persist payload produced by the completion gateway.
type ExchangeJob struct {
	ChatId string `json:"chatId"`
	Input  string `json:"input"`
	Output string `json:"output"`
}

type IConsumerService interface {
	Consume(ctx context.Context)
}

type consumerService struct {
	publisher   IPublisherService
	chatService IChatService
	logger      logger.ILogger
}

func NewConsumerService(publisher IPublisherService, chatService IChatService, log logger.ILogger) IConsumerService {
	return &consumerService{
		publisher:   publisher,
		chatService: chatService,
		logger:      log,
	}
}

// Consume drains persist jobs until ctx is cancelled. Storage failures are
// logged and the message is acked anyway: a lost exchange must never block
// the stream or surface to the requester.
func (s *consumerService) Consume(ctx context.Context) {
	messages, err := s.publisher.Subscribe(ctx)
	if err != nil {
		s.logger.Error("Consumer", "Failed to subscribe to persist topic", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	for msg := range messages {
		s.handle(ctx, msg.Payload)
		msg.Ack()
	}
}

func (s *consumerService) handle(ctx context.Context, payload []byte) {
	var job ExchangeJob
	if err := json.Unmarshal(payload, &job); err != nil {
		s.logger.Error("Consumer", "Malformed persist job", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	chatId, err := uuid.Parse(job.ChatId)
	if err != nil {
		s.logger.Warn("Consumer", "Persist job with invalid chat id", map[string]interface{}{
			"chat_id": job.ChatId,
		})
		return
	}

	if err := s.chatService.AppendExchange(ctx, chatId, job.Input, job.Output); err != nil {
		s.logger.Error("Consumer", "Failed to persist exchange", map[string]interface{}{
			"chat_id": job.ChatId,
			"error":   err.Error(),
		})
	}
}
