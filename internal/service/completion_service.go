package service

import (
	"context"
	"encoding/json"

	"github.com/nithinvarma411/concizee/internal/constant"
	"github.com/nithinvarma411/concizee/internal/dto"
	"github.com/nithinvarma411/concizee/internal/pkg/logger"
	"github.com/nithinvarma411/concizee/internal/websocket"
	"github.com/nithinvarma411/concizee/pkg/llm"

	"github.com/google/uuid"
)

const completionTemperature = 0.3

type ICompletionService interface {
	Complete(ctx context.Context, req *dto.CompletionRequest) (*dto.CompletionResponse, error)
}

type completionService struct {
	llmProvider llm.LLMProvider
	publisher   IPublisherService
	hub         *websocket.Hub
	logger      logger.ILogger
}

func NewCompletionService(llmProvider llm.LLMProvider, publisher IPublisherService, hub *websocket.Hub, log logger.ILogger) ICompletionService {
	return &completionService{
		llmProvider: llmProvider,
		publisher:   publisher,
		hub:         hub,
		logger:      log,
	}
}

// Complete runs one turn against the model. The reply is delivered over the
// caller's websocket connection when a socketId is supplied, otherwise it is
// returned in the response body. Persistence is queued and never blocks the
// reply.
func (s *completionService) Complete(ctx context.Context, req *dto.CompletionRequest) (*dto.CompletionResponse, error) {
	if req.UserInput == "" {
		return nil, ErrEmptyInput
	}

	messages := s.composeMessages(req)

	reply, err := s.llmProvider.Chat(ctx, messages, llm.WithTemperature(completionTemperature))
	if err != nil {
		s.logger.Error("Completion", "Provider call failed", map[string]interface{}{
			"chat_id": req.ChatId.String(),
			"error":   err.Error(),
		})
		return nil, ErrUpstream
	}

	s.queuePersist(ctx, req, reply)

	if req.SocketId != "" {
		s.deliver(req.SocketId, reply)
		return &dto.CompletionResponse{Success: true}, nil
	}
	return &dto.CompletionResponse{Response: reply}, nil
}

func (s *completionService) composeMessages(req *dto.CompletionRequest) []llm.Message {
	messages := make([]llm.Message, 0, len(req.PrevChats)+2)
	messages = append(messages, llm.Message{
		Role:    "system",
		Content: constant.ConciseSystemPrompt,
	})
	for _, prev := range req.PrevChats {
		role := prev.Role
		if role == constant.MessageRoleBot {
			role = "assistant"
		}
		messages = append(messages, llm.Message{Role: role, Content: prev.Content})
	}
	return append(messages, llm.Message{Role: "user", Content: req.UserInput})
}

func (s *completionService) queuePersist(ctx context.Context, req *dto.CompletionRequest, reply string) {
	if req.ChatId == uuid.Nil {
		return
	}
	payload, err := json.Marshal(ExchangeJob{
		ChatId: req.ChatId.String(),
		Input:  req.UserInput,
		Output: reply,
	})
	if err != nil {
		s.logger.Error("Completion", "Failed to encode persist job", map[string]interface{}{
			"chat_id": req.ChatId.String(),
			"error":   err.Error(),
		})
		return
	}
	if err := s.publisher.Publish(ctx, payload); err != nil {
		s.logger.Error("Completion", "Failed to queue persist job", map[string]interface{}{
			"chat_id": req.ChatId.String(),
			"error":   err.Error(),
		})
	}
}

func (s *completionService) deliver(socketId, reply string) {
	connID, err := uuid.Parse(socketId)
	if err != nil {
		s.logger.Warn("Completion", "Invalid socket id", map[string]interface{}{
			"socket_id": socketId,
		})
		return
	}
	s.hub.Send(connID, "botResponse", map[string]string{"response": reply})
}
