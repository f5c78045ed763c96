package dto

import (
	"github.com/google/uuid"
)

// PrevChatDTO is a prior conversation turn supplied by the client, already
// role-tagged in the upstream provider's vocabulary ("user"/"assistant").
type PrevChatDTO struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type CompletionRequest struct {
	UserInput string        `json:"userInput" validate:"required"`
	ChatId    uuid.UUID     `json:"chatId"`
	SocketId  string        `json:"socketId"`
	PrevChats []PrevChatDTO `json:"prevChats"`
}

// CompletionResponse carries the bot reply when no push connection was
// named; Success acknowledges an out-of-band delivery instead.
type CompletionResponse struct {
	Response string `json:"response,omitempty"`
	Success  bool   `json:"success,omitempty"`
}
