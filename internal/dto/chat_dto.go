package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateChatRequest struct {
	Title string `json:"title"`
}

type MessageDTO struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatDTO struct {
	Id        uuid.UUID    `json:"_id"`
	UserId    uuid.UUID    `json:"userId"`
	Title     string       `json:"title"`
	Messages  []MessageDTO `json:"messages"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// ChatTitleDTO keeps the `_id` key the SPA expects from the titles listing.
type ChatTitleDTO struct {
	Id    uuid.UUID `json:"_id"`
	Title string    `json:"title"`
}

type DeleteChatRequest struct {
	ChatId uuid.UUID `json:"chatId" validate:"required"`
}

type SaveResponseRequest struct {
	ChatId uuid.UUID `json:"chatId" validate:"required"`
	Input  string    `json:"input" validate:"required"`
	Output string    `json:"output"`
}
