package entity

import (
	"time"

	"github.com/google/uuid"
)

type Chat struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Title     string
	Messages  []Message
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Message struct {
	Id        uuid.UUID
	ChatId    uuid.UUID
	Role      string // "user" | "bot"
	Text      string
	Seq       int
	CreatedAt time.Time
}
