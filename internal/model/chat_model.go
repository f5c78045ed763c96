package model

import (
	"time"

	"github.com/google/uuid"
)

type Chat struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"` // owning user, immutable
	Title     string    `gorm:"type:text;not null;default:'New Chat'"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;index"`
}

func (Chat) TableName() string {
	return "chats"
}

type Message struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ChatId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Role      string    `gorm:"type:varchar(10);not null"`
	Text      string    `gorm:"type:text;not null"`
	Seq       int       `gorm:"not null"` // insertion order within the chat, stable under equal timestamps
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Message) TableName() string {
	return "messages"
}
