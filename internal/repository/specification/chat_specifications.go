package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByChatID struct {
	ChatID uuid.UUID
}

func (s ByChatID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_id = ?", s.ChatID)
}

// InsertionOrder sorts messages the way they were appended.
type InsertionOrder struct{}

func (s InsertionOrder) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC").Order("seq ASC")
}
