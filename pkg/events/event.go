package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "CHAT_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Domain event codes published by the chat and completion services.
const (
	TypeChatCreated      = "CHAT_CREATED"
	TypeChatDeleted      = "CHAT_DELETED"
	TypeExchangeAppended = "EXCHANGE_APPENDED"
	TypeUserLoggedIn     = "USER_LOGGED_IN"
)

func NewChatCreated(chatId, userId string) Event {
	return BaseEvent{
		Type:       TypeChatCreated,
		Data:       map[string]interface{}{"chat_id": chatId, "user_id": userId},
		OccurredAt: time.Now(),
	}
}

func NewChatDeleted(chatId, userId string) Event {
	return BaseEvent{
		Type:       TypeChatDeleted,
		Data:       map[string]interface{}{"chat_id": chatId, "user_id": userId},
		OccurredAt: time.Now(),
	}
}

func NewExchangeAppended(chatId string, messageCount int) Event {
	return BaseEvent{
		Type:       TypeExchangeAppended,
		Data:       map[string]interface{}{"chat_id": chatId, "message_count": messageCount},
		OccurredAt: time.Now(),
	}
}

func NewUserLoggedIn(userId, email string) Event {
	return BaseEvent{
		Type:       TypeUserLoggedIn,
		Data:       map[string]interface{}{"user_id": userId, "email": email},
		OccurredAt: time.Now(),
	}
}
