package contract

import (
	"context"
	"time"

	"github.com/nithinvarma411/concizee/internal/entity"
	"github.com/nithinvarma411/concizee/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatRepository interface {
	Create(ctx context.Context, chat *entity.Chat) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chat, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chat, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// Touch bumps updated_at so the chat re-sorts to the front of the
	// title listing after a message append.
	Touch(ctx context.Context, id uuid.UUID, at time.Time) error
}

type MessageRepository interface {
	CreateBatch(ctx context.Context, messages []*entity.Message) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	DeleteAllByChatId(ctx context.Context, chatId uuid.UUID) error

	// NextSeq returns the next insertion index for a chat.
	NextSeq(ctx context.Context, chatId uuid.UUID) (int, error)
}
