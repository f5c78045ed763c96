package unitofwork

import (
	"context"

	"github.com/nithinvarma411/concizee/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ChatRepository() contract.ChatRepository
	MessageRepository() contract.MessageRepository
}
