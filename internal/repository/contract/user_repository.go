package contract

import (
	"context"

	"github.com/nithinvarma411/concizee/internal/entity"
	"github.com/nithinvarma411/concizee/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// UpdateMode flips only the theme column, leaving the rest untouched.
	UpdateMode(ctx context.Context, id uuid.UUID, mode entity.ThemeMode) error

	// Provider
	SaveUserProvider(ctx context.Context, provider *entity.UserProvider) error
}
