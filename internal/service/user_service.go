package service

import (
	"context"

	"github.com/nithinvarma411/concizee/internal/dto"
	"github.com/nithinvarma411/concizee/internal/entity"
	"github.com/nithinvarma411/concizee/internal/repository/specification"
	"github.com/nithinvarma411/concizee/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IUserService interface {
	GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserDTO, error)
	GetMode(ctx context.Context, userId uuid.UUID) (*dto.ModeResponse, error)
	ToggleMode(ctx context.Context, userId uuid.UUID) (*dto.ModeResponse, error)
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewUserService(uowFactory unitofwork.RepositoryFactory) IUserService {
	return &userService{uowFactory: uowFactory}
}

func (s *userService) GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return &dto.UserDTO{
		Id:    user.Id,
		Email: user.Email,
		Name:  user.Name,
		Mode:  string(user.Mode),
	}, nil
}

func (s *userService) GetMode(ctx context.Context, userId uuid.UUID) (*dto.ModeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return &dto.ModeResponse{Mode: string(user.Mode)}, nil
}

// ToggleMode flips dark<->light and returns the stored value. Applying it
// twice restores the original theme.
func (s *userService) ToggleMode(ctx context.Context, userId uuid.UUID) (*dto.ModeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	next := entity.ThemeModeDark
	if user.Mode == entity.ThemeModeDark {
		next = entity.ThemeModeLight
	}

	if err := uow.UserRepository().UpdateMode(ctx, userId, next); err != nil {
		return nil, err
	}

	return &dto.ModeResponse{Mode: string(next)}, nil
}
