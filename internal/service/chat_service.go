package service

import (
	"context"
	"log"
	"time"

	"github.com/nithinvarma411/concizee/internal/constant"
	"github.com/nithinvarma411/concizee/internal/dto"
	"github.com/nithinvarma411/concizee/internal/entity"
	"github.com/nithinvarma411/concizee/internal/repository/specification"
	"github.com/nithinvarma411/concizee/internal/repository/unitofwork"
	"github.com/nithinvarma411/concizee/pkg/events"
	pktNats "github.com/nithinvarma411/concizee/pkg/nats"

	"github.com/google/uuid"
)

const defaultChatTitle = "New Chat"

type IChatService interface {
	CreateChat(ctx context.Context, userId uuid.UUID, title string) (*dto.ChatDTO, error)
	GetTitles(ctx context.Context, userId uuid.UUID) ([]*dto.ChatTitleDTO, error)
	GetChat(ctx context.Context, userId, chatId uuid.UUID) (*dto.ChatDTO, error)
	DeleteChat(ctx context.Context, userId, chatId uuid.UUID) error
	AppendExchange(ctx context.Context, chatId uuid.UUID, userText, botText string) error
}

type chatService struct {
	uowFactory unitofwork.RepositoryFactory
	natsPub    *pktNats.Publisher
}

func NewChatService(uowFactory unitofwork.RepositoryFactory, natsPub *pktNats.Publisher) IChatService {
	return &chatService{
		uowFactory: uowFactory,
		natsPub:    natsPub,
	}
}

func (s *chatService) CreateChat(ctx context.Context, userId uuid.UUID, title string) (*dto.ChatDTO, error) {
	if title == "" {
		title = defaultChatTitle
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	now := time.Now()

	chat := &entity.Chat{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uow.ChatRepository().Create(ctx, chat); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.NewChatCreated(chat.Id.String(), userId.String()))

	return &dto.ChatDTO{
		Id:        chat.Id,
		UserId:    chat.UserId,
		Title:     chat.Title,
		Messages:  []dto.MessageDTO{},
		CreatedAt: chat.CreatedAt,
		UpdatedAt: chat.UpdatedAt,
	}, nil
}

func (s *chatService) GetTitles(ctx context.Context, userId uuid.UUID) ([]*dto.ChatTitleDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chats, err := uow.ChatRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "updated_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	titles := make([]*dto.ChatTitleDTO, len(chats))
	for i, chat := range chats {
		titles[i] = &dto.ChatTitleDTO{Id: chat.Id, Title: chat.Title}
	}
	return titles, nil
}

// GetChat loads a full thread. Reads are owner-scoped: a chat belonging to
// another user is indistinguishable from a missing one.
func (s *chatService) GetChat(ctx context.Context, userId, chatId uuid.UUID) (*dto.ChatDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chat, err := uow.ChatRepository().FindOne(ctx,
		specification.ByID{ID: chatId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, ErrChatNotFound
	}

	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByChatID{ChatID: chatId},
		specification.InsertionOrder{},
	)
	if err != nil {
		return nil, err
	}

	msgDTOs := make([]dto.MessageDTO, len(messages))
	for i, msg := range messages {
		msgDTOs[i] = dto.MessageDTO{
			Id:        msg.Id,
			Role:      msg.Role,
			Text:      msg.Text,
			CreatedAt: msg.CreatedAt,
		}
	}

	return &dto.ChatDTO{
		Id:        chat.Id,
		UserId:    chat.UserId,
		Title:     chat.Title,
		Messages:  msgDTOs,
		CreatedAt: chat.CreatedAt,
		UpdatedAt: chat.UpdatedAt,
	}, nil
}

func (s *chatService) DeleteChat(ctx context.Context, userId, chatId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chat, err := uow.ChatRepository().FindOne(ctx,
		specification.ByID{ID: chatId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if chat == nil {
		return ErrChatNotFound
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	if err := uow.MessageRepository().DeleteAllByChatId(ctx, chatId); err != nil {
		uow.Rollback()
		return err
	}
	if err := uow.ChatRepository().Delete(ctx, chatId); err != nil {
		uow.Rollback()
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.publishEvent(ctx, events.NewChatDeleted(chatId.String(), userId.String()))
	return nil
}

// AppendExchange appends the user message and, when present, the bot reply,
// in that order, then bumps the chat so the titles listing re-sorts. This
// path is invoked by the completion gateway and is not owner-scoped.
func (s *chatService) AppendExchange(ctx context.Context, chatId uuid.UUID, userText, botText string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chat, err := uow.ChatRepository().FindOne(ctx, specification.ByID{ID: chatId})
	if err != nil {
		return err
	}
	if chat == nil {
		return ErrChatNotFound
	}

	seq, err := uow.MessageRepository().NextSeq(ctx, chatId)
	if err != nil {
		return err
	}

	now := time.Now()
	messages := []*entity.Message{
		{
			Id:        uuid.New(),
			ChatId:    chatId,
			Role:      constant.MessageRoleUser,
			Text:      userText,
			Seq:       seq,
			CreatedAt: now,
		},
	}
	if botText != "" {
		messages = append(messages, &entity.Message{
			Id:        uuid.New(),
			ChatId:    chatId,
			Role:      constant.MessageRoleBot,
			Text:      botText,
			Seq:       seq + 1,
			CreatedAt: now,
		})
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	if err := uow.MessageRepository().CreateBatch(ctx, messages); err != nil {
		uow.Rollback()
		return err
	}
	if err := uow.ChatRepository().Touch(ctx, chatId, now); err != nil {
		uow.Rollback()
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.publishEvent(ctx, events.NewExchangeAppended(chatId.String(), len(messages)))
	return nil
}

func (s *chatService) publishEvent(ctx context.Context, event events.Event) {
	if s.natsPub == nil {
		return
	}
	if err := s.natsPub.Publish(ctx, event); err != nil {
		log.Printf("[Chat Service] WARN - Failed to publish %s event: %v", event.EventType(), err)
	}
}
