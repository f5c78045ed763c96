package implementation

import (
	"context"

	"github.com/nithinvarma411/concizee/internal/entity"
	"github.com/nithinvarma411/concizee/internal/mapper"
	"github.com/nithinvarma411/concizee/internal/model"
	"github.com/nithinvarma411/concizee/internal/repository/contract"
	"github.com/nithinvarma411/concizee/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewMessageRepository(db *gorm.DB) contract.MessageRepository {
	return &MessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *MessageRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MessageRepositoryImpl) CreateBatch(ctx context.Context, messages []*entity.Message) error {
	if len(messages) == 0 {
		return nil
	}
	models := make([]*model.Message, len(messages))
	for i, msg := range messages {
		models[i] = r.mapper.MessageToModel(msg)
	}
	return r.db.WithContext(ctx).Create(models).Error
}

func (r *MessageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error) {
	var models []*model.Message
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Message, len(models))
	for i, m := range models {
		entities[i] = r.mapper.MessageToEntity(m)
	}
	return entities, nil
}

func (r *MessageRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Message{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *MessageRepositoryImpl) DeleteAllByChatId(ctx context.Context, chatId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("chat_id = ?", chatId).Delete(&model.Message{}).Error
}

func (r *MessageRepositoryImpl) NextSeq(ctx context.Context, chatId uuid.UUID) (int, error) {
	var max *int
	err := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("chat_id = ?", chatId).
		Select("MAX(seq)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max + 1, nil
}
