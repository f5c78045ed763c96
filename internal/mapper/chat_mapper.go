package mapper

import (
	"github.com/nithinvarma411/concizee/internal/entity"
	"github.com/nithinvarma411/concizee/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) ChatToEntity(c *model.Chat) *entity.Chat {
	if c == nil {
		return nil
	}
	return &entity.Chat{
		Id:        c.Id,
		UserId:    c.UserId,
		Title:     c.Title,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (m *ChatMapper) ChatToModel(c *entity.Chat) *model.Chat {
	if c == nil {
		return nil
	}
	return &model.Chat{
		Id:        c.Id,
		UserId:    c.UserId,
		Title:     c.Title,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (m *ChatMapper) MessageToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}
	return &entity.Message{
		Id:        msg.Id,
		ChatId:    msg.ChatId,
		Role:      msg.Role,
		Text:      msg.Text,
		Seq:       msg.Seq,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *ChatMapper) MessageToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}
	return &model.Message{
		Id:        msg.Id,
		ChatId:    msg.ChatId,
		Role:      msg.Role,
		Text:      msg.Text,
		Seq:       msg.Seq,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *ChatMapper) MessagesToEntities(models []*model.Message) []entity.Message {
	entities := make([]entity.Message, len(models))
	for i, msg := range models {
		entities[i] = *m.MessageToEntity(msg)
	}
	return entities
}
