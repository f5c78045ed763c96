package service

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// PersistTopic carries completed exchanges from the completion gateway to
// the consumer that writes them into the chat store.
const PersistTopic = "chat.persist"

type IPublisherService interface {
	Publish(ctx context.Context, payload []byte) error
	Subscribe(ctx context.Context) (<-chan *message.Message, error)
	Close() error
}

type publisherService struct {
	pubSub *gochannel.GoChannel
}

func NewPublisherService() IPublisherService {
	// Persistent delivery covers jobs published before the consumer has
	// finished subscribing at boot.
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{
			OutputChannelBuffer: 64,
			Persistent:          true,
		},
		watermill.NopLogger{},
	)
	return &publisherService{pubSub: pubSub}
}

func (s *publisherService) Publish(ctx context.Context, payload []byte) error {
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	return s.pubSub.Publish(PersistTopic, msg)
}

func (s *publisherService) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	return s.pubSub.Subscribe(ctx, PersistTopic)
}

func (s *publisherService) Close() error {
	return s.pubSub.Close()
}
