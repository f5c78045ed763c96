package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsumer_PersistsQueuedExchange(t *testing.T) {
	factory := newTestFactory(t)
	user := createTestUser(t, factory, "alice@example.com")
	chatService := NewChatService(factory, nil)

	chat, err := chatService.CreateChat(context.Background(), user.Id, "Queued")
	require.NoError(t, err)

	publisher := NewPublisherService()
	defer publisher.Close()

	consumer := NewConsumerService(publisher, chatService, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go consumer.Consume(ctx)

	payload, err := json.Marshal(ExchangeJob{
		ChatId: chat.Id.String(),
		Input:  "queued question",
		Output: "queued answer",
	})
	require.NoError(t, err)
	require.NoError(t, publisher.Publish(context.Background(), payload))

	assert.Eventually(t, func() bool {
		got, err := chatService.GetChat(context.Background(), user.Id, chat.Id)
		return err == nil && len(got.Messages) == 2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestConsumer_MalformedJobDoesNotStopTheStream(t *testing.T) {
	factory := newTestFactory(t)
	user := createTestUser(t, factory, "alice@example.com")
	chatService := NewChatService(factory, nil)

	chat, err := chatService.CreateChat(context.Background(), user.Id, "Resilient")
	require.NoError(t, err)

	publisher := NewPublisherService()
	defer publisher.Close()

	consumer := NewConsumerService(publisher, chatService, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go consumer.Consume(ctx)

	require.NoError(t, publisher.Publish(context.Background(), []byte("not json")))

	payload, err := json.Marshal(ExchangeJob{
		ChatId: chat.Id.String(),
		Input:  "still works",
		Output: "indeed",
	})
	require.NoError(t, err)
	require.NoError(t, publisher.Publish(context.Background(), payload))

	assert.Eventually(t, func() bool {
		got, err := chatService.GetChat(context.Background(), user.Id, chat.Id)
		return err == nil && len(got.Messages) == 2
	}, 2*time.Second, 10*time.Millisecond)
}
