package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/nithinvarma411/concizee/internal/constant"
	"github.com/nithinvarma411/concizee/internal/dto"
	"github.com/nithinvarma411/concizee/internal/websocket"
	"github.com/nithinvarma411/concizee/pkg/llm"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	reply    string
	err      error
	calls    int
	messages []llm.Message
}

func (f *fakeProvider) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (string, error) {
	f.calls++
	f.messages = messages
	return f.reply, f.err
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

type fakePublisher struct {
	payloads [][]byte
}

func (f *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	f.payloads = append(f.payloads, payload)
	return nil
}

func (f *fakePublisher) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	return nil, nil
}

func (f *fakePublisher) Close() error { return nil }

func newCompletionFixture(provider *fakeProvider) (ICompletionService, *fakePublisher) {
	publisher := &fakePublisher{}
	hub := websocket.NewHub(nil, nopLogger{})
	return NewCompletionService(provider, publisher, hub, nopLogger{}), publisher
}

func TestComplete_EmptyInput(t *testing.T) {
	provider := &fakeProvider{reply: "never"}
	svc, publisher := newCompletionFixture(provider)

	_, err := svc.Complete(context.Background(), &dto.CompletionRequest{})
	assert.ErrorIs(t, err, ErrEmptyInput)
	assert.Zero(t, provider.calls)
	assert.Empty(t, publisher.payloads)
}

func TestComplete_UpstreamFailureIsNotRetried(t *testing.T) {
	provider := &fakeProvider{err: assert.AnError}
	svc, publisher := newCompletionFixture(provider)

	_, err := svc.Complete(context.Background(), &dto.CompletionRequest{
		UserInput: "hello",
		ChatId:    uuid.New(),
	})
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Equal(t, 1, provider.calls)
	assert.Empty(t, publisher.payloads, "failed turns must not be persisted")
}

func TestComplete_DirectDelivery(t *testing.T) {
	provider := &fakeProvider{reply: "concise answer"}
	svc, publisher := newCompletionFixture(provider)
	chatId := uuid.New()

	res, err := svc.Complete(context.Background(), &dto.CompletionRequest{
		UserInput: "summarize this",
		ChatId:    chatId,
	})
	require.NoError(t, err)
	assert.Equal(t, "concise answer", res.Response)
	assert.False(t, res.Success)

	require.Len(t, publisher.payloads, 1)
	var job ExchangeJob
	require.NoError(t, json.Unmarshal(publisher.payloads[0], &job))
	assert.Equal(t, chatId.String(), job.ChatId)
	assert.Equal(t, "summarize this", job.Input)
	assert.Equal(t, "concise answer", job.Output)
}

func TestComplete_SocketDeliveryAcknowledges(t *testing.T) {
	provider := &fakeProvider{reply: "concise answer"}
	svc, _ := newCompletionFixture(provider)

	// The named connection is gone; delivery is best-effort and the caller
	// still gets an acknowledgement.
	res, err := svc.Complete(context.Background(), &dto.CompletionRequest{
		UserInput: "summarize this",
		ChatId:    uuid.New(),
		SocketId:  uuid.NewString(),
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Empty(t, res.Response)
}

func TestComplete_NoChatIdSkipsPersist(t *testing.T) {
	provider := &fakeProvider{reply: "concise answer"}
	svc, publisher := newCompletionFixture(provider)

	res, err := svc.Complete(context.Background(), &dto.CompletionRequest{UserInput: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "concise answer", res.Response)
	assert.Empty(t, publisher.payloads)
}

func TestComplete_PromptComposition(t *testing.T) {
	provider := &fakeProvider{reply: "ok"}
	svc, _ := newCompletionFixture(provider)

	_, err := svc.Complete(context.Background(), &dto.CompletionRequest{
		UserInput: "and now?",
		PrevChats: []dto.PrevChatDTO{
			{Role: constant.MessageRoleUser, Content: "first question"},
			{Role: constant.MessageRoleBot, Content: "first answer"},
		},
	})
	require.NoError(t, err)

	require.Len(t, provider.messages, 4)
	assert.Equal(t, "system", provider.messages[0].Role)
	assert.Equal(t, constant.ConciseSystemPrompt, provider.messages[0].Content)
	assert.Equal(t, "user", provider.messages[1].Role)
	assert.Equal(t, "assistant", provider.messages[2].Role, "stored bot turns are retagged for the provider")
	assert.Equal(t, "first answer", provider.messages[2].Content)
	assert.Equal(t, llm.Message{Role: "user", Content: "and now?"}, provider.messages[3])
}
