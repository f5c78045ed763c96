package service

import (
	"context"
	"testing"
	"time"

	"github.com/nithinvarma411/concizee/internal/constant"
	"github.com/nithinvarma411/concizee/internal/entity"
	"github.com/nithinvarma411/concizee/internal/model"
	"github.com/nithinvarma411/concizee/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// nopLogger keeps test output quiet.
type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named in-memory database keeps each test isolated while shared
	// cache lets the pooled connections see the same data.
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.UserProvider{},
		&model.Chat{},
		&model.Message{},
	))
	return db
}

func newTestFactory(t *testing.T) unitofwork.RepositoryFactory {
	t.Helper()
	return unitofwork.NewRepositoryFactory(newTestDB(t))
}

func createTestUser(t *testing.T, factory unitofwork.RepositoryFactory, email string) *entity.User {
	t.Helper()

	user := &entity.User{
		Id:        uuid.New(),
		Email:     email,
		Name:      "Test User",
		Mode:      entity.ThemeModeLight,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	uow := factory.NewUnitOfWork(context.Background())
	require.NoError(t, uow.UserRepository().Create(context.Background(), user))
	return user
}

func TestCreateChat_DefaultTitle(t *testing.T) {
	factory := newTestFactory(t)
	user := createTestUser(t, factory, "alice@example.com")
	svc := NewChatService(factory, nil)

	chat, err := svc.CreateChat(context.Background(), user.Id, "")
	require.NoError(t, err)

	assert.Equal(t, "New Chat", chat.Title)
	assert.Equal(t, user.Id, chat.UserId)
	assert.Empty(t, chat.Messages)
}

func TestCreateChat_DuplicateTitlesAllowed(t *testing.T) {
	factory := newTestFactory(t)
	user := createTestUser(t, factory, "alice@example.com")
	svc := NewChatService(factory, nil)

	first, err := svc.CreateChat(context.Background(), user.Id, "Trip Planning")
	require.NoError(t, err)
	second, err := svc.CreateChat(context.Background(), user.Id, "Trip Planning")
	require.NoError(t, err)

	assert.NotEqual(t, first.Id, second.Id)

	titles, err := svc.GetTitles(context.Background(), user.Id)
	require.NoError(t, err)
	assert.Len(t, titles, 2)
}

func TestGetChat_MessagesInInsertionOrder(t *testing.T) {
	factory := newTestFactory(t)
	user := createTestUser(t, factory, "alice@example.com")
	svc := NewChatService(factory, nil)

	chat, err := svc.CreateChat(context.Background(), user.Id, "Trip Planning")
	require.NoError(t, err)

	exchanges := [][2]string{
		{"Where should I go in May?", "Lisbon."},
		{"How about food?", "Pastel de nata."},
		{"And beaches?", "Cascais."},
	}
	for _, ex := range exchanges {
		require.NoError(t, svc.AppendExchange(context.Background(), chat.Id, ex[0], ex[1]))
	}

	got, err := svc.GetChat(context.Background(), user.Id, chat.Id)
	require.NoError(t, err)
	require.Len(t, got.Messages, 6)

	for i, ex := range exchanges {
		userMsg := got.Messages[i*2]
		botMsg := got.Messages[i*2+1]
		assert.Equal(t, constant.MessageRoleUser, userMsg.Role)
		assert.Equal(t, ex[0], userMsg.Text)
		assert.Equal(t, constant.MessageRoleBot, botMsg.Role)
		assert.Equal(t, ex[1], botMsg.Text)
	}
}

func TestGetChat_OtherUsersChatIsNotFound(t *testing.T) {
	factory := newTestFactory(t)
	alice := createTestUser(t, factory, "alice@example.com")
	bob := createTestUser(t, factory, "bob@example.com")
	svc := NewChatService(factory, nil)

	chat, err := svc.CreateChat(context.Background(), alice.Id, "Private")
	require.NoError(t, err)

	_, err = svc.GetChat(context.Background(), bob.Id, chat.Id)
	assert.ErrorIs(t, err, ErrChatNotFound)
}

func TestDeleteChat_RemovesChatAndMessages(t *testing.T) {
	factory := newTestFactory(t)
	user := createTestUser(t, factory, "alice@example.com")
	svc := NewChatService(factory, nil)

	chat, err := svc.CreateChat(context.Background(), user.Id, "Doomed")
	require.NoError(t, err)
	require.NoError(t, svc.AppendExchange(context.Background(), chat.Id, "hi", "hello"))

	require.NoError(t, svc.DeleteChat(context.Background(), user.Id, chat.Id))

	_, err = svc.GetChat(context.Background(), user.Id, chat.Id)
	assert.ErrorIs(t, err, ErrChatNotFound)

	uow := factory.NewUnitOfWork(context.Background())
	count, err := uow.MessageRepository().Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestDeleteChat_OtherUsersChatSurvives(t *testing.T) {
	factory := newTestFactory(t)
	alice := createTestUser(t, factory, "alice@example.com")
	bob := createTestUser(t, factory, "bob@example.com")
	svc := NewChatService(factory, nil)

	chat, err := svc.CreateChat(context.Background(), alice.Id, "Private")
	require.NoError(t, err)

	err = svc.DeleteChat(context.Background(), bob.Id, chat.Id)
	assert.ErrorIs(t, err, ErrChatNotFound)

	got, err := svc.GetChat(context.Background(), alice.Id, chat.Id)
	require.NoError(t, err)
	assert.Equal(t, "Private", got.Title)
}

func TestAppendExchange_UnknownChat(t *testing.T) {
	factory := newTestFactory(t)
	svc := NewChatService(factory, nil)

	err := svc.AppendExchange(context.Background(), uuid.New(), "hi", "hello")
	assert.ErrorIs(t, err, ErrChatNotFound)
}

func TestGetTitles_MostRecentlyUpdatedFirst(t *testing.T) {
	factory := newTestFactory(t)
	user := createTestUser(t, factory, "alice@example.com")
	svc := NewChatService(factory, nil)

	first, err := svc.CreateChat(context.Background(), user.Id, "First")
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	second, err := svc.CreateChat(context.Background(), user.Id, "Second")
	require.NoError(t, err)

	titles, err := svc.GetTitles(context.Background(), user.Id)
	require.NoError(t, err)
	require.Len(t, titles, 2)
	assert.Equal(t, second.Id, titles[0].Id)

	// A new exchange bumps the older chat back to the front.
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, svc.AppendExchange(context.Background(), first.Id, "hi", "hello"))

	titles, err = svc.GetTitles(context.Background(), user.Id)
	require.NoError(t, err)
	require.Len(t, titles, 2)
	assert.Equal(t, first.Id, titles[0].Id)
	assert.Equal(t, second.Id, titles[1].Id)
}
