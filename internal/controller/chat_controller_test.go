package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nithinvarma411/concizee/internal/entity"
	"github.com/nithinvarma411/concizee/internal/model"
	"github.com/nithinvarma411/concizee/internal/pkg/serverutils"
	"github.com/nithinvarma411/concizee/internal/repository/unitofwork"
	"github.com/nithinvarma411/concizee/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testJWTSecret = "test-secret"

type chatFixture struct {
	app    *fiber.App
	userId uuid.UUID
	token  string
}

func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Chat{}, &model.Message{}))

	factory := unitofwork.NewRepositoryFactory(db)

	user := &entity.User{
		Id:        uuid.New(),
		Email:     "alice@example.com",
		Name:      "Alice",
		Mode:      entity.ThemeModeLight,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	uow := factory.NewUnitOfWork(context.Background())
	require.NoError(t, uow.UserRepository().Create(context.Background(), user))

	token, err := serverutils.IssueToken(user.Id, time.Hour, testJWTSecret)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())

	chatService := service.NewChatService(factory, nil)
	jwtMiddleware := serverutils.NewJwtMiddleware(testJWTSecret, factory)
	api := app.Group("/api/v1")
	NewChatController(chatService, jwtMiddleware).RegisterRoutes(api)

	return &chatFixture{app: app, userId: user.Id, token: token}
}

func (f *chatFixture) request(t *testing.T, method, target string, body interface{}, authed bool) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.AddCookie(&http.Cookie{Name: "token", Value: f.token})
	}

	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestChatRoutes_RequireSession(t *testing.T) {
	f := newChatFixture(t)

	resp := f.request(t, http.MethodPost, "/api/v1/create-chat", fiber.Map{"title": "x"}, false)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = f.request(t, http.MethodGet, "/api/v1/get-titles", nil, false)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestChatRoutes_CreateAndFetch(t *testing.T) {
	f := newChatFixture(t)

	resp := f.request(t, http.MethodPost, "/api/v1/create-chat", fiber.Map{"title": "Trip Planning"}, true)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		Data struct {
			Id    uuid.UUID `json:"_id"`
			Title string    `json:"title"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, "Trip Planning", created.Data.Title)

	resp = f.request(t, http.MethodGet, "/api/v1/getchatbyid/"+created.Data.Id.String(), nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = f.request(t, http.MethodGet, "/api/v1/get-titles", nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var titles struct {
		Data []struct {
			Id    uuid.UUID `json:"_id"`
			Title string    `json:"title"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&titles))
	require.Len(t, titles.Data, 1)
	assert.Equal(t, created.Data.Id, titles.Data[0].Id)
}

func TestChatRoutes_DeleteValidation(t *testing.T) {
	f := newChatFixture(t)

	// Missing chatId fails validation before hitting storage.
	resp := f.request(t, http.MethodDelete, "/api/v1/delete-chat", fiber.Map{}, true)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = f.request(t, http.MethodDelete, "/api/v1/delete-chat", fiber.Map{"chatId": uuid.NewString()}, true)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestChatRoutes_SaveResponseIsUnauthenticated(t *testing.T) {
	f := newChatFixture(t)

	resp := f.request(t, http.MethodPost, "/api/v1/create-chat", nil, true)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		Data struct {
			Id uuid.UUID `json:"_id"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))

	resp = f.request(t, http.MethodPost, "/api/v1/save-response", fiber.Map{
		"chatId": created.Data.Id,
		"input":  "question",
		"output": "answer",
	}, false)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = f.request(t, http.MethodGet, "/api/v1/getchatbyid/"+created.Data.Id.String(), nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var chat struct {
		Data struct {
			Messages []struct {
				Role string `json:"role"`
				Text string `json:"text"`
			} `json:"messages"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&chat))
	require.Len(t, chat.Data.Messages, 2)
	assert.Equal(t, "question", chat.Data.Messages[0].Text)
	assert.Equal(t, "answer", chat.Data.Messages[1].Text)
}
