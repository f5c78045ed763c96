package implementation

import (
	"context"
	"testing"
	"time"

	"github.com/nithinvarma411/concizee/internal/entity"
	"github.com/nithinvarma411/concizee/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.UserProvider{}))
	return db
}

func TestSaveUserProvider_RepeatLoginsKeepOneRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	user := &entity.User{
		Id:        uuid.New(),
		Email:     "alice@example.com",
		Name:      "Alice",
		Mode:      entity.ThemeModeLight,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, repo.Create(context.Background(), user))

	save := func(avatar string) {
		require.NoError(t, repo.SaveUserProvider(context.Background(), &entity.UserProvider{
			Id:             uuid.New(),
			UserId:         user.Id,
			ProviderName:   "google",
			ProviderUserId: "google-sub-123",
			AvatarURL:      avatar,
			CreatedAt:      time.Now(),
		}))
	}

	save("https://example.com/avatar-1.png")
	save("https://example.com/avatar-2.png")
	save("https://example.com/avatar-3.png")

	var count int64
	require.NoError(t, db.Model(&model.UserProvider{}).
		Where("provider_name = ? AND provider_user_id = ?", "google", "google-sub-123").
		Count(&count).Error)
	assert.EqualValues(t, 1, count, "one identity must map to one provider row")

	var row model.UserProvider
	require.NoError(t, db.Where("provider_name = ? AND provider_user_id = ?", "google", "google-sub-123").
		First(&row).Error)
	assert.Equal(t, "https://example.com/avatar-3.png", row.AvatarURL, "repeat saves refresh the avatar")
	assert.Equal(t, user.Id, row.UserId)
}

func TestSaveUserProvider_DistinctIdentitiesKeepDistinctRows(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	user := &entity.User{
		Id:        uuid.New(),
		Email:     "alice@example.com",
		Mode:      entity.ThemeModeLight,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, repo.Create(context.Background(), user))

	for _, sub := range []string{"google-sub-1", "google-sub-2"} {
		require.NoError(t, repo.SaveUserProvider(context.Background(), &entity.UserProvider{
			Id:             uuid.New(),
			UserId:         user.Id,
			ProviderName:   "google",
			ProviderUserId: sub,
			CreatedAt:      time.Now(),
		}))
	}

	var count int64
	require.NoError(t, db.Model(&model.UserProvider{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}
