package entity

import (
	"time"

	"github.com/google/uuid"
)

type ThemeMode string

const (
	ThemeModeLight ThemeMode = "light"
	ThemeModeDark  ThemeMode = "dark"
)

type User struct {
	Id        uuid.UUID
	Email     string
	Name      string
	Mode      ThemeMode
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserProvider links a user to an external identity provider account.
type UserProvider struct {
	Id             uuid.UUID
	UserId         uuid.UUID
	ProviderName   string
	ProviderUserId string
	AvatarURL      string
	CreatedAt      time.Time
}
