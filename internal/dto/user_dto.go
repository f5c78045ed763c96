package dto

import (
	"github.com/google/uuid"
)

type UserDTO struct {
	Id    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
	Mode  string    `json:"mode"`
}

type LoginResponse struct {
	AccessToken string  `json:"access_token"`
	User        UserDTO `json:"user"`
}

type ModeResponse struct {
	Mode string `json:"mode"`
}

type CheckAuthResponse struct {
	Authenticated bool `json:"authenticated"`
}
