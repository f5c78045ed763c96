package service

import "errors"

// Service-level errors. Controllers map these to HTTP statuses:
// not-found -> 404, invalid input -> 400, upstream -> 500.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrChatNotFound        = errors.New("chat not found")
	ErrEmptyInput          = errors.New("userInput is required")
	ErrUpstream            = errors.New("completion provider failed")
	ErrUnsupportedProvider = errors.New("unsupported provider")
	ErrInvalidOAuthState   = errors.New("invalid or expired oauth state")
)
