package serverutils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
)

// IssueToken signs a stateless session credential. The subject is the user
// id; nothing is stored server-side.
func IssueToken(userId uuid.UUID, ttl time.Duration, secret string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userId.String(),
		"exp":     time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyToken checks signature and expiry and returns the subject user id.
func VerifyToken(tokenStr, secret string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, ErrTokenExpired
		}
		return uuid.Nil, ErrTokenInvalid
	}
	if !token.Valid {
		return uuid.Nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, ErrTokenInvalid
	}
	userIdStr, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, ErrTokenInvalid
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return uuid.Nil, ErrTokenInvalid
	}
	return userId, nil
}
