package service

import (
	"context"
	"net/url"
	"testing"

	"github.com/nithinvarma411/concizee/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOAuthFixture(t *testing.T) IOAuthService {
	t.Helper()
	return NewOAuthService(newTestFactory(t), config.AuthConfig{
		GoogleClientID:     "client-id",
		GoogleClientSecret: "client-secret",
		GoogleRedirectURL:  "http://localhost:8080/auth/google/callback",
		JWTSecret:          "secret",
	}, nil)
}

func TestGetLoginURL_UnsupportedProvider(t *testing.T) {
	svc := newOAuthFixture(t)

	_, err := svc.GetLoginURL("github")
	assert.ErrorIs(t, err, ErrUnsupportedProvider)
}

func TestGetLoginURL_CarriesFreshState(t *testing.T) {
	svc := newOAuthFixture(t)

	first, err := svc.GetLoginURL("google")
	require.NoError(t, err)
	second, err := svc.GetLoginURL("google")
	require.NoError(t, err)

	firstState := queryParam(t, first, "state")
	secondState := queryParam(t, second, "state")
	assert.NotEmpty(t, firstState)
	assert.NotEqual(t, firstState, secondState)
	assert.Equal(t, "client-id", queryParam(t, first, "client_id"))
}

func TestHandleCallback_RejectsUnknownState(t *testing.T) {
	svc := newOAuthFixture(t)

	_, err := svc.HandleCallback(context.Background(), "google", "never-issued", "code")
	assert.ErrorIs(t, err, ErrInvalidOAuthState)
}

func TestHandleCallback_RejectsUnsupportedProvider(t *testing.T) {
	svc := newOAuthFixture(t)

	_, err := svc.HandleCallback(context.Background(), "github", "state", "code")
	assert.ErrorIs(t, err, ErrUnsupportedProvider)
}

func queryParam(t *testing.T, rawURL, key string) string {
	t.Helper()
	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	return u.Query().Get(key)
}
