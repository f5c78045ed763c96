package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/nithinvarma411/concizee/internal/config"
	"github.com/nithinvarma411/concizee/internal/dto"
	"github.com/nithinvarma411/concizee/internal/entity"
	"github.com/nithinvarma411/concizee/internal/pkg/serverutils"
	"github.com/nithinvarma411/concizee/internal/repository/specification"
	"github.com/nithinvarma411/concizee/internal/repository/unitofwork"
	"github.com/nithinvarma411/concizee/pkg/events"
	pktNats "github.com/nithinvarma411/concizee/pkg/nats"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// stateTTL bounds how long a login redirect stays redeemable.
const stateTTL = 10 * time.Minute

type IOAuthService interface {
	GetLoginURL(provider string) (string, error)
	HandleCallback(ctx context.Context, provider, state, code string) (*dto.LoginResponse, error)
}

type oauthService struct {
	uowFactory unitofwork.RepositoryFactory
	googleConf *oauth2.Config
	authCfg    config.AuthConfig
	states     *gocache.Cache
	natsPub    *pktNats.Publisher
}

func NewOAuthService(uowFactory unitofwork.RepositoryFactory, authCfg config.AuthConfig, natsPub *pktNats.Publisher) IOAuthService {
	conf := &oauth2.Config{
		ClientID:     authCfg.GoogleClientID,
		ClientSecret: authCfg.GoogleClientSecret,
		RedirectURL:  authCfg.GoogleRedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}

	return &oauthService{
		uowFactory: uowFactory,
		googleConf: conf,
		authCfg:    authCfg,
		states:     gocache.New(stateTTL, 2*stateTTL),
		natsPub:    natsPub,
	}
}

func (s *oauthService) GetLoginURL(provider string) (string, error) {
	if provider != "google" {
		return "", ErrUnsupportedProvider
	}

	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate oauth state: %w", err)
	}
	state := base64.URLEncoding.EncodeToString(b)
	s.states.SetDefault(state, true)

	return s.googleConf.AuthCodeURL(state), nil
}

func (s *oauthService) HandleCallback(ctx context.Context, provider, state, code string) (*dto.LoginResponse, error) {
	if provider != "google" {
		return nil, ErrUnsupportedProvider
	}

	// Reject unknown/expired state before touching the provider.
	if _, ok := s.states.Get(state); !ok {
		return nil, ErrInvalidOAuthState
	}
	s.states.Delete(state)

	token, err := s.googleConf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange failed: %w", err)
	}

	googleUser, err := fetchGoogleUserInfo(ctx, token.AccessToken)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: googleUser.Email})
	if err != nil {
		return nil, err
	}

	if user == nil {
		// First login creates the account with the default light theme.
		newUser := &entity.User{
			Id:        uuid.New(),
			Email:     googleUser.Email,
			Name:      googleUser.Name,
			Mode:      entity.ThemeModeLight,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		if err := uow.Begin(ctx); err != nil {
			return nil, err
		}
		if err := uow.UserRepository().Create(ctx, newUser); err != nil {
			uow.Rollback()
			return nil, err
		}
		if err := uow.Commit(); err != nil {
			return nil, err
		}

		user = newUser
	}

	userProvider := &entity.UserProvider{
		Id:             uuid.New(),
		UserId:         user.Id,
		ProviderName:   "google",
		ProviderUserId: googleUser.ID,
		AvatarURL:      googleUser.Picture,
		CreatedAt:      time.Now(),
	}
	if err := uow.UserRepository().SaveUserProvider(ctx, userProvider); err != nil {
		return nil, fmt.Errorf("failed to save provider info: %w", err)
	}

	signedToken, err := serverutils.IssueToken(user.Id, s.authCfg.TokenTTL, s.authCfg.JWTSecret)
	if err != nil {
		return nil, err
	}

	if s.natsPub != nil {
		if err := s.natsPub.Publish(ctx, events.NewUserLoggedIn(user.Id.String(), user.Email)); err != nil {
			log.Printf("[OAuth Service] WARN - Failed to publish login event: %v", err)
		}
	}

	return &dto.LoginResponse{
		AccessToken: signedToken,
		User: dto.UserDTO{
			Id:    user.Id,
			Email: user.Email,
			Name:  user.Name,
			Mode:  string(user.Mode),
		},
	}, nil
}

type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func fetchGoogleUserInfo(ctx context.Context, accessToken string) (*googleUserInfo, error) {
	url := "https://www.googleapis.com/oauth2/v2/userinfo?access_token=" + accessToken
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed getting user info: %w", err)
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed reading response: %w", err)
	}

	var info googleUserInfo
	if err := json.Unmarshal(content, &info); err != nil {
		return nil, err
	}
	return &info, nil
}
