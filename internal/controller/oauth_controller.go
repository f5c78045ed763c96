package controller

import (
	"errors"
	"log"
	"time"

	"github.com/nithinvarma411/concizee/internal/config"
	"github.com/nithinvarma411/concizee/internal/pkg/serverutils"
	"github.com/nithinvarma411/concizee/internal/service"

	"github.com/gofiber/fiber/v2"
)

const authCookieName = "token"

type IOAuthController interface {
	RegisterRoutes(r fiber.Router)
	Login(ctx *fiber.Ctx) error
	Callback(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
}

type oauthController struct {
	service service.IOAuthService
	appCfg  config.AppConfig
	authCfg config.AuthConfig
}

func NewOAuthController(service service.IOAuthService, appCfg config.AppConfig, authCfg config.AuthConfig) IOAuthController {
	return &oauthController{
		service: service,
		appCfg:  appCfg,
		authCfg: authCfg,
	}
}

func (c *oauthController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Get("/:provider", c.Login)
	h.Get("/:provider/callback", c.Callback)

	r.Post("/logout", c.Logout)
}

func (c *oauthController) Login(ctx *fiber.Ctx) error {
	provider := ctx.Params("provider")

	url, err := c.service.GetLoginURL(provider)
	if err != nil {
		log.Printf("[OAuth] ERROR - Failed to get login URL: %v", err)
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return ctx.Redirect(url)
}

func (c *oauthController) Callback(ctx *fiber.Ctx) error {
	provider := ctx.Params("provider")
	state := ctx.Query("state")
	code := ctx.Query("code")

	if code == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Missing code"))
	}

	res, err := c.service.HandleCallback(ctx.Context(), provider, state, code)
	if err != nil {
		log.Printf("[OAuth] ERROR - HandleCallback failed: %v", err)
		// A bad provider or a replayed/expired state is the client's
		// mistake, not ours.
		if errors.Is(err, service.ErrInvalidOAuthState) || errors.Is(err, service.ErrUnsupportedProvider) {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	c.setAuthCookie(ctx, res.AccessToken, c.authCfg.TokenTTL)

	return ctx.Redirect(c.appCfg.ClientURL, fiber.StatusTemporaryRedirect)
}

// Logout clears the session cookie. It answers 200 whether or not a session
// existed, so the client can always treat it as signed out.
func (c *oauthController) Logout(ctx *fiber.Ctx) error {
	c.setAuthCookie(ctx, "", -time.Hour)
	return ctx.JSON(serverutils.SuccessResponse("Logged out successfully", struct{}{}))
}

func (c *oauthController) setAuthCookie(ctx *fiber.Ctx, value string, ttl time.Duration) {
	// Cross-site cookies need SameSite=None+Secure; local development over
	// plain HTTP uses Strict instead.
	sameSite := "Strict"
	if c.appCfg.Environment == "production" {
		sameSite = "None"
	}
	ctx.Cookie(&fiber.Cookie{
		Name:     authCookieName,
		Value:    value,
		Expires:  time.Now().Add(ttl),
		MaxAge:   int(ttl.Seconds()),
		HTTPOnly: true,
		Secure:   c.appCfg.Environment == "production",
		SameSite: sameSite,
		Path:     "/",
	})
}
