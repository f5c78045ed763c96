package controller

import (
	"errors"

	"github.com/nithinvarma411/concizee/internal/dto"
	"github.com/nithinvarma411/concizee/internal/pkg/serverutils"
	"github.com/nithinvarma411/concizee/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router)
	GetProfile(ctx *fiber.Ctx) error
	GetMode(ctx *fiber.Ctx) error
	ToggleMode(ctx *fiber.Ctx) error
	CheckAuth(ctx *fiber.Ctx) error
}

type userController struct {
	service       service.IUserService
	jwtMiddleware fiber.Handler
}

func NewUserController(service service.IUserService, jwtMiddleware fiber.Handler) IUserController {
	return &userController{
		service:       service,
		jwtMiddleware: jwtMiddleware,
	}
}

func (c *userController) RegisterRoutes(r fiber.Router) {
	r.Get("/profile", c.jwtMiddleware, c.GetProfile)
	r.Get("/get-mode", c.jwtMiddleware, c.GetMode)
	r.Patch("/toggle-mode", c.jwtMiddleware, c.ToggleMode)
	r.Get("/check-auth", c.jwtMiddleware, c.CheckAuth)
}

func (c *userController) GetProfile(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.service.GetProfile(ctx.Context(), userId)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("User profile", res))
}

func (c *userController) GetMode(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.service.GetMode(ctx.Context(), userId)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(res)
}

func (c *userController) ToggleMode(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.service.ToggleMode(ctx.Context(), userId)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(res)
}

// CheckAuth only answers once the token middleware has admitted the request.
func (c *userController) CheckAuth(ctx *fiber.Ctx) error {
	return ctx.JSON(dto.CheckAuthResponse{Authenticated: true})
}
