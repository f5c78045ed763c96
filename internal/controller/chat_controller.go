package controller

import (
	"errors"

	"github.com/nithinvarma411/concizee/internal/dto"
	"github.com/nithinvarma411/concizee/internal/pkg/serverutils"
	"github.com/nithinvarma411/concizee/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	CreateChat(ctx *fiber.Ctx) error
	GetTitles(ctx *fiber.Ctx) error
	GetChat(ctx *fiber.Ctx) error
	DeleteChat(ctx *fiber.Ctx) error
	SaveResponse(ctx *fiber.Ctx) error
}

type chatController struct {
	service       service.IChatService
	jwtMiddleware fiber.Handler
}

func NewChatController(service service.IChatService, jwtMiddleware fiber.Handler) IChatController {
	return &chatController{
		service:       service,
		jwtMiddleware: jwtMiddleware,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	// The gateway persists exchanges on behalf of the user, so this route
	// carries no session.
	r.Post("/save-response", c.SaveResponse)

	h := r.Group("", c.jwtMiddleware)
	h.Post("/create-chat", c.CreateChat)
	h.Get("/get-titles", c.GetTitles)
	h.Get("/getchatbyid/:chatId", c.GetChat)
	h.Delete("/delete-chat", c.DeleteChat)
}

func (c *chatController) CreateChat(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.CreateChatRequest
	if err := ctx.BodyParser(&req); err != nil && !errors.Is(err, fiber.ErrUnprocessableEntity) {
		return err
	}

	res, err := c.service.CreateChat(ctx.Context(), userId, req.Title)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Chat created", res))
}

func (c *chatController) GetTitles(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.service.GetTitles(ctx.Context(), userId)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Chat titles", res))
}

func (c *chatController) GetChat(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	chatId, err := uuid.Parse(ctx.Params("chatId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid chat id"))
	}

	res, err := c.service.GetChat(ctx.Context(), userId, chatId)
	if err != nil {
		if errors.Is(err, service.ErrChatNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Chat", res))
}

func (c *chatController) DeleteChat(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.DeleteChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.DeleteChat(ctx.Context(), userId, req.ChatId); err != nil {
		if errors.Is(err, service.ErrChatNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Chat deleted", nil))
}

func (c *chatController) SaveResponse(ctx *fiber.Ctx) error {
	var req dto.SaveResponseRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.AppendExchange(ctx.Context(), req.ChatId, req.Input, req.Output); err != nil {
		if errors.Is(err, service.ErrChatNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Response saved", nil))
}
