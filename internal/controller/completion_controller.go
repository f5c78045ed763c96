package controller

import (
	"errors"

	"github.com/nithinvarma411/concizee/internal/dto"
	"github.com/nithinvarma411/concizee/internal/pkg/serverutils"
	"github.com/nithinvarma411/concizee/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICompletionController interface {
	RegisterRoutes(r fiber.Router)
	Concise(ctx *fiber.Ctx) error
}

type completionController struct {
	service service.ICompletionService
}

func NewCompletionController(service service.ICompletionService) ICompletionController {
	return &completionController{service: service}
}

func (c *completionController) RegisterRoutes(r fiber.Router) {
	r.Post("/concise", c.Concise)
}

func (c *completionController) Concise(ctx *fiber.Ctx) error {
	var req dto.CompletionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.service.Complete(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyInput) {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(res)
}
