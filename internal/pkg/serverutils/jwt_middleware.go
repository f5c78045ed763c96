package serverutils

import (
	"github.com/nithinvarma411/concizee/internal/repository/specification"
	"github.com/nithinvarma411/concizee/internal/repository/unitofwork"

	"github.com/gofiber/fiber/v2"
)

// NewJwtMiddleware guards owner-scoped routes. The credential is read from
// the HTTP-only "token" cookie first (browser flow), then the Authorization
// header (tooling flow). A valid signature is not enough: the subject must
// still exist, otherwise the route sees a 404.
func NewJwtMiddleware(secret string, uowFactory unitofwork.RepositoryFactory) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		tokenStr := ctx.Cookies("token")
		if tokenStr == "" {
			authHeader := ctx.Get("Authorization")
			if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
				tokenStr = authHeader[7:]
			}
		}
		if tokenStr == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Missing token"))
		}

		userId, err := VerifyToken(tokenStr, secret)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid token"))
		}

		uow := uowFactory.NewUnitOfWork(ctx.Context())
		user, err := uow.UserRepository().FindOne(ctx.Context(), specification.ByID{ID: userId})
		if err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, "Internal Server Error"))
		}
		if user == nil {
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse(fiber.StatusNotFound, "User not found"))
		}

		ctx.Locals("user_id", userId.String())
		return ctx.Next()
	}
}
