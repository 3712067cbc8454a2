package web

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/wichananm65/personas-web/internal/apiclient"
)

const msgUnexpected = "Ocurrió un error inesperado."

// ErrorHandler is the single place where handler errors become responses.
// An expired backend session clears the cookie and redirects to /login.
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if errors.Is(err, apiclient.ErrSessionExpired) {
			logger.Info("backend session expired", zap.String("request_id", RequestID(c)))
			return expireSession(c)
		}

		code, message := classify(err)
		if code >= fiber.StatusInternalServerError {
			logger.Error("request failed", zap.Error(err), zap.String("path", c.Path()), zap.String("request_id", RequestID(c)))
		}

		c.Status(code)
		if WantsJSON(c) {
			return c.JSON(fiber.Map{"error": message})
		}
		if rerr := Render(c, "error", "Error", fiber.Map{"Message": message}); rerr != nil {
			logger.Error("render error page", zap.Error(rerr))
			return c.Status(code).SendString(message)
		}
		return nil
	}
}

func classify(err error) (int, string) {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code, fe.Message
	}

	var apiErr *apiclient.Error
	if errors.As(err, &apiErr) {
		switch {
		case errors.Is(err, apiclient.ErrUnreachable), errors.Is(err, apiclient.ErrServer):
			return fiber.StatusBadGateway, apiErr.Message
		case apiErr.Status >= 400 && apiErr.Status < 500:
			return apiErr.Status, apiErr.Message
		default:
			return fiber.StatusBadGateway, apiErr.Message
		}
	}
	return fiber.StatusInternalServerError, msgUnexpected
}
