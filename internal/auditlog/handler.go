// Package auditlog serves the read-only audit trail page.
package auditlog

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/wichananm65/personas-web/internal/apiclient"
	"github.com/wichananm65/personas-web/internal/domain"
	"github.com/wichananm65/personas-web/internal/web"
)

const msgLoadFailed = "Error cargando logs"

// Source provides the audit trail.
type Source interface {
	ListLogs(ctx context.Context) ([]domain.LogEntry, error)
}

type Handler struct {
	source   Source
	logger   *zap.Logger
	location *time.Location
}

func NewHandler(source Source, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{source: source, logger: logger, location: time.Local}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/logs", h.list)
}

func (h *Handler) list(c *fiber.Ctx) error {
	entries, err := h.source.ListLogs(c.UserContext())
	if errors.Is(err, apiclient.ErrSessionExpired) {
		return err
	}

	data := fiber.Map{"Rows": Rows(entries, h.location)}
	if err != nil {
		h.logger.Warn("list logs", zap.Error(err), zap.String("request_id", web.RequestID(c)))
		data["LoadError"] = msgLoadFailed
		c.Status(fiber.StatusBadGateway)
	}
	return web.Render(c, "logs", "Auditoría del Sistema", data)
}
