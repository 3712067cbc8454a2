// Package rag serves the natural-language query page.
package rag

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/wichananm65/personas-web/internal/apiclient"
	"github.com/wichananm65/personas-web/internal/domain"
	"github.com/wichananm65/personas-web/internal/web"
)

const msgQueryFailed = "Error al consultar el modelo de IA."

// Querier answers natural-language questions about the stored records.
type Querier interface {
	QueryRAG(ctx context.Context, question string) (domain.RAGAnswer, error)
}

type Handler struct {
	querier Querier
	logger  *zap.Logger
}

func NewHandler(querier Querier, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{querier: querier, logger: logger}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/rag", h.page)
	app.Post("/rag", h.ask)
}

func (h *Handler) page(c *fiber.Ctx) error {
	return render(c, "", "", false)
}

// ask sends one question. A blank question is not sent.
func (h *Handler) ask(c *fiber.Ctx) error {
	question := strings.TrimSpace(c.FormValue("question"))
	if question == "" {
		return render(c, "", "", false)
	}

	answer, err := h.querier.QueryRAG(c.UserContext(), question)
	if err != nil {
		if errors.Is(err, apiclient.ErrSessionExpired) {
			return err
		}
		h.logger.Warn("rag query", zap.Error(err), zap.String("request_id", web.RequestID(c)))
		return render(c, question, msgQueryFailed, true)
	}
	return render(c, question, answer.Answer, false)
}

func render(c *fiber.Ctx, question, response string, failed bool) error {
	return web.Render(c, "rag", "Consulta Inteligente (RAG)", fiber.Map{
		"Question": question,
		"Response": response,
		"Failed":   failed,
	})
}
