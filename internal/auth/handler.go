package auth

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/wichananm65/personas-web/internal/session"
	"github.com/wichananm65/personas-web/internal/web"
)

type Handler struct {
	exchanger Exchanger
	loginURL  string
	logger    *zap.Logger
}

func NewHandler(exchanger Exchanger, loginURL string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{exchanger: exchanger, loginURL: loginURL, logger: logger}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/login", h.login)
	app.Get("/auth/login", h.startLogin)
	app.Get("/auth/callback", h.callback)
	app.Get("/logout", h.logout)
	app.Post("/logout", h.logout)
}

func (h *Handler) login(c *fiber.Ctx) error {
	return web.Render(c, "login", "Iniciar Sesión", fiber.Map{"LoginURL": h.loginURL})
}

func (h *Handler) startLogin(c *fiber.Ctx) error {
	return c.Redirect(h.loginURL, fiber.StatusFound)
}

// callback exchanges the code for a token and stores it in the cookie.
// With ?render=1 the "processing" page is shown first and reloads itself
// without the flag.
func (h *Handler) callback(c *fiber.Ctx) error {
	code := c.Query("code")
	if c.Query("render") == "1" && code != "" {
		return web.Render(c, "callback", "Procesando autenticación", fiber.Map{
			"Next": "/auth/callback?code=" + url.QueryEscape(code),
		})
	}

	out := Bootstrap(c.UserContext(), code, h.exchanger)
	if !out.Succeeded() {
		h.logger.Warn("login callback failed", zap.Error(out.Err), zap.String("request_id", web.RequestID(c)))
		return c.Redirect(out.Redirect, fiber.StatusSeeOther)
	}

	c.Cookie(session.Issue(out.Token, c.Protocol() == "https"))
	h.logger.Info("session established", zap.String("request_id", web.RequestID(c)))
	return c.Redirect(out.Redirect, fiber.StatusSeeOther)
}

func (h *Handler) logout(c *fiber.Ctx) error {
	c.Cookie(session.Clear())
	return c.Redirect("/login", fiber.StatusSeeOther)
}
