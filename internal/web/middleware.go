package web

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/wichananm65/personas-web/internal/apiclient"
	"github.com/wichananm65/personas-web/internal/session"
)

const (
	requestIDKey = "requestid"
	identityKey  = "identity"
)

// requestLogger logs one line per request. Errors are passed through the
// app error handler first so the logged status is the one sent.
func requestLogger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if err := c.Next(); err != nil {
			if herr := c.App().Config().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		logger.Info("request",
			zap.String("method", c.Method()),
			zap.String("url", c.OriginalURL()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", RequestID(c)),
		)
		return nil
	}
}

// loadSession puts the cookie session and request id on the user context
// so the API client can read them.
func loadSession(c *fiber.Ctx) error {
	s := session.Read(c)
	ctx := session.NewContext(c.UserContext(), s)
	ctx = apiclient.WithRequestID(ctx, RequestID(c))
	c.SetUserContext(ctx)

	if s.Authenticated() {
		if id, err := session.Inspect(s.Token); err == nil {
			c.Locals(identityKey, id)
		}
	}
	return c.Next()
}

// requireSession sends anonymous visitors and holders of an expired JWT to
// the login page.
func requireSession(c *fiber.Ctx) error {
	if IsPublicPath(c.Path()) {
		return c.Next()
	}
	if !session.FromContext(c.UserContext()).Authenticated() {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}
	if id, ok := c.Locals(identityKey).(session.Identity); ok && id.Expired(time.Now()) {
		return expireSession(c)
	}
	return c.Next()
}

// expireSession clears the cookie and sends the browser to the login page.
// JSON callers get a 401 naming the redirect target instead.
func expireSession(c *fiber.Ctx) error {
	c.Cookie(session.Clear())
	if WantsJSON(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":    "Sesión expirada. Por favor, inicia sesión nuevamente.",
			"redirect": "/login",
		})
	}
	return c.Redirect("/login", fiber.StatusSeeOther)
}

// RequestID returns the id assigned by the request id middleware.
func RequestID(c *fiber.Ctx) string {
	id, _ := c.Locals(requestIDKey).(string)
	return id
}

// WantsJSON reports whether the caller is the page script rather than a
// browser navigation.
func WantsJSON(c *fiber.Ctx) bool {
	return c.XHR() || c.Accepts(fiber.MIMETextHTML, fiber.MIMEApplicationJSON) == fiber.MIMEApplicationJSON
}
