package session

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	// CookieName is the cookie holding the bearer token.
	CookieName = "token"
	// MaxAge is the cookie lifetime in seconds.
	MaxAge = 86400
)

// Session is the browser session as seen by the server: just the bearer
// token issued by the SSO service. The zero value is an anonymous session.
type Session struct {
	Token string
}

// Authenticated reports whether a token is present.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Read extracts the session from the request cookie.
func Read(c *fiber.Ctx) Session {
	return Session{Token: c.Cookies(CookieName)}
}

// Issue returns the cookie that persists token for the whole site.
func Issue(token string, secure bool) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   MaxAge,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}

// Clear returns a cookie that expires the session immediately.
func Clear() *fiber.Cookie {
	return &fiber.Cookie{
		Name:    CookieName,
		Value:   "",
		Path:    "/",
		Expires: time.Unix(0, 0).UTC(),
	}
}

type ctxKey struct{}

// NewContext returns a copy of ctx carrying s.
func NewContext(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session stored in ctx, or an anonymous one.
func FromContext(ctx context.Context) Session {
	s, _ := ctx.Value(ctxKey{}).(Session)
	return s
}
