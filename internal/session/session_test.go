package session

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndClear(t *testing.T) {
	c := Issue("abc", true)
	assert.Equal(t, CookieName, c.Name)
	assert.Equal(t, "abc", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, 86400, c.MaxAge)
	assert.True(t, c.Secure)

	plain := Issue("abc", false)
	assert.False(t, plain.Secure)

	cleared := Clear()
	assert.Equal(t, CookieName, cleared.Name)
	assert.Empty(t, cleared.Value)
	assert.Equal(t, "/", cleared.Path)
	assert.True(t, cleared.Expires.Before(time.Now()))
}

func TestReadFromCookie(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(Read(c).Token)
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Cookie", "other=1; token=tok-123")
	res, err := app.Test(req)
	require.NoError(t, err)

	buf := new(bytes.Buffer)
	_, _ = buf.ReadFrom(res.Body)
	assert.Equal(t, "tok-123", buf.String())
}

func TestContextRoundTrip(t *testing.T) {
	assert.False(t, FromContext(context.Background()).Authenticated())

	ctx := NewContext(context.Background(), Session{Token: "t"})
	assert.Equal(t, "t", FromContext(ctx).Token)
}

func TestInspect(t *testing.T) {
	exp := time.Now().Add(-time.Minute).Unix()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "42",
		"email": "ana@example.com",
		"exp":   exp,
	}).SignedString([]byte("irrelevant"))
	require.NoError(t, err)

	id, err := Inspect(signed)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", id.Display())
	assert.True(t, id.Expired(time.Now()))

	_, err = Inspect("opaque-token")
	assert.ErrorIs(t, err, ErrOpaqueToken)
}
