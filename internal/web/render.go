package web

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/personas-web/internal/session"
)

const layout = "layouts/main"

// Render renders view inside the main layout. The layout reads Title,
// ShowNav and User from the bindings.
func Render(c *fiber.Ctx, view, title string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["Title"] = title
	data["ShowNav"] = showNav(c.Path())
	data["User"] = ""
	if id, ok := c.Locals(identityKey).(session.Identity); ok {
		data["User"] = id.Display()
	}
	return c.Render(view, data, layout)
}

// The nav bar is hidden on the login and callback pages.
func showNav(path string) bool {
	return !IsPublicPath(path)
}
