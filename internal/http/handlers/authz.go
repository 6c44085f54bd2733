package handlers

import (
	"strings"

	"pcforge/internal/domain"
	applog "pcforge/internal/log"
	"pcforge/internal/services"

	"github.com/gofiber/fiber/v2"
)

// sessionID returns the bearer token if present, otherwise the sid cookie.
func sessionID(c *fiber.Ctx) string {
	if h := c.Get(fiber.HeaderAuthorization); h != "" {
		if tok, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(tok)
		}
	}
	return c.Cookies("sid")
}

// AttachUser puts the logged in user (if any) into Locals("user").
func AttachUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sid := sessionID(c); sid != "" {
			if u, err := auth.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	}
}

func localUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}

func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Redirect("/login")
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil {
			return c.Redirect("/login")
		}
		if !u.IsAdmin() {
			applog.Security(c, "access.denied.admin", map[string]any{"user": u.ID})
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Access denied"})
		}
		c.Locals("user", u)
		return c.Next()
	}
}

// RequireAPIAdmin is RequireAdmin for JSON clients: 401 without a session,
// 403 for non-admins.
func RequireAPIAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := sessionID(c)
		if sid == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "login required"})
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "login required"})
		}
		if !u.IsAdmin() {
			applog.Security(c, "access.denied.api", map[string]any{"user": u.ID})
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "admin only"})
		}
		c.Locals("user", u)
		return c.Next()
	}
}
