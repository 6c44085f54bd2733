package handlers

import (
	"time"

	"pcforge/internal/log"
	"pcforge/internal/services"
	"pcforge/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false,
		})
	}
	return sid
}

func expireSID(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, "login", fiber.Map{"Err": ""})
}

// checkCreds runs the format checks shared by the form and the API.
func checkCreds(c *fiber.Ctx, email, pass string) bool {
	if _, ok := validate.Email(email); !ok {
		log.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "bad_format"})
		return false
	}
	if !validate.Password(pass) {
		log.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "bad_password_format"})
		return false
	}
	return true
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	email := c.FormValue("email")
	pass := c.FormValue("password")
	fail := func() error {
		return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{"Err": "Invalid email or password", "CSRFToken": c.Cookies("csrf_")})
	}
	if !checkCreds(c, email, pass) {
		return fail()
	}
	u, _, err := h.Auth.Login(sid, email, pass)
	if err != nil {
		log.Security(c, "auth.login.fail", map[string]any{"email": email})
		return fail()
	}

	log.Audit(c, "auth.login.success", map[string]any{"email": email})
	if u.IsAdmin() {
		return c.Redirect("/admin")
	}
	return c.Redirect("/")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	_ = h.Auth.Logout(sid)
	expireSID(c)
	log.Audit(c, "auth.logout", map[string]any{"sid": sid})
	return c.Redirect("/login")
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/v1/session
func (h *AuthHandler) APILogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if !checkCreds(c, req.Email, req.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid email or password"})
	}
	u, tok, err := h.Auth.Login("", req.Email, req.Password)
	if err != nil {
		log.Security(c, "auth.login.fail", map[string]any{"email": req.Email, "via": "api"})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid email or password"})
	}
	log.Audit(c, "auth.login.success", map[string]any{"email": req.Email, "via": "api"})
	return c.JSON(fiber.Map{"token": tok, "isAdmin": u.IsAdmin(), "name": u.Name})
}

// GET /api/v1/session
func (h *AuthHandler) APISession(c *fiber.Ctx) error {
	u := localUser(c)
	if u == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "login required"})
	}
	return c.JSON(fiber.Map{"_id": u.ID, "email": u.Email, "name": u.Name, "isAdmin": u.IsAdmin()})
}

// DELETE /api/v1/session
func (h *AuthHandler) APILogout(c *fiber.Ctx) error {
	if sid := sessionID(c); sid != "" {
		_ = h.Auth.Logout(sid)
		log.Audit(c, "auth.logout", map[string]any{"via": "api"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
