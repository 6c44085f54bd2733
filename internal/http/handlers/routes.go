package handlers

import (
	"time"

	applog "pcforge/internal/log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// MountAPI registers the JSON catalog API under /api/v1.
func MountAPI(app *fiber.App, d *Deps) {
	api := app.Group("/api/v1")
	api.Post("/session", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", map[string]any{"via": "api"})
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts, retry later"})
		},
	}), d.AuthH.APILogin)
	api.Get("/session", d.AuthH.APISession)
	api.Delete("/session", d.AuthH.APILogout)

	guarded := api.Group("", RequireAPIAdmin(d.Auth))
	guarded.Get("/components/:category", d.API.ListComponents)
	guarded.Post("/components/:category", d.API.CreateComponent)
	guarded.Put("/components/:category/:id", d.API.UpdateComponent)
	guarded.Delete("/components/:category/:id", d.API.DeleteComponent)
	guarded.Put("/components/:category/:id/image", d.API.ComponentImage)

	guarded.Post("/presets/check", d.API.CheckPreset)
	guarded.Get("/presets", d.API.ListPresets)
	guarded.Post("/presets", d.API.CreatePreset)
	guarded.Put("/presets/:id", d.API.UpdatePreset)
	guarded.Delete("/presets/:id", d.API.DeletePreset)
	guarded.Put("/presets/:id/image", d.API.PresetImage)
}

// MountAdmin registers the login form and the /admin screens.
func MountAdmin(app *fiber.App, d *Deps) {
	app.Get("/login", d.AuthH.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{"Err": "Too many attempts. Please try again later."})
		},
	}), d.AuthH.Login)
	app.Post("/logout", d.AuthH.Logout)

	a := app.Group("/admin", RequireAdmin(d.Auth))
	a.Get("/", d.Admin.Dashboard)
	a.Get("/presets", d.Admin.ListPresets)
	a.Get("/presets/new", d.Admin.NewPreset)
	a.Post("/presets/editor", d.Admin.SubmitPreset)
	a.Get("/presets/:id/edit", d.Admin.EditPreset)
	a.Get("/presets/:id/delete", d.Admin.ConfirmDeletePreset)
	a.Post("/presets/:id/delete", d.Admin.DeletePreset)

	a.Get("/components/:category", d.Admin.ListComponents)
	a.Post("/components/:category", d.Admin.CreateComponent)
	a.Get("/components/:category/:id/edit", d.Admin.EditComponent)
	a.Post("/components/:category/:id", d.Admin.UpdateComponent)
	a.Get("/components/:category/:id/delete", d.Admin.ConfirmDeleteComponent)
	a.Post("/components/:category/:id/delete", d.Admin.DeleteComponent)
}
