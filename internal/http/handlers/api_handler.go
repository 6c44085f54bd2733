package handlers

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"pcforge/internal/catalog"
	"pcforge/internal/domain"
	"pcforge/internal/log"
	"pcforge/internal/metrics"
	"pcforge/internal/repos"
	"pcforge/internal/services"
	"pcforge/internal/validate"

	"github.com/gofiber/fiber/v2"
)

// APIHandler serves the JSON catalog API under /api/v1.
type APIHandler struct {
	Components *services.ComponentService
	Presets    *services.PresetService
	Compat     *services.CompatService
	Metrics    *metrics.Collector
}

func (h *APIHandler) schema(c *fiber.Ctx) (catalog.Schema, bool) {
	return catalog.BySlug(c.Params("category"))
}

func (h *APIHandler) id(c *fiber.Ctx) (string, bool) {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "id"})
	}
	return id, ok
}

func unknownCategory(c *fiber.Ctx) error {
	log.Security(c, "validation.fail", map[string]any{"field": "category", "value": c.Params("category")})
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown component category"})
}

func badID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
}

// fail maps service errors onto status codes. Unexpected errors are logged and
// reported without details.
func (h *APIHandler) fail(c *fiber.Ctx, action string, err error) error {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		log.Security(c, "validation.fail", map[string]any{"field": ve.Field, "action": action})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ve.Error(), "field": ve.Field})
	case errors.Is(err, repos.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	case errors.Is(err, services.ErrUnsupportedImage):
		return c.Status(fiber.StatusUnsupportedMediaType).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrPresetIncomplete):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	log.Error(c, action+".fail", err, nil)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
}

// GET /api/v1/components/:category
func (h *APIHandler) ListComponents(c *fiber.Ctx) error {
	s, ok := h.schema(c)
	if !ok {
		return unknownCategory(c)
	}
	items, err := h.Components.List(s.Category)
	if err != nil {
		return h.fail(c, "api.component.list", err)
	}
	return c.JSON(items)
}

// POST /api/v1/components/:category
func (h *APIHandler) CreateComponent(c *fiber.Ctx) error {
	s, ok := h.schema(c)
	if !ok {
		return unknownCategory(c)
	}
	var comp domain.Component
	if err := c.BodyParser(&comp); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	comp.ID = ""
	comp.ImageURL = ""
	comp.Category = s.Category
	err := h.Components.Create(&comp)
	h.Metrics.Mutation(s.Entity, "create", err)
	if err != nil {
		return h.fail(c, "api.component.create", err)
	}
	log.Audit(c, "api.component.create", map[string]any{"id": comp.ID, "category": s.Category})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{s.Entity: comp})
}

// PUT /api/v1/components/:category/:id
func (h *APIHandler) UpdateComponent(c *fiber.Ctx) error {
	s, ok := h.schema(c)
	if !ok {
		return unknownCategory(c)
	}
	id, ok := h.id(c)
	if !ok {
		return badID(c)
	}
	var comp domain.Component
	if err := c.BodyParser(&comp); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	comp.ID = id
	comp.Category = s.Category
	err := h.Components.Update(&comp)
	h.Metrics.Mutation(s.Entity, "update", err)
	if err != nil {
		return h.fail(c, "api.component.update", err)
	}
	log.Audit(c, "api.component.update", map[string]any{"id": id, "category": s.Category})
	updated, err := h.Components.Get(id)
	if err != nil {
		return h.fail(c, "api.component.update", err)
	}
	return c.JSON(fiber.Map{s.Entity: updated})
}

// DELETE /api/v1/components/:category/:id
func (h *APIHandler) DeleteComponent(c *fiber.Ctx) error {
	s, ok := h.schema(c)
	if !ok {
		return unknownCategory(c)
	}
	id, ok := h.id(c)
	if !ok {
		return badID(c)
	}
	err := h.Components.Delete(s.Category, id)
	h.Metrics.Mutation(s.Entity, "delete", err)
	if err != nil {
		return h.fail(c, "api.component.delete", err)
	}
	log.Audit(c, "api.component.delete", map[string]any{"id": id, "category": s.Category})
	return c.SendStatus(fiber.StatusNoContent)
}

// imageType trusts a declared image type and sniffs everything else.
func imageType(declared string, data []byte) string {
	if declared == "" || declared == fiber.MIMEOctetStream {
		return http.DetectContentType(data)
	}
	return declared
}

// upload reads the multipart "image" field.
func upload(c *fiber.Ctx) (io.Reader, string, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return nil, "", err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", err
	}
	return bytes.NewReader(data), imageType(fh.Header.Get(fiber.HeaderContentType), data), nil
}

// PUT /api/v1/components/:category/:id/image
func (h *APIHandler) ComponentImage(c *fiber.Ctx) error {
	s, ok := h.schema(c)
	if !ok {
		return unknownCategory(c)
	}
	id, ok := h.id(c)
	if !ok {
		return badID(c)
	}
	f, ct, err := upload(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "image file required"})
	}
	url, err := h.Components.SetImage(s.Category, id, f, ct)
	h.Metrics.Mutation(s.Entity, "image", err)
	if err != nil {
		return h.fail(c, "api.component.image", err)
	}
	log.Audit(c, "api.component.image", map[string]any{"id": id, "type": ct})
	return c.JSON(fiber.Map{"_id": id, "image": url})
}

// GET /api/v1/presets
func (h *APIHandler) ListPresets(c *fiber.Ctx) error {
	items, err := h.Presets.List()
	if err != nil {
		return h.fail(c, "api.preset.list", err)
	}
	return c.JSON(items)
}

// presetRejected answers 422 for a preset whose selection still has warnings.
func (h *APIHandler) presetRejected(c *fiber.Ctx, p domain.Preset) error {
	ws, err := h.Compat.ComputeWarnings(p.Components)
	if err != nil {
		return h.fail(c, "api.preset.check", err)
	}
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"error":    services.ErrIncompatible.Error(),
		"warnings": ws,
	})
}

// POST /api/v1/presets
func (h *APIHandler) CreatePreset(c *fiber.Ctx) error {
	var p domain.Preset
	if err := c.BodyParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	p.ID = ""
	p.ImageURL = ""
	err := h.Presets.Create(&p)
	h.Metrics.Mutation("preset", "create", err)
	if errors.Is(err, services.ErrIncompatible) {
		return h.presetRejected(c, p)
	}
	if err != nil {
		return h.fail(c, "api.preset.create", err)
	}
	log.Audit(c, "api.preset.create", map[string]any{"id": p.ID})
	return c.Status(fiber.StatusCreated).JSON(p)
}

// PUT /api/v1/presets/:id
func (h *APIHandler) UpdatePreset(c *fiber.Ctx) error {
	id, ok := h.id(c)
	if !ok {
		return badID(c)
	}
	var p domain.Preset
	if err := c.BodyParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	p.ID = id
	err := h.Presets.Update(&p)
	h.Metrics.Mutation("preset", "update", err)
	if errors.Is(err, services.ErrIncompatible) {
		return h.presetRejected(c, p)
	}
	if err != nil {
		return h.fail(c, "api.preset.update", err)
	}
	log.Audit(c, "api.preset.update", map[string]any{"id": id})
	updated, err := h.Presets.Get(id)
	if err != nil {
		return h.fail(c, "api.preset.update", err)
	}
	return c.JSON(updated)
}

// DELETE /api/v1/presets/:id
func (h *APIHandler) DeletePreset(c *fiber.Ctx) error {
	id, ok := h.id(c)
	if !ok {
		return badID(c)
	}
	err := h.Presets.Delete(id)
	h.Metrics.Mutation("preset", "delete", err)
	if err != nil {
		return h.fail(c, "api.preset.delete", err)
	}
	log.Audit(c, "api.preset.delete", map[string]any{"id": id})
	return c.SendStatus(fiber.StatusNoContent)
}

// PUT /api/v1/presets/:id/image
func (h *APIHandler) PresetImage(c *fiber.Ctx) error {
	id, ok := h.id(c)
	if !ok {
		return badID(c)
	}
	f, ct, err := upload(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "image file required"})
	}
	url, err := h.Presets.SetImage(id, f, ct)
	h.Metrics.Mutation("preset", "image", err)
	if err != nil {
		return h.fail(c, "api.preset.image", err)
	}
	log.Audit(c, "api.preset.image", map[string]any{"id": id, "type": ct})
	return c.JSON(fiber.Map{"_id": id, "image": url})
}

type checkRequest struct {
	Components domain.Selection `json:"components"`
}

// POST /api/v1/presets/check
func (h *APIHandler) CheckPreset(c *fiber.Ctx) error {
	var req checkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if req.Components == nil {
		req.Components = domain.Selection{}
	}
	res, err := h.Compat.Check(req.Components)
	if err != nil {
		return h.fail(c, "api.preset.check", err)
	}
	h.Metrics.CompatCheck(len(res.Warnings))
	return c.JSON(res)
}
