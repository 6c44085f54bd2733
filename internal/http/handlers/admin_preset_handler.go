package handlers

import (
	"errors"

	"pcforge/internal/admin"
	"pcforge/internal/catalog"
	"pcforge/internal/domain"
	applog "pcforge/internal/log"
	"pcforge/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type selectView struct {
	Category domain.Category
	Label    string
	Selected string
	Options  []domain.Option
}

func (h *AdminHandler) presetPage(c *fiber.Ctx) *admin.PresetPage {
	return admin.NewPresetPage(h.local, h.Compat, h.session(c))
}

func (h *AdminHandler) renderPresets(c *fiber.Ctx, p *admin.PresetPage) error {
	t := p.Table()
	if p.Error != "" {
		c.Status(fiber.StatusBadRequest)
	}
	return render(c, "admin_presets", fiber.Map{
		"Table":   t,
		"Loading": t.State == admin.TableLoading,
		"Empty":   t.State == admin.TableEmpty,
		"Error":   p.Error,
		"Success": p.Success(),
	})
}

func (h *AdminHandler) renderEditor(c *fiber.Ctx, p *admin.PresetPage, msg string) error {
	ed := p.Editor
	var selects []selectView
	for _, cat := range domain.PresetCategories {
		label := string(cat)
		if s, ok := catalog.ForCategory(cat); ok {
			label = s.Title
		}
		selects = append(selects, selectView{
			Category: cat,
			Label:    label,
			Selected: ed.Selection[cat],
			Options:  ed.Options[cat],
		})
	}
	errMsg := p.Error
	if ed.Error != "" {
		errMsg = ed.Error
	}
	if errMsg != "" || msg != "" {
		c.Status(fiber.StatusUnprocessableEntity)
	}
	return render(c, "admin_preset_edit", fiber.Map{
		"Editor":    ed,
		"Fields":    ed.Fields(),
		"Selects":   selects,
		"Missing":   ed.Missing(),
		"Warnings":  ed.Warnings,
		"BasePrice": admin.FormatPrice(ed.BasePrice),
		"Disabled":  ed.SubmitDisabled(),
		"Error":     errMsg,
		"Message":   msg,
	})
}

// GET /admin/presets
func (h *AdminHandler) ListPresets(c *fiber.Ctx) error {
	p := h.presetPage(c)
	if err := p.Load(); errors.Is(err, admin.ErrLoginRequired) {
		return c.Redirect("/login")
	}
	return h.renderPresets(c, p)
}

// GET /admin/presets/new
func (h *AdminHandler) NewPreset(c *fiber.Ctx) error {
	p := h.presetPage(c)
	if err := p.BeginCreate(); err != nil {
		applog.Error(c, "admin.preset.editor.fail", err, nil)
	}
	return h.renderEditor(c, p, "")
}

// GET /admin/presets/:id/edit
func (h *AdminHandler) EditPreset(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "This preset no longer exists")
	}
	pr, err := h.Presets.Get(id)
	if err != nil {
		return notFound(c, "This preset no longer exists")
	}
	p := h.presetPage(c)
	if err := p.BeginEdit(pr); err != nil {
		applog.Error(c, "admin.preset.editor.fail", err, nil)
	}
	return h.renderEditor(c, p, "")
}

// POST /admin/presets/editor
//
// The editor form posts here both to refresh options after a selection
// change (action=check) and to save (action=save).
func (h *AdminHandler) SubmitPreset(c *fiber.Ctx) error {
	id := c.FormValue("id")
	if id != "" {
		if _, ok := validate.ID(id); !ok {
			return notFound(c, "This preset no longer exists")
		}
	}
	rec := formRecord(c, catalog.Preset)
	posted := domain.Selection{}
	for _, cat := range domain.PresetCategories {
		posted[cat] = c.FormValue("sel_" + string(cat))
	}
	p := h.presetPage(c)
	if err := p.BeginEdit(admin.ToPreset(id, rec, h.priorSelection(c, id))); err != nil {
		return h.renderEditor(c, p, "")
	}
	// Only changed selections are replayed; an unchanged selection keeps the
	// posted base price.
	for _, cat := range domain.PresetCategories {
		if posted[cat] == p.Editor.Selection[cat] {
			continue
		}
		if err := p.Editor.Select(cat, posted[cat]); err != nil {
			return h.renderEditor(c, p, "")
		}
	}
	if c.FormValue("action") != "save" {
		return h.renderEditor(c, p, "")
	}

	img, err := stagedImage(c)
	if err != nil {
		applog.Error(c, "admin.preset.image.read.fail", err, nil)
	}
	p.Editor.StageImage(img)
	switch err := p.Editor.Submit(); {
	case errors.Is(err, admin.ErrPresetIncomplete):
		return h.renderEditor(c, p, "Select a component for every category")
	case errors.Is(err, admin.ErrPresetWarnings):
		return h.renderEditor(c, p, "Resolve the compatibility warnings first")
	case err != nil:
		return h.renderEditor(c, p, "")
	}
	return h.renderPresets(c, p)
}

// priorSelection is the selection the editor form was rendered with: the
// hidden prev_ fields, else the stored preset's components.
func (h *AdminHandler) priorSelection(c *fiber.Ctx, id string) domain.Selection {
	sel := domain.Selection{}
	if c.FormValue("prev") == "1" {
		for _, cat := range domain.PresetCategories {
			sel[cat] = c.FormValue("prev_" + string(cat))
		}
		return sel
	}
	if id == "" {
		return sel
	}
	if pr, err := h.Presets.Get(id); err == nil {
		return pr.Components.Clone()
	}
	return sel
}

func (h *AdminHandler) preset(c *fiber.Ctx) (domain.Preset, bool) {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return domain.Preset{}, false
	}
	pr, err := h.Presets.Get(id)
	return pr, err == nil
}

// GET /admin/presets/:id/delete
func (h *AdminHandler) ConfirmDeletePreset(c *fiber.Ctx) error {
	pr, ok := h.preset(c)
	if !ok {
		return notFound(c, "This preset no longer exists")
	}
	p := h.presetPage(c)
	p.BeginDelete(pr)
	return render(c, "admin_confirm_delete", fiber.Map{
		"Modal":  p.DeleteView(),
		"Action": "/admin/presets/" + pr.ID + "/delete",
		"Back":   "/admin/presets",
	})
}

// POST /admin/presets/:id/delete
func (h *AdminHandler) DeletePreset(c *fiber.Ctx) error {
	pr, ok := h.preset(c)
	if !ok {
		return notFound(c, "This preset no longer exists")
	}
	p := h.presetPage(c)
	p.BeginDelete(pr)
	if err := p.ConfirmDelete(); err != nil {
		c.Status(fiber.StatusBadRequest)
		return render(c, "admin_confirm_delete", fiber.Map{
			"Modal":  p.DeleteView(),
			"Error":  p.Error,
			"Action": "/admin/presets/" + pr.ID + "/delete",
			"Back":   "/admin/presets",
		})
	}
	return h.renderPresets(c, p)
}
