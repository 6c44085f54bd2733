package handlers

import (
	"errors"
	"io"

	"pcforge/internal/admin"
	"pcforge/internal/catalog"
	"pcforge/internal/domain"
	applog "pcforge/internal/log"
	"pcforge/internal/services"
	"pcforge/internal/validate"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler renders the /admin screens. Every request builds a fresh
// admin.Page over the in-process catalog.
type AdminHandler struct {
	Components *services.ComponentService
	Presets    *services.PresetService
	Compat     *services.CompatService
	local      *localCatalog
}

func (h *AdminHandler) session(c *fiber.Ctx) *admin.Session {
	s := admin.NewSession()
	s.Resolve(localUser(c), sessionID(c))
	return s
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": msg})
}

// formRecord replays the submitted form through the field change handler.
func formRecord(c *fiber.Ctx, s catalog.Schema) admin.Record {
	rec := admin.Blank(s)
	for _, f := range s.Fields {
		v := c.FormValue(f.Key)
		rec = admin.ApplyChange(s, rec, admin.ChangeEvent{Field: f.Key, Value: v, Kind: f.Kind, Checked: v != ""})
	}
	return rec
}

// stagedImage reads the optional "image" upload. No file means no image.
func stagedImage(c *fiber.Ctx) (*admin.StagedImage, error) {
	fh, err := c.FormFile("image")
	if err != nil || fh.Size == 0 {
		return nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &admin.StagedImage{Name: fh.Filename, ContentType: fh.Header.Get(fiber.HeaderContentType), Data: data}, nil
}

// GET /admin
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	type card struct {
		Schema catalog.Schema
		Count  int
	}
	var cards []card
	for _, s := range catalog.All() {
		items, err := h.Components.List(s.Category)
		if err != nil {
			applog.Error(c, "admin.dashboard.fail", err, nil)
			return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load the catalog"})
		}
		cards = append(cards, card{Schema: s, Count: len(items)})
	}
	presets, err := h.Presets.List()
	if err != nil {
		applog.Error(c, "admin.dashboard.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load the catalog"})
	}
	return render(c, "admin_dashboard", fiber.Map{"Cards": cards, "PresetCount": len(presets)})
}

func (h *AdminHandler) page(c *fiber.Ctx) (*admin.Page, bool) {
	s, ok := catalog.BySlug(c.Params("category"))
	if !ok {
		return nil, false
	}
	return admin.NewPage(s, h.local, h.session(c)), true
}

func (h *AdminHandler) item(c *fiber.Ctx, p *admin.Page) (domain.Component, bool) {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return domain.Component{}, false
	}
	item, err := h.Components.Get(id)
	if err != nil || item.Category != p.Schema.Category {
		return domain.Component{}, false
	}
	return item, true
}

func (h *AdminHandler) renderList(c *fiber.Ctx, p *admin.Page, form admin.Record) error {
	t := p.Table()
	if form == nil {
		form = admin.Blank(p.Schema)
	}
	status := fiber.StatusOK
	if p.Error != "" {
		status = fiber.StatusBadRequest
	}
	c.Status(status)
	return render(c, "admin_components", fiber.Map{
		"Schema":  p.Schema,
		"Schemas": catalog.All(),
		"Table":   t,
		"Loading": t.State == admin.TableLoading,
		"Empty":   t.State == admin.TableEmpty,
		"Fields":  admin.RenderFields(p.Schema, form),
		"Error":   p.Error,
		"Success": p.Success(),
	})
}

// GET /admin/components/:category
func (h *AdminHandler) ListComponents(c *fiber.Ctx) error {
	p, ok := h.page(c)
	if !ok {
		return notFound(c, "Unknown component category")
	}
	if err := p.Load(); errors.Is(err, admin.ErrLoginRequired) {
		return c.Redirect("/login")
	}
	return h.renderList(c, p, nil)
}

// POST /admin/components/:category
func (h *AdminHandler) CreateComponent(c *fiber.Ctx) error {
	p, ok := h.page(c)
	if !ok {
		return notFound(c, "Unknown component category")
	}
	if err := p.Load(); errors.Is(err, admin.ErrLoginRequired) {
		return c.Redirect("/login")
	}
	rec := formRecord(c, p.Schema)
	img, err := stagedImage(c)
	if err != nil {
		applog.Error(c, "admin."+p.Schema.Entity+".image.read.fail", err, nil)
	}
	if err := p.Create(rec, img); err != nil {
		return h.renderList(c, p, rec)
	}
	return h.renderList(c, p, nil)
}

// GET /admin/components/:category/:id/edit
func (h *AdminHandler) EditComponent(c *fiber.Ctx) error {
	p, ok := h.page(c)
	if !ok {
		return notFound(c, "Unknown component category")
	}
	item, ok := h.item(c, p)
	if !ok {
		return notFound(c, "This component no longer exists")
	}
	p.BeginEdit(item)
	return h.renderEdit(c, p, item)
}

func (h *AdminHandler) renderEdit(c *fiber.Ctx, p *admin.Page, item domain.Component) error {
	if p.Error != "" {
		c.Status(fiber.StatusBadRequest)
	}
	return render(c, "admin_component_edit", fiber.Map{
		"Schema": p.Schema,
		"Item":   item,
		"Fields": p.Fields(),
		"Error":  p.Error,
	})
}

// POST /admin/components/:category/:id
func (h *AdminHandler) UpdateComponent(c *fiber.Ctx) error {
	p, ok := h.page(c)
	if !ok {
		return notFound(c, "Unknown component category")
	}
	item, ok := h.item(c, p)
	if !ok {
		return notFound(c, "This component no longer exists")
	}
	p.BeginEdit(item)
	for _, f := range p.Schema.Fields {
		v := c.FormValue(f.Key)
		p.Change(admin.ChangeEvent{Field: f.Key, Value: v, Kind: f.Kind, Checked: v != ""})
	}
	img, err := stagedImage(c)
	if err != nil {
		applog.Error(c, "admin."+p.Schema.Entity+".image.read.fail", err, nil)
	}
	p.StageImage(img)
	if err := p.SubmitEdit(); err != nil {
		return h.renderEdit(c, p, item)
	}
	return h.renderList(c, p, nil)
}

// GET /admin/components/:category/:id/delete
func (h *AdminHandler) ConfirmDeleteComponent(c *fiber.Ctx) error {
	p, ok := h.page(c)
	if !ok {
		return notFound(c, "Unknown component category")
	}
	item, ok := h.item(c, p)
	if !ok {
		return notFound(c, "This component no longer exists")
	}
	p.BeginDelete(item)
	return render(c, "admin_confirm_delete", fiber.Map{
		"Modal":  p.DeleteView(),
		"Action": "/admin/components/" + p.Schema.Slug + "/" + item.ID + "/delete",
		"Back":   "/admin/components/" + p.Schema.Slug,
	})
}

// POST /admin/components/:category/:id/delete
func (h *AdminHandler) DeleteComponent(c *fiber.Ctx) error {
	p, ok := h.page(c)
	if !ok {
		return notFound(c, "Unknown component category")
	}
	item, ok := h.item(c, p)
	if !ok {
		return notFound(c, "This component no longer exists")
	}
	p.BeginDelete(item)
	if err := p.ConfirmDelete(); err != nil {
		c.Status(fiber.StatusBadRequest)
		return render(c, "admin_confirm_delete", fiber.Map{
			"Modal":  p.DeleteView(),
			"Error":  p.Error,
			"Action": "/admin/components/" + p.Schema.Slug + "/" + item.ID + "/delete",
			"Back":   "/admin/components/" + p.Schema.Slug,
		})
	}
	return h.renderList(c, p, nil)
}
