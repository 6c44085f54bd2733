package admin

import (
	"strings"
	"time"

	"pcforge/internal/catalog"
	"pcforge/internal/domain"
	applog "pcforge/internal/log"
)

// CatalogAPI is the slice of the catalog API a component page needs.
// Create returns the new component id.
type CatalogAPI interface {
	List(cat domain.Category) ([]domain.Component, error)
	Create(cat domain.Category, c domain.Component) (string, error)
	Update(cat domain.Category, c domain.Component) error
	Delete(cat domain.Category, id string) error
	UpdateImage(cat domain.Category, id string, img *StagedImage) error
}

type Option func(*options)

type options struct {
	ttl   time.Duration
	after func(time.Duration, func())
}

// WithSuccessTTL overrides how long success messages stay up.
func WithSuccessTTL(d time.Duration) Option { return func(o *options) { o.ttl = d } }

// WithScheduler replaces time.AfterFunc for clearing success messages.
func WithScheduler(after func(time.Duration, func())) Option {
	return func(o *options) { o.after = after }
}

func buildOptions(opts []Option) options {
	o := options{ttl: SuccessTTL}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// EditBuffer is the client-only copy of a record being edited.
type EditBuffer struct {
	ID     string
	Record Record
	Image  ImagePicker
}

// Page orchestrates one component category: list, create, edit, delete.
// It is driven by a single caller; only the success banner is touched from
// timer goroutines.
type Page struct {
	Schema  catalog.Schema
	Items   []domain.Component
	Loading bool
	Error   string
	Editing *EditBuffer
	Delete  DeleteModal[domain.Component]

	api     CatalogAPI
	session *Session
	banner  *Banner
}

func NewPage(schema catalog.Schema, api CatalogAPI, session *Session, opts ...Option) *Page {
	o := buildOptions(opts)
	return &Page{
		Schema:  schema,
		api:     api,
		session: session,
		banner:  NewBanner(o.ttl, o.after),
	}
}

// Success is the current transient success message, "" when none.
func (p *Page) Success() string { return p.banner.Message() }

// Load fetches the list once the session allows it. It returns
// ErrLoginRequired when the caller should redirect to login.
func (p *Page) Load() error {
	ok, err := p.session.gate()
	if err != nil || !ok {
		return err
	}
	return p.Refresh()
}

// Refresh re-fetches the list. On failure the previous list is kept.
func (p *Page) Refresh() error {
	p.Loading = true
	defer func() { p.Loading = false }()
	items, err := p.api.List(p.Schema.Category)
	if err != nil {
		p.fail("list", err, "Failed to load "+strings.ToLower(p.Schema.Plural))
		return err
	}
	p.Items = items
	return nil
}

// Create submits rec with numeric fields coerced, then uploads img to the new
// id if one was staged. The two calls are not transactional: when the upload
// fails the component stays without an image.
func (p *Page) Create(rec Record, img *StagedImage) error {
	p.Loading = true
	p.Error = ""
	c := ToComponent(p.Schema, rec)
	id, err := p.api.Create(p.Schema.Category, c)
	if err == nil && img != nil {
		err = p.api.UpdateImage(p.Schema.Category, id, img)
	}
	p.Loading = false
	if err != nil {
		p.fail("create", err, "Failed to create "+p.Schema.Title)
		return err
	}
	applog.Audit(nil, p.action("create"), map[string]any{"id": id, "image": img != nil})
	p.banner.Set(p.Schema.Title + " created successfully")
	return p.Refresh()
}

// BeginEdit opens the edit surface with a fully defaulted copy of item.
func (p *Page) BeginEdit(item domain.Component) {
	p.Editing = &EditBuffer{ID: item.ID, Record: FromComponent(p.Schema, item)}
	p.Error = ""
}

func (p *Page) Change(ev ChangeEvent) {
	if p.Editing == nil {
		return
	}
	p.Editing.Record = ApplyChange(p.Schema, p.Editing.Record, ev)
}

func (p *Page) StageImage(img *StagedImage) {
	if p.Editing == nil {
		return
	}
	p.Editing.Image.Pick(img)
}

// Fields renders the edit buffer, nil when nothing is being edited.
func (p *Page) Fields() []FieldView {
	if p.Editing == nil {
		return nil
	}
	return RenderFields(p.Schema, p.Editing.Record)
}

// SubmitEdit sends the update, then the staged image if any.
func (p *Page) SubmitEdit() error {
	if p.Editing == nil {
		return nil
	}
	p.Loading = true
	p.Error = ""
	c := ToComponent(p.Schema, p.Editing.Record)
	c.ID = p.Editing.ID
	err := p.api.Update(p.Schema.Category, c)
	if err == nil && p.Editing.Image.File != nil {
		err = p.api.UpdateImage(p.Schema.Category, c.ID, p.Editing.Image.File)
	}
	p.Loading = false
	if err != nil {
		p.fail("update", err, "Failed to update "+p.Schema.Title)
		return err
	}
	applog.Audit(nil, p.action("update"), map[string]any{"id": c.ID})
	p.Editing = nil
	p.banner.Set(p.Schema.Title + " updated successfully")
	return p.Refresh()
}

// CloseEdit discards the buffer and any staged image.
func (p *Page) CloseEdit() { p.Editing = nil }

func (p *Page) BeginDelete(item domain.Component) {
	p.Error = ""
	p.Delete.Show(&item)
}

func (p *Page) CancelDelete() { p.Delete.Cancel() }

func (p *Page) ConfirmDelete() error {
	target := p.Delete.Target()
	if target == nil {
		return nil
	}
	err := p.Delete.Confirm(func(c domain.Component) error {
		return p.api.Delete(p.Schema.Category, c.ID)
	})
	if err != nil {
		p.fail("delete", err, "Failed to delete "+p.Schema.Title)
		return err
	}
	applog.Audit(nil, p.action("delete"), map[string]any{"id": target.ID})
	p.banner.Set(p.Schema.Title + " deleted successfully")
	return p.Refresh()
}

// DeleteView is the confirmation modal content, nil when hidden.
func (p *Page) DeleteView() *ModalView {
	return p.Delete.View("Delete "+p.Schema.Title, func(c domain.Component) []string {
		return []string{
			c.Name,
			strings.TrimSpace(c.Brand + " " + c.Model),
			SpecSummary(p.Schema, c),
			FormatPrice(c.Price),
		}
	})
}

func (p *Page) Table() TableView[domain.Component] {
	return BuildTable(p.Schema, p.Items, p.Loading)
}

func (p *Page) action(op string) string {
	return "admin." + p.Schema.Entity + "." + op
}

func (p *Page) fail(op string, err error, msg string) {
	applog.Error(nil, p.action(op)+".fail", err, nil)
	p.Error = msg
}
