package admin

import (
	"errors"

	"pcforge/internal/catalog"
	"pcforge/internal/domain"
	applog "pcforge/internal/log"
)

var (
	ErrPresetIncomplete = errors.New("every component category must be selected")
	ErrPresetWarnings   = errors.New("resolve compatibility warnings first")
)

// Collaborator computes everything that depends on the whole selection.
// The editor never decides compatibility itself.
type Collaborator interface {
	ComputeWarnings(sel domain.Selection) ([]domain.Warning, error)
	FilterOptions(cat domain.Category, sel domain.Selection) ([]domain.Option, error)
	ComputeBasePrice(sel domain.Selection) (float64, error)
}

// PresetAPI is the preset half of the catalog API. CreatePreset returns the new id.
type PresetAPI interface {
	ListPresets() ([]domain.Preset, error)
	CreatePreset(p domain.Preset) (string, error)
	UpdatePreset(p domain.Preset) error
	DeletePreset(id string) error
	UpdatePresetImage(id string, img *StagedImage) error
}

// PresetEditor is the working copy of one preset: scalar fields, the eight
// component selections and the derived options, warnings and base price.
type PresetEditor struct {
	ID        string
	Record    Record
	Selection domain.Selection
	Options   map[domain.Category][]domain.Option
	Warnings  []domain.Warning
	BasePrice float64
	Image     ImagePicker
	InFlight  bool
	Error     string

	collab   Collaborator
	onSubmit func(domain.Preset, *StagedImage) error
}

// NewPresetEditor seeds an editor from p (nil for a new preset) and computes
// the options and warnings of the initial selection. The seeded base price is
// kept; only Select replaces it.
func NewPresetEditor(collab Collaborator, p *domain.Preset, onSubmit func(domain.Preset, *StagedImage) error) (*PresetEditor, error) {
	e := &PresetEditor{
		Record:    Blank(catalog.Preset),
		Selection: domain.Selection{},
		collab:    collab,
		onSubmit:  onSubmit,
	}
	e.Record["category"] = domain.PresetWorkstation
	e.Record["isActive"] = true
	if p != nil {
		e.ID = p.ID
		e.Record = FromPreset(*p)
		e.Selection = p.Components.Clone()
	} else {
		e.Selection = e.Selection.Clone()
	}
	e.BasePrice = ToNumber(e.Record["basePrice"])
	return e, e.updateSelectedComponents(false)
}

// Select records the component chosen for cat and recomputes derived data.
func (e *PresetEditor) Select(cat domain.Category, id string) error {
	if !cat.Valid() {
		return nil
	}
	e.Selection = e.Selection.Clone()
	e.Selection[cat] = id
	return e.updateSelectedComponents(true)
}

// updateSelectedComponents asks the collaborator for the option lists and
// warnings of the current selection, and for its base price when withPrice.
func (e *PresetEditor) updateSelectedComponents(withPrice bool) error {
	opts := make(map[domain.Category][]domain.Option, len(domain.PresetCategories))
	for _, c := range domain.PresetCategories {
		o, err := e.collab.FilterOptions(c, e.Selection)
		if err != nil {
			return e.collabFailed(err)
		}
		opts[c] = o
	}
	warnings, err := e.collab.ComputeWarnings(e.Selection)
	if err != nil {
		return e.collabFailed(err)
	}
	if withPrice {
		price, err := e.collab.ComputeBasePrice(e.Selection)
		if err != nil {
			return e.collabFailed(err)
		}
		e.BasePrice = price
		e.Record = SetField(e.Record, "basePrice", price)
	}
	e.Options = opts
	e.Warnings = warnings
	e.Error = ""
	return nil
}

func (e *PresetEditor) collabFailed(err error) error {
	applog.Error(nil, "admin.preset.compat.fail", err, nil)
	e.Error = "Failed to check component compatibility"
	return err
}

func (e *PresetEditor) Change(ev ChangeEvent) {
	e.Record = ApplyChange(catalog.Preset, e.Record, ev)
	e.BasePrice = ToNumber(e.Record["basePrice"])
}

func (e *PresetEditor) StageImage(img *StagedImage) { e.Image.Pick(img) }

func (e *PresetEditor) Fields() []FieldView { return RenderFields(catalog.Preset, e.Record) }

// Missing lists the categories still unselected.
func (e *PresetEditor) Missing() []domain.Category { return e.Selection.Missing() }

// SubmitDisabled is true while a category is unselected, a warning is
// outstanding or a submit is in flight.
func (e *PresetEditor) SubmitDisabled() bool {
	return len(e.Missing()) > 0 || len(e.Warnings) > 0 || e.InFlight
}

// Preset is the record that Submit would send.
func (e *PresetEditor) Preset() domain.Preset {
	return ToPreset(e.ID, e.Record, e.Selection)
}

// Submit hands the preset to the submit callback unless a gate is closed, in
// which case it returns early without calling it.
func (e *PresetEditor) Submit() error {
	if len(e.Missing()) > 0 {
		return ErrPresetIncomplete
	}
	if len(e.Warnings) > 0 {
		return ErrPresetWarnings
	}
	if e.InFlight {
		return nil
	}
	e.InFlight = true
	defer func() { e.InFlight = false }()
	return e.onSubmit(e.Preset(), e.Image.File)
}

// PresetPage orchestrates the preset list and its editor.
type PresetPage struct {
	Items   []domain.Preset
	Loading bool
	Error   string
	Editor  *PresetEditor
	Delete  DeleteModal[domain.Preset]

	api     PresetAPI
	collab  Collaborator
	session *Session
	banner  *Banner
}

func NewPresetPage(api PresetAPI, collab Collaborator, session *Session, opts ...Option) *PresetPage {
	o := buildOptions(opts)
	return &PresetPage{api: api, collab: collab, session: session, banner: NewBanner(o.ttl, o.after)}
}

func (p *PresetPage) Success() string { return p.banner.Message() }

func (p *PresetPage) Load() error {
	ok, err := p.session.gate()
	if err != nil || !ok {
		return err
	}
	return p.Refresh()
}

func (p *PresetPage) Refresh() error {
	p.Loading = true
	defer func() { p.Loading = false }()
	items, err := p.api.ListPresets()
	if err != nil {
		p.fail("list", err, "Failed to load presets")
		return err
	}
	p.Items = items
	return nil
}

// BeginCreate opens an empty editor.
func (p *PresetPage) BeginCreate() error {
	return p.open(nil)
}

// BeginEdit opens the editor on a copy of item.
func (p *PresetPage) BeginEdit(item domain.Preset) error {
	return p.open(&item)
}

func (p *PresetPage) open(item *domain.Preset) error {
	p.Error = ""
	ed, err := NewPresetEditor(p.collab, item, p.save)
	p.Editor = ed
	return err
}

func (p *PresetPage) CloseEditor() { p.Editor = nil }

// save creates or updates, then uploads the staged image. Not transactional.
func (p *PresetPage) save(preset domain.Preset, img *StagedImage) error {
	p.Loading = true
	op, verb := "update", "updated"
	var err error
	if preset.ID == "" {
		op, verb = "create", "created"
		preset.ID, err = p.api.CreatePreset(preset)
	} else {
		err = p.api.UpdatePreset(preset)
	}
	if err == nil && img != nil {
		err = p.api.UpdatePresetImage(preset.ID, img)
	}
	p.Loading = false
	if err != nil {
		p.fail(op, err, "Failed to "+op+" preset")
		return err
	}
	applog.Audit(nil, "admin.preset."+op, map[string]any{"id": preset.ID})
	p.Editor = nil
	p.banner.Set("Preset " + verb + " successfully")
	return p.Refresh()
}

func (p *PresetPage) BeginDelete(item domain.Preset) {
	p.Error = ""
	p.Delete.Show(&item)
}

func (p *PresetPage) CancelDelete() { p.Delete.Cancel() }

func (p *PresetPage) ConfirmDelete() error {
	target := p.Delete.Target()
	if target == nil {
		return nil
	}
	err := p.Delete.Confirm(func(pr domain.Preset) error { return p.api.DeletePreset(pr.ID) })
	if err != nil {
		p.fail("delete", err, "Failed to delete preset")
		return err
	}
	applog.Audit(nil, "admin.preset.delete", map[string]any{"id": target.ID})
	p.banner.Set("Preset deleted successfully")
	return p.Refresh()
}

func (p *PresetPage) DeleteView() *ModalView {
	return p.Delete.View("Delete preset", func(pr domain.Preset) []string {
		return []string{pr.Name, pr.Category, FormatPrice(pr.BasePrice)}
	})
}

func (p *PresetPage) Table() TableView[domain.Preset] {
	return BuildPresetTable(p.Items, p.Loading)
}

func (p *PresetPage) fail(op string, err error, msg string) {
	applog.Error(nil, "admin.preset."+op+".fail", err, nil)
	p.Error = msg
}
