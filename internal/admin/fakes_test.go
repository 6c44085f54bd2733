package admin

import (
	"errors"
	"fmt"
	"time"

	"pcforge/internal/domain"
)

type call struct {
	Op  string
	ID  string
	Val any
}

// fakeCatalog is an in-memory CatalogAPI and PresetAPI that records every call.
type fakeCatalog struct {
	items    []domain.Component
	presets  []domain.Preset
	calls    []call
	nextID   int
	failOp   string
	failOnce bool
}

var errFake = errors.New("fake failure")

func (f *fakeCatalog) fail(op string) error {
	if f.failOp == op {
		if f.failOnce {
			f.failOp = ""
		}
		return errFake
	}
	return nil
}

func (f *fakeCatalog) ops() []string {
	var out []string
	for _, c := range f.calls {
		out = append(out, c.Op)
	}
	return out
}

func (f *fakeCatalog) List(cat domain.Category) ([]domain.Component, error) {
	f.calls = append(f.calls, call{Op: "list"})
	if err := f.fail("list"); err != nil {
		return nil, err
	}
	out := []domain.Component{}
	for _, it := range f.items {
		if it.Category == cat {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeCatalog) Create(cat domain.Category, c domain.Component) (string, error) {
	f.calls = append(f.calls, call{Op: "create", Val: c})
	if err := f.fail("create"); err != nil {
		return "", err
	}
	f.nextID++
	c.ID = fmt.Sprintf("new-%d", f.nextID)
	c.Category = cat
	f.items = append(f.items, c)
	return c.ID, nil
}

func (f *fakeCatalog) Update(cat domain.Category, c domain.Component) error {
	f.calls = append(f.calls, call{Op: "update", ID: c.ID, Val: c})
	if err := f.fail("update"); err != nil {
		return err
	}
	for i := range f.items {
		if f.items[i].ID == c.ID {
			c.Category = cat
			f.items[i] = c
		}
	}
	return nil
}

func (f *fakeCatalog) Delete(cat domain.Category, id string) error {
	f.calls = append(f.calls, call{Op: "delete", ID: id})
	if err := f.fail("delete"); err != nil {
		return err
	}
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeCatalog) UpdateImage(cat domain.Category, id string, img *StagedImage) error {
	f.calls = append(f.calls, call{Op: "image", ID: id, Val: img})
	return f.fail("image")
}

func (f *fakeCatalog) ListPresets() ([]domain.Preset, error) {
	f.calls = append(f.calls, call{Op: "list"})
	if err := f.fail("list"); err != nil {
		return nil, err
	}
	return append([]domain.Preset{}, f.presets...), nil
}

func (f *fakeCatalog) CreatePreset(p domain.Preset) (string, error) {
	f.calls = append(f.calls, call{Op: "create", Val: p})
	if err := f.fail("create"); err != nil {
		return "", err
	}
	f.nextID++
	p.ID = fmt.Sprintf("preset-%d", f.nextID)
	f.presets = append(f.presets, p)
	return p.ID, nil
}

func (f *fakeCatalog) UpdatePreset(p domain.Preset) error {
	f.calls = append(f.calls, call{Op: "update", ID: p.ID, Val: p})
	return f.fail("update")
}

func (f *fakeCatalog) DeletePreset(id string) error {
	f.calls = append(f.calls, call{Op: "delete", ID: id})
	if err := f.fail("delete"); err != nil {
		return err
	}
	for i := range f.presets {
		if f.presets[i].ID == id {
			f.presets = append(f.presets[:i], f.presets[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeCatalog) UpdatePresetImage(id string, img *StagedImage) error {
	f.calls = append(f.calls, call{Op: "image", ID: id, Val: img})
	return f.fail("image")
}

// fakeCollab warns whenever the cpu is "cpu-bad" and prices every selected
// component at 100.
type fakeCollab struct {
	calls int
}

func (c *fakeCollab) ComputeWarnings(sel domain.Selection) ([]domain.Warning, error) {
	c.calls++
	if sel[domain.CategoryCPU] == "cpu-bad" {
		return []domain.Warning{{Rule: "cpu-socket", Message: "socket mismatch"}}, nil
	}
	return nil, nil
}

func (c *fakeCollab) FilterOptions(cat domain.Category, sel domain.Selection) ([]domain.Option, error) {
	return []domain.Option{{ID: string(cat) + "-1", Label: string(cat)}}, nil
}

func (c *fakeCollab) ComputeBasePrice(sel domain.Selection) (float64, error) {
	n := len(domain.PresetCategories) - len(sel.Missing())
	return float64(n) * 100, nil
}

// manualClock collects scheduled callbacks so tests can fire them.
type manualClock struct {
	pending []func()
	delays  []time.Duration
}

func (m *manualClock) after(d time.Duration, f func()) {
	m.delays = append(m.delays, d)
	m.pending = append(m.pending, f)
}

func (m *manualClock) fireAll() {
	fns := m.pending
	m.pending = nil
	for _, f := range fns {
		f()
	}
}

func adminSession() *Session {
	s := NewSession()
	s.Resolve(&domain.User{ID: "u-admin", Role: domain.RoleAdmin}, "tok")
	return s
}
