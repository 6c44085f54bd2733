package admin

import (
	"fmt"
	"strconv"
	"strings"

	"pcforge/internal/catalog"
	"pcforge/internal/domain"
)

type TableState int

const (
	TableRows TableState = iota
	TableLoading
	TableEmpty
)

// Row carries the item it was built from so edit/delete actions can forward
// it unchanged.
type Row[T any] struct {
	Item  T
	Cells []string
}

type TableView[T any] struct {
	State   TableState
	Columns []string
	Rows    []Row[T]
	Empty   string
}

// Item returns the record behind row i, as received.
func (t TableView[T]) Item(i int) (T, bool) {
	var zero T
	if i < 0 || i >= len(t.Rows) {
		return zero, false
	}
	return t.Rows[i].Item, true
}

func tableState(n int, loading bool) TableState {
	switch {
	case loading && n == 0:
		return TableLoading
	case n == 0:
		return TableEmpty
	}
	return TableRows
}

// BuildTable renders components in the order received. No sorting, filtering
// or paging.
func BuildTable(schema catalog.Schema, items []domain.Component, loading bool) TableView[domain.Component] {
	t := TableView[domain.Component]{
		State:   tableState(len(items), loading),
		Columns: []string{"Name", "Brand / Model", "Specs", "Price", "Stock", "Status"},
		Empty:   fmt.Sprintf("No %s found.", strings.ToLower(schema.Plural)),
	}
	if t.State != TableRows {
		return t
	}
	for _, it := range items {
		t.Rows = append(t.Rows, Row[domain.Component]{
			Item: it,
			Cells: []string{
				it.Name,
				strings.TrimSpace(it.Brand + " " + it.Model),
				SpecSummary(schema, it),
				FormatPrice(it.Price),
				strconv.Itoa(it.Stock),
				string(domain.StatusForQty(it.Stock)),
			},
		})
	}
	return t
}

// SpecSummary joins the schema's summary specs, skipping empty ones.
func SpecSummary(schema catalog.Schema, c domain.Component) string {
	var parts []string
	for _, key := range schema.Summary {
		f, ok := schema.Field(key)
		if !ok {
			continue
		}
		v := toText(c.Specs[key])
		if v == "" || v == "0" {
			continue
		}
		parts = append(parts, f.Label+": "+v)
	}
	return strings.Join(parts, ", ")
}

func BuildPresetTable(items []domain.Preset, loading bool) TableView[domain.Preset] {
	t := TableView[domain.Preset]{
		State:   tableState(len(items), loading),
		Columns: []string{"Name", "Category", "Base price", "Components", "Active"},
		Empty:   "No presets found.",
	}
	if t.State != TableRows {
		return t
	}
	for _, p := range items {
		filled := len(domain.PresetCategories) - len(p.Components.Missing())
		active := "No"
		if p.Active {
			active = "Yes"
		}
		t.Rows = append(t.Rows, Row[domain.Preset]{
			Item: p,
			Cells: []string{
				p.Name,
				p.Category,
				FormatPrice(p.BasePrice),
				fmt.Sprintf("%d/%d", filled, len(domain.PresetCategories)),
				active,
			},
		})
	}
	return t
}

func FormatPrice(p float64) string {
	return "$" + strconv.FormatFloat(p, 'f', 2, 64)
}
