package admin

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pcforge/internal/catalog"
	"pcforge/internal/domain"
)

func psuSchema(t *testing.T) catalog.Schema {
	t.Helper()
	s, ok := catalog.ForCategory(domain.CategoryPowerSupply)
	require.True(t, ok)
	return s
}

func gpuSchema(t *testing.T) catalog.Schema {
	t.Helper()
	s, ok := catalog.ForCategory(domain.CategoryGPU)
	require.True(t, ok)
	return s
}

func TestToNumber(t *testing.T) {
	cases := map[string]struct {
		in   any
		want float64
	}{
		"empty":      {"", 0},
		"garbage":    {"abc", 0},
		"decimal":    {"299.99", 299.99},
		"padded":     {" 8 ", 8},
		"absent":     {nil, 0},
		"float":      {12.5, 12.5},
		"int":        {7, 7},
		"nan string": {"NaN", 0},
		"bool":       {true, 0},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, c.want, ToNumber(c.in))
		})
	}
	assert.Equal(t, 5, ToInt("5.9"))
	assert.Equal(t, math.MaxInt, ToInt("1e30"), "huge values saturate instead of wrapping")
	assert.Equal(t, math.MinInt, ToInt("-1e30"))
}

func TestHugeStockStaysNonNegative(t *testing.T) {
	s := gpuSchema(t)
	rec := ApplyChange(s, Blank(s), ChangeEvent{Field: "stock", Value: "1e30", Kind: catalog.Integer})
	assert.Equal(t, math.MaxInt, rec["stock"])
	assert.GreaterOrEqual(t, ToComponent(s, rec).Stock, 0)
}

func TestCoerceNeverLeavesNumericStrings(t *testing.T) {
	s := psuSchema(t)
	got := Coerce(s, Record{"name": "RM750e", "wattage": "abc", "price": "", "stock": "3"})

	assert.Equal(t, 0, got["wattage"])
	assert.Equal(t, 0.0, got["price"])
	assert.Equal(t, 3, got["stock"])
	assert.Equal(t, "RM750e", got["name"])
	// every schema field is present
	for _, f := range s.Fields {
		assert.Contains(t, got, f.Key)
	}
}

func TestSetFieldReturnsCopy(t *testing.T) {
	orig := Record{"name": "a"}
	next := SetField(orig, "name", "b")
	assert.Equal(t, "a", orig["name"])
	assert.Equal(t, "b", next["name"])
}

func TestApplyChangeCoercesByKind(t *testing.T) {
	s := gpuSchema(t)
	rec := Blank(s)

	rec = ApplyChange(s, rec, ChangeEvent{Field: "vram", Value: "12", Kind: catalog.Integer})
	rec = ApplyChange(s, rec, ChangeEvent{Field: "price", Value: "x", Kind: catalog.Number})
	rec = ApplyChange(s, rec, ChangeEvent{Field: "chipset", Value: "RTX 4070", Kind: catalog.Text})
	rec = ApplyChange(s, rec, ChangeEvent{Field: "unknown", Value: "zzz"})

	assert.Equal(t, 12, rec["vram"])
	assert.Equal(t, 0.0, rec["price"])
	assert.Equal(t, "RTX 4070", rec["chipset"])
	assert.NotContains(t, rec, "unknown")

	cpu, _ := catalog.ForCategory(domain.CategoryCPU)
	r := ApplyChange(cpu, Blank(cpu), ChangeEvent{Field: "integratedGraphics", Kind: catalog.Checkbox, Checked: true})
	assert.Equal(t, true, r["integratedGraphics"])
}

func TestFromComponentDefaultsEveryField(t *testing.T) {
	s := gpuSchema(t)
	rec := FromComponent(s, domain.Component{
		ID:    "g1",
		Name:  "RTX",
		Specs: domain.Specs{"vram": 12.0},
	})

	for _, f := range s.Fields {
		v, ok := rec[f.Key]
		require.Truef(t, ok, "field %s missing", f.Key)
		require.NotNilf(t, v, "field %s nil", f.Key)
	}
	assert.Equal(t, "", rec["chipset"])
	assert.Equal(t, 0, rec["tdp"])
	assert.Equal(t, 0.0, rec["coreClock"])
	assert.Equal(t, 12, rec["vram"])
	assert.Equal(t, "", rec["description"])
}

func TestToComponentSplitsCoreAndSpecs(t *testing.T) {
	s := gpuSchema(t)
	c := ToComponent(s, Record{"name": "X", "vram": "8", "price": "299.99", "stock": "5"})

	assert.Equal(t, domain.CategoryGPU, c.Category)
	assert.Equal(t, "X", c.Name)
	assert.Equal(t, 299.99, c.Price)
	assert.Equal(t, 5, c.Stock)
	assert.Equal(t, 8, c.Specs["vram"])
	assert.NotContains(t, c.Specs, "price")
}

func TestPresetRecordRoundTrip(t *testing.T) {
	p := domain.Preset{
		ID: "p1", Name: "Office", Category: domain.PresetOffice, BasePrice: 500, Active: true,
		Components: domain.Selection{domain.CategoryCPU: "c1"},
	}
	rec := FromPreset(p)
	got := ToPreset("p1", rec, p.Components)

	assert.Equal(t, "Office", got.Name)
	assert.Equal(t, domain.PresetOffice, got.Category)
	assert.Equal(t, 500.0, got.BasePrice)
	assert.True(t, got.Active)
	assert.Equal(t, "c1", got.Components[domain.CategoryCPU])
	assert.Len(t, got.Components, len(domain.PresetCategories))
}
