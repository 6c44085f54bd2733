package admin

import (
	"math"
	"strconv"
	"strings"

	"pcforge/internal/catalog"
	"pcforge/internal/domain"
)

// Record is a form buffer keyed by field name. Values are string, float64,
// int or bool depending on the field kind.
type Record map[string]any

// SetField returns a copy of rec with key set to value.
func SetField(rec Record, key string, value any) Record {
	out := make(Record, len(rec)+1)
	for k, v := range rec {
		out[k] = v
	}
	out[key] = value
	return out
}

// ChangeEvent is emitted by an input control on every edit.
type ChangeEvent struct {
	Field   string
	Value   string
	Kind    catalog.Kind
	Checked bool
}

// ApplyChange coerces the event value for its field kind and sets it.
// Unknown fields are ignored.
func ApplyChange(schema catalog.Schema, rec Record, ev ChangeEvent) Record {
	f, ok := schema.Field(ev.Field)
	if !ok {
		return rec
	}
	switch {
	case f.Kind == catalog.Checkbox:
		return SetField(rec, f.Key, ev.Checked)
	case f.Kind == catalog.Integer:
		return SetField(rec, f.Key, ToInt(ev.Value))
	case f.Kind == catalog.Number:
		return SetField(rec, f.Key, ToNumber(ev.Value))
	}
	return SetField(rec, f.Key, ev.Value)
}

// ToNumber parses v as a number. Absent, empty and unparsable values become 0.
func ToNumber(v any) float64 {
	var n float64
	switch x := v.(type) {
	case float64:
		n = x
	case float32:
		n = float64(x)
	case int:
		n = float64(x)
	case int64:
		n = float64(x)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0
		}
		n = f
	default:
		return 0
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

// ToInt is ToNumber truncated toward zero, clamped to the int range.
func ToInt(v any) int {
	n := ToNumber(v)
	switch {
	case n >= float64(math.MaxInt):
		return math.MaxInt
	case n <= float64(math.MinInt):
		return math.MinInt
	}
	return int(n)
}

func toBool(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		b, _ := strconv.ParseBool(strings.TrimSpace(x))
		return b || x == "on"
	}
	return false
}

func toText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	}
	return ""
}

// Coerce converts every field of rec to its schema type. Numeric fields
// follow ToNumber, so nothing is ever left as a string or rejected.
func Coerce(schema catalog.Schema, rec Record) Record {
	out := make(Record, len(schema.Fields))
	for _, f := range schema.Fields {
		v := rec[f.Key]
		switch f.Kind {
		case catalog.Number:
			out[f.Key] = ToNumber(v)
		case catalog.Integer:
			out[f.Key] = ToInt(v)
		case catalog.Checkbox:
			out[f.Key] = toBool(v)
		default:
			out[f.Key] = toText(v)
		}
	}
	return out
}

// Blank returns a record with every field at its zero value ("" , 0, false).
func Blank(schema catalog.Schema) Record {
	return Coerce(schema, Record{})
}

// FromComponent seeds an edit buffer. Every schema field is defined; fields
// missing on the component default to "" or 0.
func FromComponent(schema catalog.Schema, c domain.Component) Record {
	rec := Record{
		"name":        c.Name,
		"brand":       c.Brand,
		"model":       c.Model,
		"price":       c.Price,
		"stock":       c.Stock,
		"description": c.Description,
	}
	for _, f := range schema.SpecFields() {
		if v, ok := c.Specs[f.Key]; ok {
			rec[f.Key] = v
		}
	}
	return Coerce(schema, rec)
}

// ToComponent builds the submitted component from a form record.
func ToComponent(schema catalog.Schema, rec Record) domain.Component {
	r := Coerce(schema, rec)
	c := domain.Component{
		Category:    schema.Category,
		Name:        r["name"].(string),
		Brand:       r["brand"].(string),
		Model:       r["model"].(string),
		Price:       r["price"].(float64),
		Stock:       r["stock"].(int),
		Description: r["description"].(string),
		Specs:       domain.Specs{},
	}
	for _, f := range schema.SpecFields() {
		c.Specs[f.Key] = r[f.Key]
	}
	return c
}

// FromPreset seeds the scalar part of a preset buffer.
func FromPreset(p domain.Preset) Record {
	return Coerce(catalog.Preset, Record{
		"name":        p.Name,
		"category":    p.Category,
		"basePrice":   p.BasePrice,
		"description": p.Description,
		"isActive":    p.Active,
	})
}

// ToPreset combines the scalar record and the selection into a preset.
func ToPreset(id string, rec Record, sel domain.Selection) domain.Preset {
	r := Coerce(catalog.Preset, rec)
	return domain.Preset{
		ID:          id,
		Name:        r["name"].(string),
		Category:    r["category"].(string),
		BasePrice:   r["basePrice"].(float64),
		Description: r["description"].(string),
		Active:      r["isActive"].(bool),
		Components:  sel.Clone(),
	}
}
