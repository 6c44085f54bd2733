package admin

import "pcforge/internal/catalog"

// FieldView is one controlled input. Value always mirrors the record.
type FieldView struct {
	Key      string
	Label    string
	Kind     catalog.Kind
	Required bool
	Options  []string
	Value    string
	Checked  bool
}

// RenderFields maps rec onto one view per schema field, in schema order.
func RenderFields(schema catalog.Schema, rec Record) []FieldView {
	out := make([]FieldView, 0, len(schema.Fields))
	for _, f := range schema.Fields {
		v := FieldView{
			Key:      f.Key,
			Label:    f.Label,
			Kind:     f.Kind,
			Required: f.Required,
			Options:  f.Options,
		}
		if f.Kind == catalog.Checkbox {
			v.Checked = toBool(rec[f.Key])
		} else {
			v.Value = toText(rec[f.Key])
		}
		out = append(out, v)
	}
	return out
}
