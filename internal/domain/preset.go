package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

const (
	PresetWorkstation = "workstation"
	PresetOffice      = "office"
)

// Selection maps each preset category to a chosen component id.
type Selection map[Category]string

func (s Selection) Value() (driver.Value, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *Selection) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*s = Selection{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("selection: unsupported column type %T", src)
	}
	out := Selection{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			return err
		}
	}
	*s = out
	return nil
}

// Missing lists the preset categories with no component selected.
func (s Selection) Missing() []Category {
	var out []Category
	for _, c := range PresetCategories {
		if s[c] == "" {
			out = append(out, c)
		}
	}
	return out
}

func (s Selection) Clone() Selection {
	out := make(Selection, len(PresetCategories))
	for _, c := range PresetCategories {
		out[c] = s[c]
	}
	return out
}

// Preset is a workstation configuration sold as a bundle.
type Preset struct {
	ID          string    `db:"id" json:"_id"`
	Name        string    `db:"name" json:"name"`
	Category    string    `db:"category" json:"category"` // workstation | office
	BasePrice   float64   `db:"base_price" json:"basePrice"`
	Description string    `db:"description" json:"description"`
	Active      bool      `db:"active" json:"isActive"`
	ImageURL    string    `db:"image_url" json:"image,omitempty"`
	Components  Selection `db:"components_json" json:"components"`
	CreatedAt   string    `db:"created_at" json:"createdAt,omitempty"`
	UpdatedAt   string    `db:"updated_at" json:"updatedAt,omitempty"`
}

// Warning is a compatibility problem found in a selection.
type Warning struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Option is one selectable component for a preset category.
type Option struct {
	ID    string  `json:"_id"`
	Label string  `json:"label"`
	Price float64 `json:"price"`
}
