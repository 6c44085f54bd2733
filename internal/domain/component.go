package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Category is one of the component categories a preset is built from.
type Category string

const (
	CategoryCPU         Category = "cpu"
	CategoryMotherboard Category = "motherboard"
	CategoryRAM         Category = "ram"
	CategoryGPU         Category = "gpu"
	CategoryStorage     Category = "storage"
	CategoryPowerSupply Category = "powerSupply"
	CategoryCase        Category = "case"
	CategoryCooling     Category = "cooling"
)

// PresetCategories is the fixed set of keys every preset must fill, in display order.
var PresetCategories = []Category{
	CategoryCPU,
	CategoryMotherboard,
	CategoryRAM,
	CategoryGPU,
	CategoryStorage,
	CategoryPowerSupply,
	CategoryCase,
	CategoryCooling,
}

func (c Category) Valid() bool {
	for _, k := range PresetCategories {
		if k == c {
			return true
		}
	}
	return false
}

// Specs holds the category specific scalar fields of a component.
// Stored as a JSON column.
type Specs map[string]any

func (s Specs) Value() (driver.Value, error) {
	if s == nil {
		return "{}", nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *Specs) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*s = Specs{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("specs: unsupported column type %T", src)
	}
	out := Specs{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			return err
		}
	}
	*s = out
	return nil
}

// Number returns a numeric spec, 0 when absent or not numeric.
func (s Specs) Number(key string) float64 {
	switch v := s[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}

// Text returns a string spec, "" when absent.
func (s Specs) Text(key string) string {
	if v, ok := s[key].(string); ok {
		return v
	}
	return ""
}

type Component struct {
	ID          string   `db:"id" json:"_id"`
	Category    Category `db:"category" json:"category"`
	Name        string   `db:"name" json:"name"`
	Brand       string   `db:"brand" json:"brand"`
	Model       string   `db:"model" json:"model"`
	Price       float64  `db:"price" json:"price"`
	Stock       int      `db:"stock" json:"stock"`
	Description string   `db:"description" json:"description"`
	ImageURL    string   `db:"image_url" json:"image,omitempty"`
	Specs       Specs    `db:"specs_json" json:"specs"`
	CreatedAt   string   `db:"created_at" json:"createdAt,omitempty"`
	UpdatedAt   string   `db:"updated_at" json:"updatedAt,omitempty"`
}

// StockStatus is IN_STOCK | LOW_STOCK | OUT_OF_STOCK.
type StockStatus string

const (
	InStock    StockStatus = "IN_STOCK"
	LowStock   StockStatus = "LOW_STOCK"
	OutOfStock StockStatus = "OUT_OF_STOCK"
)

func StatusForQty(qty int) StockStatus {
	switch {
	case qty >= 5:
		return InStock
	case qty > 0:
		return LowStock
	}
	return OutOfStock
}
