// Package catalog describes the editable fields of every component category
// and of presets. Admin forms, tables and the compatibility rules all read
// their field lists from here.
package catalog

import "pcforge/internal/domain"

type Kind string

const (
	Text     Kind = "text"
	TextArea Kind = "textarea"
	Number   Kind = "number"
	Integer  Kind = "integer"
	Checkbox Kind = "checkbox"
	Select   Kind = "select"
)

// Numeric reports whether values of this kind are coerced to numbers on submit.
func (k Kind) Numeric() bool { return k == Number || k == Integer }

type Field struct {
	Key      string
	Label    string
	Kind     Kind
	Required bool
	Options  []string
	// Core fields map onto Component columns, the rest live in Specs.
	Core bool
}

type Schema struct {
	Category domain.Category
	Entity   string // key used in create responses, e.g. {"gpu": {...}}
	Slug     string // URL segment
	Title    string
	Plural   string
	Fields   []Field
	Summary  []string // spec keys joined into the table summary column
}

func (s Schema) Field(key string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// SpecFields returns the non-core fields.
func (s Schema) SpecFields() []Field {
	var out []Field
	for _, f := range s.Fields {
		if !f.Core {
			out = append(out, f)
		}
	}
	return out
}

var (
	sockets      = []string{"AM4", "AM5", "LGA1700", "LGA1851"}
	memoryTypes  = []string{"DDR4", "DDR5"}
	formFactors  = []string{"ATX", "Micro-ATX", "Mini-ITX"}
	psuFactors   = []string{"ATX", "SFX"}
	efficiencies = []string{"80+ White", "80+ Bronze", "80+ Silver", "80+ Gold", "80+ Platinum", "80+ Titanium"}
)

func withCore(specs ...Field) []Field {
	out := []Field{
		{Key: "name", Label: "Name", Kind: Text, Required: true, Core: true},
		{Key: "brand", Label: "Brand", Kind: Text, Required: true, Core: true},
		{Key: "model", Label: "Model", Kind: Text, Required: true, Core: true},
	}
	out = append(out, specs...)
	return append(out,
		Field{Key: "price", Label: "Price", Kind: Number, Required: true, Core: true},
		Field{Key: "stock", Label: "Stock", Kind: Integer, Required: true, Core: true},
		Field{Key: "description", Label: "Description", Kind: TextArea, Core: true},
	)
}

var schemas = []Schema{
	{
		Category: domain.CategoryCPU, Entity: "cpu", Slug: "cpus", Title: "CPU", Plural: "CPUs",
		Fields: withCore(
			Field{Key: "socket", Label: "Socket", Kind: Select, Required: true, Options: sockets},
			Field{Key: "cores", Label: "Cores", Kind: Integer, Required: true},
			Field{Key: "threads", Label: "Threads", Kind: Integer},
			Field{Key: "baseClock", Label: "Base clock (GHz)", Kind: Number},
			Field{Key: "boostClock", Label: "Boost clock (GHz)", Kind: Number},
			Field{Key: "tdp", Label: "TDP (W)", Kind: Integer, Required: true},
			Field{Key: "integratedGraphics", Label: "Integrated graphics", Kind: Checkbox},
		),
		Summary: []string{"socket", "cores", "boostClock", "tdp"},
	},
	{
		Category: domain.CategoryMotherboard, Entity: "motherboard", Slug: "motherboards", Title: "Motherboard", Plural: "Motherboards",
		Fields: withCore(
			Field{Key: "socket", Label: "Socket", Kind: Select, Required: true, Options: sockets},
			Field{Key: "chipset", Label: "Chipset", Kind: Text},
			Field{Key: "formFactor", Label: "Form factor", Kind: Select, Required: true, Options: formFactors},
			Field{Key: "memoryType", Label: "Memory type", Kind: Select, Required: true, Options: memoryTypes},
			Field{Key: "memorySlots", Label: "Memory slots", Kind: Integer},
			Field{Key: "maxMemory", Label: "Max memory (GB)", Kind: Integer},
		),
		Summary: []string{"socket", "chipset", "formFactor", "memoryType"},
	},
	{
		Category: domain.CategoryRAM, Entity: "ram", Slug: "ram", Title: "RAM", Plural: "RAM kits",
		Fields: withCore(
			Field{Key: "memoryType", Label: "Memory type", Kind: Select, Required: true, Options: memoryTypes},
			Field{Key: "capacity", Label: "Capacity (GB)", Kind: Integer, Required: true},
			Field{Key: "modules", Label: "Modules", Kind: Integer},
			Field{Key: "speed", Label: "Speed (MHz)", Kind: Integer},
			Field{Key: "casLatency", Label: "CAS latency", Kind: Integer},
		),
		Summary: []string{"memoryType", "capacity", "speed"},
	},
	{
		Category: domain.CategoryGPU, Entity: "gpu", Slug: "gpus", Title: "GPU", Plural: "GPUs",
		Fields: withCore(
			Field{Key: "chipset", Label: "Chipset", Kind: Text, Required: true},
			Field{Key: "vram", Label: "VRAM (GB)", Kind: Integer, Required: true},
			Field{Key: "memoryType", Label: "Memory type", Kind: Text},
			Field{Key: "coreClock", Label: "Core clock (MHz)", Kind: Number},
			Field{Key: "boostClock", Label: "Boost clock (MHz)", Kind: Number},
			Field{Key: "tdp", Label: "TDP (W)", Kind: Integer, Required: true},
			Field{Key: "length", Label: "Length (mm)", Kind: Integer},
		),
		Summary: []string{"chipset", "vram", "memoryType", "tdp"},
	},
	{
		Category: domain.CategoryStorage, Entity: "storage", Slug: "storage", Title: "Storage", Plural: "Storage drives",
		Fields: withCore(
			Field{Key: "storageType", Label: "Type", Kind: Select, Required: true, Options: []string{"NVMe", "SSD", "HDD"}},
			Field{Key: "capacity", Label: "Capacity (GB)", Kind: Integer, Required: true},
			Field{Key: "interface", Label: "Interface", Kind: Text},
			Field{Key: "readSpeed", Label: "Read (MB/s)", Kind: Integer},
			Field{Key: "writeSpeed", Label: "Write (MB/s)", Kind: Integer},
		),
		Summary: []string{"storageType", "capacity", "interface"},
	},
	{
		Category: domain.CategoryPowerSupply, Entity: "powerSupply", Slug: "power-supplies", Title: "Power supply", Plural: "Power supplies",
		Fields: withCore(
			Field{Key: "wattage", Label: "Wattage (W)", Kind: Integer, Required: true},
			Field{Key: "efficiency", Label: "Efficiency", Kind: Select, Required: true, Options: efficiencies},
			Field{Key: "modular", Label: "Modular", Kind: Select, Options: []string{"Full", "Semi", "Non"}},
			Field{Key: "formFactor", Label: "Form factor", Kind: Select, Options: psuFactors},
		),
		Summary: []string{"wattage", "efficiency", "modular"},
	},
	{
		Category: domain.CategoryCase, Entity: "case", Slug: "cases", Title: "Case", Plural: "Cases",
		Fields: withCore(
			Field{Key: "formFactor", Label: "Largest board", Kind: Select, Required: true, Options: formFactors},
			Field{Key: "maxGpuLength", Label: "Max GPU length (mm)", Kind: Integer},
			Field{Key: "psuFormFactor", Label: "PSU form factor", Kind: Select, Options: psuFactors},
			Field{Key: "color", Label: "Color", Kind: Text},
		),
		Summary: []string{"formFactor", "maxGpuLength", "color"},
	},
	{
		Category: domain.CategoryCooling, Entity: "cooling", Slug: "cooling", Title: "Cooler", Plural: "Coolers",
		Fields: withCore(
			Field{Key: "coolerType", Label: "Type", Kind: Select, Required: true, Options: []string{"Air", "Liquid"}},
			Field{Key: "supportedSockets", Label: "Supported sockets (comma separated)", Kind: Text},
			Field{Key: "tdpRating", Label: "TDP rating (W)", Kind: Integer},
			Field{Key: "radiatorSize", Label: "Radiator (mm)", Kind: Integer},
		),
		Summary: []string{"coolerType", "tdpRating", "supportedSockets"},
	},
}

// Preset is the scalar part of a preset form. The eight component selections
// are edited separately by the preset editor.
var Preset = Schema{
	Entity: "preset", Slug: "presets", Title: "Preset", Plural: "Presets",
	Fields: []Field{
		{Key: "name", Label: "Name", Kind: Text, Required: true, Core: true},
		{Key: "category", Label: "Category", Kind: Select, Required: true, Core: true,
			Options: []string{domain.PresetWorkstation, domain.PresetOffice}},
		{Key: "basePrice", Label: "Base price", Kind: Number, Core: true},
		{Key: "description", Label: "Description", Kind: TextArea, Core: true},
		{Key: "isActive", Label: "Active", Kind: Checkbox, Core: true},
	},
}

// All returns the component schemas in preset category order.
func All() []Schema { return schemas }

func ForCategory(c domain.Category) (Schema, bool) {
	for _, s := range schemas {
		if s.Category == c {
			return s, true
		}
	}
	return Schema{}, false
}

func BySlug(slug string) (Schema, bool) {
	for _, s := range schemas {
		if s.Slug == slug {
			return s, true
		}
	}
	return Schema{}, false
}
