package importer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ImportSchema is the top-level structure of an estimate fixture. YAML and
// JSON files are both accepted.
type ImportSchema struct {
	Project   ProjectImport    `yaml:"project"`
	Estimate  EstimateImport   `yaml:"estimate"`
	PriceList *PriceListImport `yaml:"price_list,omitempty"`
	Capacity  []CapacityImport `yaml:"capacity,omitempty" validate:"dive"`
}

// ProjectImport defines the project the estimate belongs to.
type ProjectImport struct {
	ID        string `yaml:"id,omitempty"`
	CompanyID string `yaml:"company_id" validate:"required"`
	Name      string `yaml:"name" validate:"required"`
	CreatedAt string `yaml:"created_at,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// EstimateImport defines one estimate and its priced lines.
type EstimateImport struct {
	ID         string       `yaml:"id,omitempty"`
	Label      string       `yaml:"label,omitempty"`
	ImportedAt string       `yaml:"imported_at,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Lines      []LineImport `yaml:"lines" validate:"dive"`
}

// LineImport is one estimate line. Quantity accepts thousands separators.
type LineImport struct {
	Category   string `yaml:"category" validate:"required"`
	Selector   string `yaml:"selector" validate:"required"`
	Activity   string `yaml:"activity,omitempty"`
	Quantity   string `yaml:"quantity" validate:"required"`
	Room       string `yaml:"room,omitempty"`
	Note       string `yaml:"note,omitempty"`
	SourceDate string `yaml:"source_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// PriceListImport defines a labor-rate catalog revision.
type PriceListImport struct {
	Kind     string        `yaml:"kind,omitempty"`
	Revision int           `yaml:"revision" validate:"gt=0"`
	Active   *bool         `yaml:"active,omitempty"`
	Entries  []EntryImport `yaml:"entries" validate:"required,min=1,dive"`
}

// EntryImport is one catalog row. Money fields accept "$" and thousands
// separators.
type EntryImport struct {
	Category      string `yaml:"category,omitempty"`
	Selector      string `yaml:"selector,omitempty"`
	Activity      string `yaml:"activity,omitempty"`
	Unit          string `yaml:"unit" validate:"required"`
	LaborMinimum  string `yaml:"labor_minimum,omitempty"`
	Wage          string `yaml:"wage" validate:"required"`
	LaborBurden   string `yaml:"labor_burden,omitempty"`
	LaborOverhead string `yaml:"labor_overhead,omitempty"`
}

// CapacityImport sets a trade's concurrent-crew limit.
type CapacityImport struct {
	Trade         string `yaml:"trade" validate:"required"`
	MaxConcurrent int    `yaml:"max_concurrent" validate:"gt=0"`
	Scope         string `yaml:"scope,omitempty" validate:"omitempty,oneof=project company"`
}

// LoadImportSchema reads and parses a fixture file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseImportSchema(data)
}

// ParseImportSchema parses fixture bytes.
func ParseImportSchema(data []byte) (*ImportSchema, error) {
	var schema ImportSchema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
