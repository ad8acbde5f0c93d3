package model

import "github.com/rotisserie/eris"

// ColumnType controls the formatting instructions sent to the model and the
// validation applied to extracted values.
type ColumnType string

const (
	ColumnTypeText     ColumnType = "text"
	ColumnTypeDate     ColumnType = "date"
	ColumnTypeCurrency ColumnType = "currency"
	ColumnTypeNumber   ColumnType = "number"
	ColumnTypeBoolean  ColumnType = "boolean"
	ColumnTypeSelect   ColumnType = "select"
)

// ValidColumnType reports whether t is a recognized column type.
func ValidColumnType(t ColumnType) bool {
	switch t {
	case ColumnTypeText, ColumnTypeDate, ColumnTypeCurrency,
		ColumnTypeNumber, ColumnTypeBoolean, ColumnTypeSelect:
		return true
	}
	return false
}

// Column is one extraction query applied to every document in the grid.
// Name, prompt, type, and options are editable in place; removal cascades to
// every result keyed by the column's ID.
type Column struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Prompt  string     `json:"prompt"`
	Type    ColumnType `json:"type"`
	Options []string   `json:"options,omitempty"`
	Order   int        `json:"order"`
}

// Validate checks the column definition for internal consistency.
func (c Column) Validate() error {
	if c.Name == "" {
		return eris.New("column: name is required")
	}
	if c.Prompt == "" {
		return eris.Errorf("column %q: prompt is required", c.Name)
	}
	if !ValidColumnType(c.Type) {
		return eris.Errorf("column %q: unknown type %q", c.Name, c.Type)
	}
	if c.Type == ColumnTypeSelect && len(c.Options) < 2 {
		return eris.Errorf("column %q: select type requires at least 2 options", c.Name)
	}
	if c.Type != ColumnTypeSelect && len(c.Options) > 0 {
		return eris.Errorf("column %q: options are only valid for select columns", c.Name)
	}
	return nil
}
