package model

import "github.com/rotisserie/eris"

// TemplateColumn is a column definition without identity or ordering; both
// are assigned when the template is applied to a session.
type TemplateColumn struct {
	Name    string     `json:"name" yaml:"name"`
	Prompt  string     `json:"prompt" yaml:"prompt"`
	Type    ColumnType `json:"type" yaml:"type"`
	Options []string   `json:"options,omitempty" yaml:"options,omitempty"`
}

// Template is a named, reusable set of column definitions for a document
// category, applied in bulk to seed a project's columns.
type Template struct {
	Name            string           `json:"name" yaml:"name"`
	Description     string           `json:"description" yaml:"description"`
	TargetDocuments string           `json:"target_documents" yaml:"target_documents"`
	Columns         []TemplateColumn `json:"columns" yaml:"columns"`
}

// Validate checks the template and every column definition in it.
func (t Template) Validate() error {
	if t.Name == "" {
		return eris.New("template: name is required")
	}
	if len(t.Columns) == 0 {
		return eris.Errorf("template %q: at least one column is required", t.Name)
	}
	for _, tc := range t.Columns {
		col := Column{Name: tc.Name, Prompt: tc.Prompt, Type: tc.Type, Options: tc.Options}
		if err := col.Validate(); err != nil {
			return eris.Wrapf(err, "template %q", t.Name)
		}
	}
	return nil
}
