// Package template manages reusable column sets for document categories.
package template

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/willimj3/bella-document-review/internal/model"
)

// BuiltIn returns the shipped templates.
func BuiltIn() []model.Template {
	out := make([]model.Template, len(builtins))
	copy(out, builtins)
	return out
}

// FindBuiltIn looks up a shipped template by name, case-insensitively.
func FindBuiltIn(name string) (model.Template, bool) {
	for _, t := range builtins {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return model.Template{}, false
}

// Load reads and validates a YAML template file.
func Load(path string) (model.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Template{}, eris.Wrapf(err, "template: read %s", path)
	}
	return Parse(data)
}

// Parse decodes and validates template YAML.
func Parse(data []byte) (model.Template, error) {
	var t model.Template
	if err := yaml.Unmarshal(data, &t); err != nil {
		return model.Template{}, eris.Wrap(err, "template: decode yaml")
	}
	if err := t.Validate(); err != nil {
		return model.Template{}, err
	}
	return t, nil
}
