package parse

import (
	"os"

	"github.com/rotisserie/eris"

	"github.com/willimj3/bella-document-review/internal/model"
)

// parseTXT reads a plain-text file and splits it into pseudo-pages.
func parseTXT(path string) (string, []model.Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, eris.Wrapf(err, "parse: read %s", path)
	}
	content := string(data)
	return content, pseudoPages(content), nil
}
