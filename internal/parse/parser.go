// Package parse turns uploaded files into Documents: plain text content plus
// an ordered page list. PDF text comes from the pdftotext CLI; DOCX and TXT
// have no physical pages and are split into fixed-size pseudo-pages.
package parse

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/willimj3/bella-document-review/internal/model"
)

// pseudoPageSize is the character count per pseudo-page for formats without
// physical page boundaries.
const pseudoPageSize = 3000

// UnsupportedFileTypeError reports a file extension the parser cannot handle.
type UnsupportedFileTypeError struct {
	Name string
}

func (e *UnsupportedFileTypeError) Error() string {
	return fmt.Sprintf("parse: unsupported file type: %s", e.Name)
}

// Parser ingests files into Documents.
type Parser struct {
	pdf *pdfExtractor
}

// NewParser creates a Parser. pdftotextPath defaults to "pdftotext".
func NewParser(pdftotextPath string) *Parser {
	return &Parser{pdf: newPDFExtractor(pdftotextPath)}
}

// SupportedFile reports whether the file name has a parseable extension.
func SupportedFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf", ".docx", ".doc", ".txt":
		return true
	}
	return false
}

// ParseFile ingests one file, dispatching on its extension.
func (p *Parser) ParseFile(ctx context.Context, path string) (model.Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return model.Document{}, eris.Wrapf(err, "parse: stat %s", path)
	}

	name := filepath.Base(path)
	var content string
	var pages []model.Page
	var fileType model.FileType

	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		content, pages, err = p.pdf.parse(ctx, path)
		fileType = model.FileTypePDF
	case ".docx", ".doc":
		content, pages, err = parseDOCX(path)
		fileType = model.FileTypeDOCX
	case ".txt":
		content, pages, err = parseTXT(path)
		fileType = model.FileTypeTXT
	default:
		return model.Document{}, &UnsupportedFileTypeError{Name: name}
	}
	if err != nil {
		return model.Document{}, err
	}

	return model.Document{
		ID:         uuid.NewString(),
		Name:       name,
		Content:    content,
		Pages:      pages,
		FileSize:   info.Size(),
		FileType:   fileType,
		PageCount:  len(pages),
		UploadedAt: time.Now().UTC(),
	}, nil
}

// pseudoPages splits content into fixed-size pages. Empty content still
// yields one empty page so every document has at least one page.
func pseudoPages(content string) []model.Page {
	var pages []model.Page
	for i := 0; i < len(content); i += pseudoPageSize {
		end := i + pseudoPageSize
		if end > len(content) {
			end = len(content)
		}
		pages = append(pages, model.Page{Number: len(pages) + 1, Text: content[i:end]})
	}
	if len(pages) == 0 {
		pages = append(pages, model.Page{Number: 1, Text: content})
	}
	return pages
}
