package parse

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/rotisserie/eris"

	"github.com/willimj3/bella-document-review/internal/model"
)

// pdfExtractor extracts page-accurate text from PDFs using the pdftotext CLI,
// with pdfcpu supplying the page count.
type pdfExtractor struct {
	binPath string
}

func newPDFExtractor(binPath string) *pdfExtractor {
	if binPath == "" {
		binPath = "pdftotext"
	}
	return &pdfExtractor{binPath: binPath}
}

// parse extracts every page of the PDF. Page text is fetched one page at a
// time so page numbers in extraction results can point back at real pages.
func (p *pdfExtractor) parse(ctx context.Context, path string) (string, []model.Page, error) {
	pageCount, err := api.PageCountFile(path)
	if err != nil {
		return "", nil, eris.Wrapf(err, "parse: pdf page count %s", path)
	}

	pages := make([]model.Page, 0, pageCount)
	var full strings.Builder
	for n := 1; n <= pageCount; n++ {
		text, err := p.extractPage(ctx, path, n)
		if err != nil {
			return "", nil, err
		}
		pages = append(pages, model.Page{Number: n, Text: text})
		full.WriteString(text)
		full.WriteString("\n\n")
	}

	return strings.TrimSpace(full.String()), pages, nil
}

// extractPage runs pdftotext -layout for a single page and returns stdout.
func (p *pdfExtractor) extractPage(ctx context.Context, path string, page int) (string, error) {
	pageArg := strconv.Itoa(page)
	cmd := exec.CommandContext(ctx, p.binPath, "-layout", "-f", pageArg, "-l", pageArg, path, "-")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", eris.Wrapf(err, "parse: pdftotext failed for %s page %d: %s", path, page, stderr.String())
	}

	return stdout.String(), nil
}
