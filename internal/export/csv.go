// Package export serializes result-store snapshots into interchange formats.
// Every formatter reads cells through the same Ready-status filter: pending
// and errored cells serialize as empty fields, never as their marker text.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/rotisserie/eris"

	"github.com/willimj3/bella-document-review/internal/model"
)

// CSVOptions controls the optional per-column confidence and quote columns.
type CSVOptions struct {
	IncludeConfidence bool
	IncludeQuotes     bool
}

// WriteCSV writes the grid as CSV: one row per document, one column per
// extraction column, with optional confidence and quote column groups
// appended after the values.
func WriteCSV(w io.Writer, documents []model.Document, columns []model.Column, results map[model.CellKey]model.ExtractionResult, opts CSVOptions) error {
	cw := csv.NewWriter(w)

	header := []string{"Document Name"}
	for _, c := range columns {
		header = append(header, c.Name)
	}
	if opts.IncludeConfidence {
		for _, c := range columns {
			header = append(header, fmt.Sprintf("%s (Confidence)", c.Name))
		}
	}
	if opts.IncludeQuotes {
		for _, c := range columns {
			header = append(header, fmt.Sprintf("%s (Quote)", c.Name))
		}
	}
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "export: write csv header")
	}

	for _, doc := range documents {
		row := []string{doc.Name}
		for _, col := range columns {
			res, ok := readyResult(results, doc.ID, col.ID)
			if !ok {
				row = append(row, "")
				continue
			}
			row = append(row, res.Value)
		}
		if opts.IncludeConfidence {
			for _, col := range columns {
				res, ok := readyResult(results, doc.ID, col.ID)
				if !ok {
					row = append(row, "")
					continue
				}
				row = append(row, string(res.Confidence))
			}
		}
		if opts.IncludeQuotes {
			for _, col := range columns {
				res, ok := readyResult(results, doc.ID, col.ID)
				if !ok {
					row = append(row, "")
					continue
				}
				row = append(row, res.Quote)
			}
		}
		if err := cw.Write(row); err != nil {
			return eris.Wrapf(err, "export: write csv row for %s", doc.Name)
		}
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush csv")
}

// readyResult returns the cell's result only when it holds a real answer.
func readyResult(results map[model.CellKey]model.ExtractionResult, docID, colID string) (model.ExtractionResult, bool) {
	res, ok := results[model.CellKey{DocumentID: docID, ColumnID: colID}]
	if !ok || res.Status != model.StatusReady {
		return model.ExtractionResult{}, false
	}
	return res, true
}
