package export

import (
	"io"

	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"

	"github.com/willimj3/bella-document-review/internal/model"
)

const xlsxSheet = "Extractions"

// WriteXLSX writes the grid as a single-sheet workbook: header row, then one
// row per document. Cells without a real answer stay blank.
func WriteXLSX(w io.Writer, documents []model.Document, columns []model.Column, results map[model.CellKey]model.ExtractionResult) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(xlsxSheet)
	if err != nil {
		return eris.Wrap(err, "export: create xlsx sheet")
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return eris.Wrap(err, "export: delete default sheet")
	}

	header := []any{"Document Name"}
	for _, c := range columns {
		header = append(header, c.Name)
	}
	if err := setRow(f, 1, header); err != nil {
		return err
	}

	for i, doc := range documents {
		row := []any{doc.Name}
		for _, col := range columns {
			res, ok := readyResult(results, doc.ID, col.ID)
			if !ok {
				row = append(row, "")
				continue
			}
			row = append(row, res.Value)
		}
		if err := setRow(f, i+2, row); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "export: write xlsx")
	}
	return nil
}

func setRow(f *excelize.File, rowNum int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return eris.Wrap(err, "export: xlsx cell name")
	}
	if err := f.SetSheetRow(xlsxSheet, cell, &values); err != nil {
		return eris.Wrapf(err, "export: set xlsx row %d", rowNum)
	}
	return nil
}
