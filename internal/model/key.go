package model

// CellKey identifies one (document, column) cell in the extraction grid.
type CellKey struct {
	DocumentID string
	ColumnID   string
}
