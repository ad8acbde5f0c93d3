package export

import (
	"encoding/json"
	"io"
	"time"

	"github.com/rotisserie/eris"

	"github.com/willimj3/bella-document-review/internal/model"
)

// jsonExport is the top-level structured export document.
type jsonExport struct {
	ProjectName string           `json:"project_name"`
	ExportedAt  time.Time        `json:"exported_at"`
	Columns     []jsonColumn     `json:"columns"`
	Documents   []jsonDocument   `json:"documents"`
}

type jsonColumn struct {
	Name    string           `json:"name"`
	Prompt  string           `json:"prompt"`
	Type    model.ColumnType `json:"type"`
	Options []string         `json:"options,omitempty"`
}

type jsonDocument struct {
	Name        string                    `json:"name"`
	PageCount   int                       `json:"page_count"`
	FileSize    int64                     `json:"file_size"`
	Extractions map[string]jsonExtraction `json:"extractions"`
}

type jsonExtraction struct {
	Value            string           `json:"value"`
	Confidence       model.Confidence `json:"confidence"`
	Reasoning        string           `json:"reasoning"`
	Quote            string           `json:"quote"`
	PageNumber       *int             `json:"page_number"`
	IsManuallyEdited bool             `json:"is_manually_edited"`
	IsReviewed       bool             `json:"is_reviewed"`
}

// WriteJSON writes the project snapshot as indented JSON. Cells without a
// real answer are omitted from each document's extraction map.
func WriteJSON(w io.Writer, projectName string, documents []model.Document, columns []model.Column, results map[model.CellKey]model.ExtractionResult) error {
	out := jsonExport{
		ProjectName: projectName,
		ExportedAt:  time.Now().UTC(),
		Columns:     make([]jsonColumn, 0, len(columns)),
		Documents:   make([]jsonDocument, 0, len(documents)),
	}

	for _, c := range columns {
		out.Columns = append(out.Columns, jsonColumn{
			Name:    c.Name,
			Prompt:  c.Prompt,
			Type:    c.Type,
			Options: c.Options,
		})
	}

	for _, doc := range documents {
		jd := jsonDocument{
			Name:        doc.Name,
			PageCount:   doc.PageCount,
			FileSize:    doc.FileSize,
			Extractions: make(map[string]jsonExtraction),
		}
		for _, col := range columns {
			res, ok := readyResult(results, doc.ID, col.ID)
			if !ok {
				continue
			}
			jd.Extractions[col.Name] = jsonExtraction{
				Value:            res.Value,
				Confidence:       res.Confidence,
				Reasoning:        res.Reasoning,
				Quote:            res.Quote,
				PageNumber:       res.PageNumber,
				IsManuallyEdited: res.IsManuallyEdited,
				IsReviewed:       res.IsReviewed,
			}
		}
		out.Documents = append(out.Documents, jd)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(out), "export: encode json")
}
