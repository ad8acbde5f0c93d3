package model

import "time"

// FileType identifies the source format of an uploaded document.
type FileType string

const (
	FileTypePDF  FileType = "pdf"
	FileTypeDOCX FileType = "docx"
	FileTypeTXT  FileType = "txt"
)

// Page is one page (or pseudo-page) of document text.
type Page struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// Document is an ingested source document. Immutable after creation; the
// session owns it exclusively and removing it cascades to every extraction
// result keyed by its ID.
type Document struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Content    string    `json:"content"`
	Pages      []Page    `json:"pages"`
	FileSize   int64     `json:"file_size"`
	FileType   FileType  `json:"file_type"`
	PageCount  int       `json:"page_count"`
	UploadedAt time.Time `json:"uploaded_at"`
}
