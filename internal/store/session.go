package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/willimj3/bella-document-review/internal/model"
)

// SelectedCell points at the cell shown in the detail view.
type SelectedCell struct {
	DocumentID string
	ColumnID   string
}

// Session is the authoritative in-memory state for one review session:
// documents, columns, the result map, chat history, and selection. Nothing
// here survives process exit.
//
// The result map is the only state shared with scheduler workers. Workers
// write disjoint keys by construction (the work-list partition), so the mutex
// exists for the reader side and for manual edit/review actions that run
// concurrently with a bulk sweep.
type Session struct {
	mu sync.RWMutex

	projectName string
	documents   []model.Document
	columns     []model.Column
	results     map[model.CellKey]model.ExtractionResult
	chatHistory []model.ChatMessage

	selectedCell      *SelectedCell
	selectedDocuments map[string]bool
}

// NewSession creates an empty session.
func NewSession(projectName string) *Session {
	if projectName == "" {
		projectName = "Untitled Project"
	}
	return &Session{
		projectName:       projectName,
		results:           make(map[model.CellKey]model.ExtractionResult),
		selectedDocuments: make(map[string]bool),
	}
}

// ProjectName returns the session's project name.
func (s *Session) ProjectName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.projectName
}

// SetProjectName renames the project.
func (s *Session) SetProjectName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projectName = name
}

// --- Documents ---

// AddDocuments appends documents to the session.
func (s *Session) AddDocuments(docs ...model.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents = append(s.documents, docs...)
}

// RemoveDocument deletes a document. Cascades: every result keyed by the
// document is removed, and any selection pointing at it is cleared.
func (s *Session) RemoveDocument(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.documents[:0]
	for _, d := range s.documents {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	s.documents = kept

	for key := range s.results {
		if key.DocumentID == id {
			delete(s.results, key)
		}
	}

	if s.selectedCell != nil && s.selectedCell.DocumentID == id {
		s.selectedCell = nil
	}
	delete(s.selectedDocuments, id)
}

// ClearDocuments removes every document, all results, and the selection.
func (s *Session) ClearDocuments() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents = nil
	s.results = make(map[model.CellKey]model.ExtractionResult)
	s.selectedCell = nil
	s.selectedDocuments = make(map[string]bool)
}

// Documents returns a copy of the document list.
func (s *Session) Documents() []model.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Document, len(s.documents))
	copy(out, s.documents)
	return out
}

// Document looks up a document by ID.
func (s *Session) Document(id string) (model.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.documents {
		if d.ID == id {
			return d, true
		}
	}
	return model.Document{}, false
}

// --- Columns ---

// AddColumn validates and appends a column, assigning ID and order.
func (s *Session) AddColumn(name, prompt string, colType model.ColumnType, options []string) (model.Column, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	col := model.Column{
		ID:      uuid.NewString(),
		Name:    name,
		Prompt:  prompt,
		Type:    colType,
		Options: options,
		Order:   len(s.columns),
	}
	if err := col.Validate(); err != nil {
		return model.Column{}, err
	}
	s.columns = append(s.columns, col)
	return col, nil
}

// UpdateColumn edits a column in place. ID and order are not editable.
func (s *Session) UpdateColumn(id string, update func(*model.Column)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.columns {
		if s.columns[i].ID != id {
			continue
		}
		next := s.columns[i]
		update(&next)
		next.ID = s.columns[i].ID
		next.Order = s.columns[i].Order
		if err := next.Validate(); err != nil {
			return err
		}
		s.columns[i] = next
		return nil
	}
	return eris.Errorf("store: column %s not found", id)
}

// RemoveColumn deletes a column. Cascades: results for the column are removed
// across every document, remaining columns are renumbered contiguously, and a
// selection pointing at the column is cleared.
func (s *Session) RemoveColumn(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.columns[:0]
	for _, c := range s.columns {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	for i := range kept {
		kept[i].Order = i
	}
	s.columns = kept

	for key := range s.results {
		if key.ColumnID == id {
			delete(s.results, key)
		}
	}

	if s.selectedCell != nil && s.selectedCell.ColumnID == id {
		s.selectedCell = nil
	}
}

// ReorderColumns replaces the column ordering. The new slice must contain
// exactly the current column IDs.
func (s *Session) ReorderColumns(ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(ids) != len(s.columns) {
		return eris.Errorf("store: reorder expects %d columns, got %d", len(s.columns), len(ids))
	}
	byID := make(map[string]model.Column, len(s.columns))
	for _, c := range s.columns {
		byID[c.ID] = c
	}
	next := make([]model.Column, 0, len(ids))
	for i, id := range ids {
		c, ok := byID[id]
		if !ok {
			return eris.Errorf("store: reorder references unknown column %s", id)
		}
		c.Order = i
		next = append(next, c)
		delete(byID, id)
	}
	s.columns = next
	return nil
}

// ApplyTemplate appends the template's columns after the existing ones.
func (s *Session) ApplyTemplate(tmpl model.Template) ([]model.Column, error) {
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	added := make([]model.Column, 0, len(tmpl.Columns))
	for _, tc := range tmpl.Columns {
		col := model.Column{
			ID:      uuid.NewString(),
			Name:    tc.Name,
			Prompt:  tc.Prompt,
			Type:    tc.Type,
			Options: tc.Options,
			Order:   len(s.columns),
		}
		s.columns = append(s.columns, col)
		added = append(added, col)
	}
	return added, nil
}

// Columns returns a copy of the column list in display order.
func (s *Session) Columns() []model.Column {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Column, len(s.columns))
	copy(out, s.columns)
	return out
}

// --- Results ---

// SetResult writes a result unconditionally; used for both sentinel and
// final writes. Last write wins.
func (s *Session) SetResult(documentID, columnID string, res model.ExtractionResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[model.CellKey{DocumentID: documentID, ColumnID: columnID}] = res
}

// PatchResult merges a partial update into an existing result; a no-op when
// the cell has no result. A patch that changes the value is a manual edit:
// the first one captures the pre-edit value in OriginalValue, later ones
// leave it untouched.
func (s *Session) PatchResult(documentID, columnID string, patch model.ResultPatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := model.CellKey{DocumentID: documentID, ColumnID: columnID}
	res, ok := s.results[key]
	if !ok {
		return false
	}

	now := time.Now().UTC()

	if patch.Value != nil && *patch.Value != res.Value {
		if !res.IsManuallyEdited {
			prev := res.Value
			res.OriginalValue = &prev
		}
		res.Value = *patch.Value
		res.IsManuallyEdited = true
		res.EditedAt = &now
	}
	if patch.Confidence != nil {
		res.Confidence = *patch.Confidence
	}
	if patch.Reasoning != nil {
		res.Reasoning = *patch.Reasoning
	}
	if patch.Quote != nil {
		res.Quote = *patch.Quote
	}
	if patch.PageNumber != nil {
		res.PageNumber = patch.PageNumber
	}
	if patch.IsReviewed != nil {
		res.IsReviewed = *patch.IsReviewed
		if *patch.IsReviewed {
			res.ReviewedAt = &now
		} else {
			res.ReviewedAt = nil
		}
	}

	s.results[key] = res
	return true
}

// Result looks up the result for one cell.
func (s *Session) Result(documentID, columnID string) (model.ExtractionResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res, ok := s.results[model.CellKey{DocumentID: documentID, ColumnID: columnID}]
	return res, ok
}

// Results returns a snapshot copy of the full result map.
func (s *Session) Results() map[model.CellKey]model.ExtractionResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[model.CellKey]model.ExtractionResult, len(s.results))
	for k, v := range s.results {
		out[k] = v
	}
	return out
}

// --- Selection ---

// SelectCell sets (or clears, with nil) the detail-view selection.
func (s *Session) SelectCell(sel *SelectedCell) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedCell = sel
}

// SelectedCellKey returns the current detail-view selection, if any.
func (s *Session) SelectedCellKey() *SelectedCell {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selectedCell == nil {
		return nil
	}
	sel := *s.selectedCell
	return &sel
}

// ToggleDocumentSelection flips a document in or out of the bulk-run scope.
func (s *Session) ToggleDocumentSelection(documentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selectedDocuments[documentID] {
		delete(s.selectedDocuments, documentID)
	} else {
		s.selectedDocuments[documentID] = true
	}
}

// ClearDocumentSelection empties the bulk-run scope, meaning "all documents".
func (s *Session) ClearDocumentSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedDocuments = make(map[string]bool)
}

// SelectedDocuments returns the documents in scope for bulk runs and chat:
// the selected subset, or every document when nothing is selected.
func (s *Session) SelectedDocuments() []model.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.selectedDocuments) == 0 {
		out := make([]model.Document, len(s.documents))
		copy(out, s.documents)
		return out
	}
	var out []model.Document
	for _, d := range s.documents {
		if s.selectedDocuments[d.ID] {
			out = append(out, d)
		}
	}
	return out
}

// HasDocumentSelection reports whether a subset of documents is selected.
func (s *Session) HasDocumentSelection() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.selectedDocuments) > 0
}

// --- Chat ---

// AddChatMessage appends a chat turn, assigning ID and timestamp.
func (s *Session) AddChatMessage(role model.ChatRole, content string) model.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := model.ChatMessage{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
	s.chatHistory = append(s.chatHistory, msg)
	return msg
}

// ChatHistory returns a copy of the conversation.
func (s *Session) ChatHistory() []model.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.ChatMessage, len(s.chatHistory))
	copy(out, s.chatHistory)
	return out
}

// ClearChat drops the conversation.
func (s *Session) ClearChat() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chatHistory = nil
}

// ClearProject resets everything except the project name.
func (s *Session) ClearProject() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents = nil
	s.columns = nil
	s.results = make(map[model.CellKey]model.ExtractionResult)
	s.chatHistory = nil
	s.selectedCell = nil
	s.selectedDocuments = make(map[string]bool)
}
