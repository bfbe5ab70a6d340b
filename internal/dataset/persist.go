package dataset

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// SaveResult is the outcome of Save.
type SaveResult int

const (
	// SaveNoOp means there was nothing to save.
	SaveNoOp SaveResult = iota
	Saved
	// SaveDeclined means the user refused to overwrite existing edits.
	SaveDeclined
)

func (r SaveResult) String() string {
	switch r {
	case SaveNoOp:
		return "no changes"
	case Saved:
		return "saved"
	case SaveDeclined:
		return "declined"
	}
	return fmt.Sprintf("SaveResult(%d)", int(r))
}

// ExportResult is the outcome of ExportCSV.
type ExportResult int

const (
	Exported ExportResult = iota
	ExportDeclined
)

func (r ExportResult) String() string {
	switch r {
	case Exported:
		return "exported"
	case ExportDeclined:
		return "declined"
	}
	return fmt.Sprintf("ExportResult(%d)", int(r))
}

// savedRecord is one element of metadata.edited.json.
type savedRecord struct {
	Index         int    `json:"index"`
	Filename      string `json:"filename"`
	Transcript    string `json:"transcript"`
	PendingReview bool   `json:"pending_review"`
	Deleted       bool   `json:"deleted"`
}

// EditedPath is where Save writes.
func (s *Session) EditedPath() string { return s.fsys.Join(s.dir, EditedFile) }

// ExportPath is where ExportCSV writes.
func (s *Session) ExportPath() string { return s.fsys.Join(s.dir, ExportFile) }

// SavePrompts lists the prompts Save will raise.
func (s *Session) SavePrompts() []Prompt {
	if s.saveConflicts() {
		return []Prompt{PromptOverwriteEdits}
	}
	return nil
}

// ExportPrompts lists the prompts ExportCSV will raise, including those of
// the implicit save.
func (s *Session) ExportPrompts() []Prompt {
	prompts := s.SavePrompts()
	if s.hasPendingReview() {
		prompts = append(prompts, PromptExportPendingReview)
	}
	return prompts
}

func (s *Session) saveConflicts() bool {
	return s.IsDirty() && s.format == FormatCSV && !s.wroteEdits &&
		s.fsys.FileExists(s.EditedPath())
}

// Save writes every entry, deleted ones included, to metadata.edited.json
// and records the focused index in the history sidecar. A CSV-rooted
// session that would replace an edited file it did not write asks
// PromptOverwriteEdits first.
func (s *Session) Save(decide Decider) (SaveResult, error) {
	if !s.IsDirty() {
		return SaveNoOp, nil
	}
	if s.saveConflicts() && !decide.ask(PromptOverwriteEdits) {
		return SaveDeclined, nil
	}

	data, err := s.encodeJSON()
	if err != nil {
		return SaveNoOp, err
	}
	if err := s.fsys.WriteFile(s.EditedPath(), data); err != nil {
		return SaveNoOp, fmt.Errorf("save %s: %w", EditedFile, err)
	}

	s.edits = 0
	s.wroteEdits = true
	for _, e := range s.entries {
		e.original = e.transcript
	}
	writeHistory(s.fsys, s.dir, s.lastFocused)
	return Saved, nil
}

func (s *Session) encodeJSON() ([]byte, error) {
	records := make([]savedRecord, 0, len(s.entries))
	for _, e := range s.entries {
		records = append(records, savedRecord{
			Index:         e.index,
			Filename:      e.stem,
			Transcript:    e.transcript,
			PendingReview: e.pendingReview,
			Deleted:       e.deleted,
		})
	}
	slices.SortStableFunc(records, func(a, b savedRecord) int { return a.Index - b.Index })

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("encode %s: %w", EditedFile, err)
	}
	return buf.Bytes(), nil
}

// ExportCSV saves, then writes the surviving entries to
// metadata.edited.csv as stem||transcript rows. A declined or empty save
// does not stop the export. Pending-review entries among the survivors
// raise PromptExportPendingReview; no leaves any previous export alone.
func (s *Session) ExportCSV(decide Decider) (ExportResult, error) {
	if _, err := s.Save(decide); err != nil {
		return ExportDeclined, err
	}
	if s.hasPendingReview() && !decide.ask(PromptExportPendingReview) {
		return ExportDeclined, nil
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = '|'
	for _, e := range s.entries {
		if e.deleted {
			continue
		}
		// The empty middle column is the speaker id the training
		// pipeline expects.
		if err := w.Write([]string{e.stem, "", strings.TrimSpace(e.transcript)}); err != nil {
			return ExportDeclined, fmt.Errorf("encode %s: %w", ExportFile, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return ExportDeclined, fmt.Errorf("encode %s: %w", ExportFile, err)
	}

	if err := s.fsys.WriteFile(s.ExportPath(), buf.Bytes()); err != nil {
		return ExportDeclined, fmt.Errorf("export %s: %w", ExportFile, err)
	}
	return Exported, nil
}

func (s *Session) hasPendingReview() bool {
	for _, e := range s.entries {
		if e.pendingReview && !e.deleted {
			return true
		}
	}
	return false
}
