package dataset

import (
	"path/filepath"
	"time"
)

// DefaultRegexTimeout bounds a single regex match during search.
const DefaultRegexTimeout = 2 * time.Second

// Session is one open dataset directory. It is owned by a single goroutine
// (the UI event loop); none of its methods are safe for concurrent use.
type Session struct {
	fsys    FS
	dir     string
	format  Format
	entries []*Entry
	byIndex map[int]*Entry

	// edits counts mutations since the last successful save.
	edits       int
	lastFocused int

	// wroteEdits is set once this session has written EditedFile, after
	// which later saves no longer conflict with an older file.
	wroteEdits bool

	filter       Filter
	view         []*Entry
	query        string
	regex        bool
	regexTimeout time.Duration
}

func newSession(fsys FS, dir string, format Format, entries []*Entry) *Session {
	byIndex := make(map[int]*Entry, len(entries))
	for _, e := range entries {
		byIndex[e.index] = e
	}
	return &Session{
		fsys:         fsys,
		dir:          dir,
		format:       format,
		entries:      entries,
		byIndex:      byIndex,
		regexTimeout: DefaultRegexTimeout,
	}
}

// Dir is the dataset directory.
func (s *Session) Dir() string { return s.dir }

// Name is the base name of the dataset directory.
func (s *Session) Name() string { return filepath.Base(s.dir) }

// Format is the format the entries were loaded from.
func (s *Session) Format() Format { return s.format }

// Entries returns every entry, deleted ones included, in index order. The
// slice is a copy; the entries are shared.
func (s *Session) Entries() []*Entry {
	return append([]*Entry(nil), s.entries...)
}

// Entry returns the entry with the given index.
func (s *Session) Entry(index int) (*Entry, bool) {
	e, ok := s.byIndex[index]
	return e, ok
}

// IsDirty reports whether anything changed since the last save.
func (s *Session) IsDirty() bool { return s.edits > 0 }

// LastFocused is the index of the last focused entry, seeded from the
// history sidecar at load time.
func (s *Session) LastFocused() int { return s.lastFocused }

// SetFocus records the focused entry's index.
func (s *Session) SetFocus(index int) { s.lastFocused = index }

// SetRegexTimeout changes the per-match timeout used by regex search.
func (s *Session) SetRegexTimeout(d time.Duration) {
	if d > 0 {
		s.regexTimeout = d
	}
}

// EditTranscript replaces e's transcript. It returns false, leaving the
// session clean, when text equals the current transcript or e is not part
// of this session.
func (s *Session) EditTranscript(e *Entry, text string) bool {
	if !s.owns(e) || e.transcript == text {
		return false
	}
	e.transcript = text
	s.edits++
	return true
}

// TogglePendingReview flips e's review flag.
func (s *Session) TogglePendingReview(e *Entry) {
	if !s.owns(e) {
		return
	}
	e.pendingReview = !e.pendingReview
	s.edits++
}

// ToggleDeleted flips e's deleted flag. The entry stays in the session;
// only the CSV export leaves it out.
func (s *Session) ToggleDeleted(e *Entry) {
	if !s.owns(e) {
		return
	}
	e.deleted = !e.deleted
	s.edits++
}

// Stats counts entries by state.
func (s *Session) Stats() Stats {
	st := Stats{Total: len(s.entries)}
	for _, e := range s.entries {
		if e.pendingReview {
			st.PendingReview++
		}
		if e.deleted {
			st.Deleted++
		}
		if e.Modified() {
			st.Modified++
		}
	}
	return st
}

// Close asks PromptSaveBeforeClose when there are unsaved edits and saves
// on yes. The session must not be used afterwards.
func (s *Session) Close(decide Decider) error {
	if !s.IsDirty() || !decide.ask(PromptSaveBeforeClose) {
		return nil
	}
	_, err := s.Save(decide)
	return err
}

// ClosePrompts lists the prompts Close may raise.
func (s *Session) ClosePrompts() []Prompt {
	if !s.IsDirty() {
		return nil
	}
	return append([]Prompt{PromptSaveBeforeClose}, s.SavePrompts()...)
}

func (s *Session) owns(e *Entry) bool {
	return e != nil && s.byIndex[e.index] == e
}
