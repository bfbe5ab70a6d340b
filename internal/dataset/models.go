// Package dataset holds the edit-session model for a speech-synthesis
// dataset: a list of (audio clip, transcript) pairs loaded from a directory,
// edited in memory and persisted back next to the source metadata.
package dataset

import "fmt"

// File names resolved against the dataset directory.
const (
	MetadataFile = "metadata.csv"
	EditedFile   = "metadata.edited.json"
	ExportFile   = "metadata.edited.csv"
	HistoryFile  = ".last_idx"
	WavsDir      = "wavs"
)

// Format is the metadata format a session was loaded from.
type Format int

const (
	FormatCSV Format = iota
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatJSON:
		return "json"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Entry is one audio clip and its transcript. Fields are read through
// accessors; mutation goes through the owning Session so dirtiness stays
// in sync.
type Entry struct {
	index         int
	stem          string
	audioPath     string
	transcript    string
	original      string
	pendingReview bool
	deleted       bool
}

// Index is the ordinal assigned at load time. It never changes.
func (e *Entry) Index() int { return e.index }

// Stem is the base filename of the audio clip, without extension.
func (e *Entry) Stem() string { return e.stem }

// AudioPath is <dir>/wavs/<stem>.wav.
func (e *Entry) AudioPath() string { return e.audioPath }

func (e *Entry) Transcript() string { return e.transcript }

// Original is the transcript as of the last load or save.
func (e *Entry) Original() string { return e.original }

func (e *Entry) PendingReview() bool { return e.pendingReview }

func (e *Entry) Deleted() bool { return e.deleted }

// Modified reports whether the transcript differs from Original.
func (e *Entry) Modified() bool { return e.transcript != e.original }

// Label renders the entry for a list: 1-based number, stem, and flag
// prefixes.
func (e *Entry) Label() string {
	label := fmt.Sprintf("%d. %s", e.index+1, e.stem)
	if e.pendingReview {
		label = "(review) " + label
	}
	if e.deleted {
		label = "(deleted) " + label
	}
	return label
}

// Stats summarizes a session for status bars and the recent-datasets store.
type Stats struct {
	Total         int
	PendingReview int
	Deleted       int
	Modified      int
}
