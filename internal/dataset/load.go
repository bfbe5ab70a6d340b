package dataset

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"slices"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Load opens the dataset in dir. When both metadata.csv and
// metadata.edited.json exist, decide is asked PromptResumeEdits; yes loads
// the JSON. A directory with only the JSON loads it without asking.
func Load(fsys FS, dir string, decide Decider) (*Session, error) {
	if !fsys.DirExists(dir) {
		return nil, &LoadError{Kind: ErrNotFound, Path: dir}
	}

	csvPath := fsys.Join(dir, MetadataFile)
	jsonPath := fsys.Join(dir, EditedFile)
	hasCSV := fsys.FileExists(csvPath)
	hasJSON := fsys.FileExists(jsonPath)

	var (
		entries []*Entry
		format  Format
		err     error
	)
	switch {
	case hasJSON && (!hasCSV || decide.ask(PromptResumeEdits)):
		format = FormatJSON
		entries, err = loadJSON(fsys, dir, jsonPath)
	case hasCSV:
		format = FormatCSV
		entries, err = loadCSV(fsys, dir, csvPath)
	default:
		return nil, &LoadError{Kind: ErrNotFound, Path: dir}
	}
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(entries, func(a, b *Entry) int { return a.index - b.index })

	s := newSession(fsys, dir, format, entries)
	s.lastFocused = readHistory(fsys, dir)
	return s, nil
}

// ResumePrompts lists the prompts Load will raise for dir.
func ResumePrompts(fsys FS, dir string) []Prompt {
	if fsys.FileExists(fsys.Join(dir, MetadataFile)) && fsys.FileExists(fsys.Join(dir, EditedFile)) {
		return []Prompt{PromptResumeEdits}
	}
	return nil
}

// loadCSV parses pipe-delimited rows: column 0 is the audio stem, the last
// column is the transcript. Each row's index is its 0-based row position;
// blank rows produce no entry but still take a position.
func loadCSV(fsys FS, dir, path string) ([]*Entry, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Kind: ErrUnreadable, Path: path, Err: err}
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = '|'
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var entries []*Entry
	idx := -1
	prevEnd := 0
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, malformed(path, "parse row: %w", err)
		}

		// csv.Reader drops blank lines; recover them from line positions.
		start, _ := r.FieldPos(0)
		last := len(rec) - 1
		lastLine, _ := r.FieldPos(last)
		idx += start - prevEnd
		prevEnd = lastLine + strings.Count(rec[last], "\n")

		if blankRecord(rec) {
			continue
		}
		stem := strings.TrimSpace(rec[0])
		if stem == "" {
			return nil, malformed(path, "line %d: empty audio file name", start)
		}
		entries = append(entries, newEntry(fsys, dir, idx, stem, rec[last]))
	}
	return entries, nil
}

// blankRecord reports whether every field of rec is whitespace. Such rows
// keep their index slot like empty lines do.
func blankRecord(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// jsonRecord accepts the index/transcript keys written by Save and the
// older idx/text spelling.
type jsonRecord struct {
	Index         *int    `json:"index"`
	Idx           *int    `json:"idx"`
	Filename      *string `json:"filename"`
	Transcript    *string `json:"transcript"`
	Text          *string `json:"text"`
	PendingReview bool    `json:"pending_review"`
	Deleted       bool    `json:"deleted"`
}

func loadJSON(fsys FS, dir, path string) ([]*Entry, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Kind: ErrUnreadable, Path: path, Err: err}
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	var records []jsonRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, malformed(path, "decode: %w", err)
	}

	seen := make(map[int]bool, len(records))
	entries := make([]*Entry, 0, len(records))
	for i, rec := range records {
		idx := rec.Index
		if idx == nil {
			idx = rec.Idx
		}
		text := rec.Transcript
		if text == nil {
			text = rec.Text
		}
		switch {
		case idx == nil:
			return nil, malformed(path, "record %d: missing index", i)
		case rec.Filename == nil || *rec.Filename == "":
			return nil, malformed(path, "record %d: missing filename", i)
		case text == nil:
			return nil, malformed(path, "record %d: missing transcript", i)
		case seen[*idx]:
			return nil, malformed(path, "record %d: duplicate index %d", i, *idx)
		}
		seen[*idx] = true

		e := newEntry(fsys, dir, *idx, *rec.Filename, *text)
		e.pendingReview = rec.PendingReview
		e.deleted = rec.Deleted
		entries = append(entries, e)
	}
	return entries, nil
}

func newEntry(fsys FS, dir string, idx int, stem, transcript string) *Entry {
	return &Entry{
		index:      idx,
		stem:       stem,
		audioPath:  fsys.Join(dir, WavsDir, stem+".wav"),
		transcript: transcript,
		original:   transcript,
	}
}
