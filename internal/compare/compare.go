// Package compare measures how close two transcripts are and finds
// near-duplicate utterances in a dataset.
package compare

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Arabic harakat, U+064B through U+0652.
const (
	diacriticFirst = '\u064B'
	diacriticLast  = '\u0652'
)

// StripDiacritics removes Arabic short-vowel marks.
func StripDiacritics(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= diacriticFirst && r <= diacriticLast {
			return -1
		}
		return r
	}, s)
}

// Normalize prepares a transcript for fuzzy comparison: diacritics are
// removed, letters lowercased, anything that is not a letter or digit
// becomes a space, and runs of spaces collapse.
func Normalize(s string) string {
	s = StripDiacritics(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// Ratio scores a and b from 0 to 100 as 2*M/T, where M is the number of
// runes in common diff segments and T the total rune count.
func Ratio(a, b string) int {
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if total == 0 {
		return 100
	}
	dmp := diffmatchpatch.New()
	matched := 0
	for _, d := range dmp.DiffMain(a, b, false) {
		if d.Type == diffmatchpatch.DiffEqual {
			matched += utf8.RuneCountInString(d.Text)
		}
	}
	return int(math.Round(200 * float64(matched) / float64(total)))
}

// ratioBound is the best Ratio two strings of these rune lengths can reach.
func ratioBound(la, lb int) int {
	if la+lb == 0 {
		return 100
	}
	return int(math.Round(200 * float64(min(la, lb)) / float64(la+lb)))
}

// Op is the kind of a change span.
type Op int

const (
	Equal Op = iota
	Insert
	Delete
)

// Span is a run of text that is unchanged, added or removed.
type Span struct {
	Op   Op
	Text string
}

// Changes returns the spans that turn before into after, cleaned up for
// human reading.
func Changes(before, after string) []Span {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(before, after, false))

	spans := make([]Span, 0, len(diffs))
	for _, d := range diffs {
		var op Op
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			op = Insert
		case diffmatchpatch.DiffDelete:
			op = Delete
		default:
			op = Equal
		}
		spans = append(spans, Span{Op: op, Text: d.Text})
	}
	return spans
}
