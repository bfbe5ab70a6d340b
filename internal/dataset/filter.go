package dataset

import (
	"fmt"
	"log"
	"strings"

	"github.com/dlclark/regexp2"
)

// Filter is the active view filter. At most one is active.
type Filter int

const (
	FilterNone Filter = iota
	FilterPendingReview
	FilterDeleted
	FilterSearch
)

func (f Filter) String() string {
	switch f {
	case FilterNone:
		return "all"
	case FilterPendingReview:
		return "pending review"
	case FilterDeleted:
		return "deleted"
	case FilterSearch:
		return "search"
	}
	return fmt.Sprintf("Filter(%d)", int(f))
}

// SearchOutcome tells a caller why a search did or did not filter the view.
type SearchOutcome int

const (
	SearchMatched SearchOutcome = iota
	// SearchEmptyQuery means no search was attempted.
	SearchEmptyQuery
	// SearchNoMatches means the search ran and found nothing.
	SearchNoMatches
)

func (o SearchOutcome) String() string {
	switch o {
	case SearchMatched:
		return "matched"
	case SearchEmptyQuery:
		return "empty query"
	case SearchNoMatches:
		return "no matches"
	}
	return fmt.Sprintf("SearchOutcome(%d)", int(o))
}

// ActiveFilter returns the current filter mode.
func (s *Session) ActiveFilter() Filter { return s.filter }

// Query returns the search query of an active search filter.
func (s *Session) Query() string {
	if s.filter != FilterSearch {
		return ""
	}
	return s.query
}

// QueryIsRegex reports whether the active search used a regular expression.
func (s *Session) QueryIsRegex() bool { return s.filter == FilterSearch && s.regex }

// View is the filtered projection of the entries, in index order. Without
// a filter it is every entry. A filtered view is computed when the filter
// is activated and keeps its members while they are edited.
func (s *Session) View() []*Entry {
	if s.filter == FilterNone {
		return s.Entries()
	}
	return append([]*Entry(nil), s.view...)
}

// ShowPendingReview turns the pending-review filter on or off. Turning it
// on replaces any other filter.
func (s *Session) ShowPendingReview(on bool) {
	s.setFlagFilter(FilterPendingReview, on, (*Entry).PendingReview)
}

// ShowDeleted turns the deleted filter on or off. Turning it on replaces
// any other filter.
func (s *Session) ShowDeleted(on bool) {
	s.setFlagFilter(FilterDeleted, on, (*Entry).Deleted)
}

func (s *Session) setFlagFilter(f Filter, on bool, keep func(*Entry) bool) {
	if !on {
		if s.filter == f {
			s.ClearFilter()
		}
		return
	}
	s.apply(f, s.collect(keep))
}

// ClearFilter restores the unfiltered view.
func (s *Session) ClearFilter() {
	s.filter = FilterNone
	s.view = nil
	s.query = ""
	s.regex = false
}

// Search filters the view to transcripts containing query, or, with
// useRegex, to transcripts the pattern matches at their start. An empty
// query or a search without matches clears the filter. A pattern that
// does not compile returns ErrInvalidPattern and leaves the current filter
// in place.
func (s *Session) Search(query string, useRegex bool) (SearchOutcome, error) {
	if query == "" {
		s.ClearFilter()
		return SearchEmptyQuery, nil
	}

	var match func(*Entry) bool
	if useRegex {
		re, err := regexp2.Compile(query, regexp2.None)
		if err != nil {
			return SearchEmptyQuery, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
		}
		re.MatchTimeout = s.regexTimeout
		match = func(e *Entry) bool { return matchesAtStart(re, e.transcript) }
	} else {
		match = func(e *Entry) bool { return strings.Contains(e.transcript, query) }
	}

	matches := s.collect(match)
	if len(matches) == 0 {
		s.ClearFilter()
		return SearchNoMatches, nil
	}
	s.apply(FilterSearch, matches)
	s.query = query
	s.regex = useRegex
	return SearchMatched, nil
}

// matchesAtStart reports whether re matches text beginning at its first
// character. The leftmost match starts at 0 exactly when such a match
// exists.
func matchesAtStart(re *regexp2.Regexp, text string) bool {
	m, err := re.FindStringMatch(text)
	if err != nil {
		log.Printf("dataset: regex %q: %v", re.String(), err)
		return false
	}
	return m != nil && m.Index == 0
}

func (s *Session) collect(keep func(*Entry) bool) []*Entry {
	var out []*Entry
	for _, e := range s.entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

func (s *Session) apply(f Filter, view []*Entry) {
	s.filter = f
	s.view = view
	s.query = ""
	s.regex = false
}
