package compare

import (
	"cmp"
	"slices"
	"unicode/utf8"

	"github.com/jwulff/ttsedit/internal/dataset"
)

// Item is one transcript to check for duplicates.
type Item struct {
	Index int
	Text  string
}

// Match is a transcript that scored at or above the cutoff against a
// group's query.
type Match struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
	Score int    `json:"score"`
}

// Group lists the best matches for one transcript. Matches always include
// the query itself with a score of 100.
type Group struct {
	Index   int     `json:"index"`
	Text    string  `json:"text"`
	Matches []Match `json:"matches"`
}

// Duplicates returns, for every item that has at least one other item
// scoring cutoff or more, the best limit matches by score. Texts are
// compared after Normalize. Groups come back in input order.
func Duplicates(items []Item, cutoff, limit int) []Group {
	if limit < 2 {
		limit = 2
	}

	norm := make([]string, len(items))
	lens := make([]int, len(items))
	for i, it := range items {
		norm[i] = Normalize(it.Text)
		lens[i] = utf8.RuneCountInString(norm[i])
	}

	scores := make(map[[2]int]int)
	score := func(i, j int) int {
		if i == j {
			return 100
		}
		key := [2]int{min(i, j), max(i, j)}
		if s, ok := scores[key]; ok {
			return s
		}
		s := 0
		if ratioBound(lens[i], lens[j]) >= cutoff {
			s = Ratio(norm[i], norm[j])
		}
		scores[key] = s
		return s
	}

	var groups []Group
	for i, it := range items {
		var matches []Match
		for j, other := range items {
			if s := score(i, j); s >= cutoff {
				matches = append(matches, Match{Index: other.Index, Text: other.Text, Score: s})
			}
		}
		if len(matches) < 2 {
			continue
		}
		slices.SortStableFunc(matches, func(a, b Match) int {
			if c := cmp.Compare(b.Score, a.Score); c != 0 {
				return c
			}
			return cmp.Compare(a.Index, b.Index)
		})
		if len(matches) > limit {
			matches = matches[:limit]
		}
		groups = append(groups, Group{Index: it.Index, Text: it.Text, Matches: matches})
	}
	return groups
}

// FromEntries converts the entries that survive export into items.
func FromEntries(entries []*dataset.Entry) []Item {
	items := make([]Item, 0, len(entries))
	for _, e := range entries {
		if e.Deleted() {
			continue
		}
		items = append(items, Item{Index: e.Index(), Text: e.Transcript()})
	}
	return items
}
