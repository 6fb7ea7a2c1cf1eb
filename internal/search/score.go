// Package search implements the global search core: lexical relevance
// scoring, excerpt generation and the fan-out/merge aggregation pipeline.
package search

import (
	"strings"
	"time"

	"github.com/dayhub/dayhub-server/internal/model"
)

// Score tier values. The three string tiers are mutually exclusive per
// field (only the highest applicable tier fires); array-element bonuses
// accumulate across elements.
const (
	scoreExactField  = 10
	scorePrefixField = 7
	scoreSubstring   = 5
	scoreWholeWord   = 3
	scoreExactElem   = 8
	scoreSubstrElem  = 4
	scoreRecentDay   = 2
	scoreRecentWeek  = 1
	scoreImportant   = 2
)

// Field is one searchable field of a record: either a plain string value
// or a list of strings (tags, recipients). Empty values contribute zero.
type Field struct {
	Name string
	Text string
	List []string
}

// Doc is the scoring projection of a record. Timestamps are checked in
// order CreatedAt, ReceivedAt, StartTime for the recency bonus; the first
// present wins.
type Doc struct {
	ID         string
	Kind       model.Kind
	Fields     []Field
	CreatedAt  *time.Time
	ReceivedAt *time.Time
	StartTime  *time.Time
	Important  bool
	Priority   string
	Content    string
	Record     interface{}
}

// Score computes the relevance of doc against query. Scores are unbounded
// and only comparable within a single query's candidate set. The function
// is pure: no shared state, query is only lowercased for comparison.
func Score(query string, doc Doc, now time.Time) float64 {
	q := strings.ToLower(query)
	var total float64

	for _, f := range doc.Fields {
		if f.Text != "" {
			lower := strings.ToLower(f.Text)
			switch {
			case lower == q:
				total += scoreExactField
			case strings.HasPrefix(lower, q):
				total += scorePrefixField
			case strings.Contains(lower, q):
				total += scoreSubstring
			}
			// Whole-word bonus stacks with the tier above.
			for _, w := range strings.Fields(lower) {
				if w == q {
					total += scoreWholeWord
					break
				}
			}
		}
		for _, elem := range f.List {
			lower := strings.ToLower(elem)
			if lower == q {
				total += scoreExactElem
			} else if strings.Contains(lower, q) {
				total += scoreSubstrElem
			}
		}
	}

	if ts := doc.primaryTimestamp(); ts != nil {
		age := now.Sub(*ts)
		if age < 24*time.Hour {
			total += scoreRecentDay
		} else if age < 7*24*time.Hour {
			total += scoreRecentWeek
		}
	}

	if doc.Important || doc.Priority == model.PriorityHigh || doc.Priority == model.PriorityUrgent {
		total += scoreImportant
	}

	return total
}

func (d Doc) primaryTimestamp() *time.Time {
	switch {
	case d.CreatedAt != nil:
		return d.CreatedAt
	case d.ReceivedAt != nil:
		return d.ReceivedAt
	case d.StartTime != nil:
		return d.StartTime
	}
	return nil
}
