// Package match resolves which evidence event supplied each draft report.
// Upstream generation emits drafts in the same relative order as events,
// so a positional fallback preserves audit coverage when identifiers are
// missing or stale.
package match

import (
	"fmt"

	"github.com/wzhuo/factgate/internal/model"
)

// Pair couples a draft with its resolved evidence event
type Pair struct {
	Draft model.DraftReport
	Event model.Event

	// Index is the draft's position in the input list
	Index int

	// Positional marks that the identifier was missing or stale and the
	// event was resolved by position instead
	Positional bool
}

// Unmatched records a draft that could not be paired with any event.
// The caller reports these; they never vanish silently.
type Unmatched struct {
	Index  int
	Title  string
	Reason string
}

// Result is the outcome of pairing one batch of drafts with events
type Result struct {
	Pairs     []Pair
	Unmatched []Unmatched
}

// MatchDrafts pairs every draft with an event. Order of attempts:
// identifier lookup, then positional fallback, then exclusion with a
// reported reason.
func MatchDrafts(drafts []model.DraftReport, events []model.Event) *Result {
	byID := make(map[string]int, len(events))
	for i, ev := range events {
		if ev.ID != "" {
			byID[ev.ID] = i
		}
	}

	result := &Result{}
	for i, draft := range drafts {
		if draft.EventID != "" {
			if j, ok := byID[draft.EventID]; ok {
				result.Pairs = append(result.Pairs, Pair{
					Draft: draft,
					Event: events[j],
					Index: i,
				})
				continue
			}
		}

		if i < len(events) {
			result.Pairs = append(result.Pairs, Pair{
				Draft:      draft,
				Event:      events[i],
				Index:      i,
				Positional: true,
			})
			continue
		}

		result.Unmatched = append(result.Unmatched, Unmatched{
			Index:  i,
			Title:  draft.Title,
			Reason: fmt.Sprintf("event id %q not found and position %d is out of range of %d events", draft.EventID, i, len(events)),
		})
	}

	return result
}
