package match

import (
	"testing"

	"github.com/wzhuo/factgate/internal/model"
)

func events(ids ...string) []model.Event {
	evs := make([]model.Event, len(ids))
	for i, id := range ids {
		evs[i] = model.Event{ID: id, Title: "event " + id}
	}
	return evs
}

func TestMatchDrafts_ByIdentifier(t *testing.T) {
	drafts := []model.DraftReport{
		{EventID: "evt_b", Title: "draft b"},
		{EventID: "evt_a", Title: "draft a"},
	}

	result := MatchDrafts(drafts, events("evt_a", "evt_b"))

	if len(result.Pairs) != 2 || len(result.Unmatched) != 0 {
		t.Fatalf("pairs=%d unmatched=%d, want 2/0", len(result.Pairs), len(result.Unmatched))
	}
	if result.Pairs[0].Event.ID != "evt_b" || result.Pairs[0].Positional {
		t.Errorf("pair 0 = %+v, want evt_b by identifier", result.Pairs[0])
	}
	if result.Pairs[1].Event.ID != "evt_a" {
		t.Errorf("pair 1 matched %q, want evt_a", result.Pairs[1].Event.ID)
	}
}

func TestMatchDrafts_PositionalFallback(t *testing.T) {
	drafts := []model.DraftReport{
		{EventID: "evt_a"},
		{EventID: ""},
		{EventID: ""},
	}

	result := MatchDrafts(drafts, events("evt_a", "evt_b", "evt_c"))

	if len(result.Pairs) != 3 {
		t.Fatalf("expected 3 pairs, got %d", len(result.Pairs))
	}
	if result.Pairs[2].Event.ID != "evt_c" || !result.Pairs[2].Positional {
		t.Errorf("draft 2 = %+v, want positional match to evt_c", result.Pairs[2])
	}
}

func TestMatchDrafts_StaleIdentifierFallsBack(t *testing.T) {
	drafts := []model.DraftReport{
		{EventID: "evt_gone"},
	}

	result := MatchDrafts(drafts, events("evt_a"))

	if len(result.Pairs) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(result.Pairs))
	}
	if result.Pairs[0].Event.ID != "evt_a" || !result.Pairs[0].Positional {
		t.Errorf("stale id should fall back positionally, got %+v", result.Pairs[0])
	}
}

func TestMatchDrafts_OutOfRangeIsUnmatched(t *testing.T) {
	drafts := []model.DraftReport{
		{EventID: ""},
		{EventID: ""},
		{EventID: "", Title: "orphan"},
	}

	result := MatchDrafts(drafts, events("evt_a", "evt_b"))

	if len(result.Pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(result.Pairs))
	}
	if len(result.Unmatched) != 1 {
		t.Fatalf("expected 1 unmatched draft, got %d", len(result.Unmatched))
	}
	um := result.Unmatched[0]
	if um.Index != 2 || um.Title != "orphan" || um.Reason == "" {
		t.Errorf("unmatched = %+v, want index 2 with a reason", um)
	}
}
