package search

import (
	"testing"

	"github.com/dmaher/steamswap/internal/domain"
)

func testIndex() *Index {
	return NewIndex([]domain.Game{
		{AppID: 440, Name: "Team Fortress 2"},
		{AppID: 730, Name: "Counter-Strike 2"},
		{AppID: 620, Name: "Portal 2"},
		{AppID: 400, Name: "Portal"},
	})
}

func TestSearch(t *testing.T) {
	idx := testIndex()

	results := idx.Search("portal")
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	// Exact name ranks above the longer one.
	if results[0].AppID != 400 {
		t.Fatalf("best match = %+v, want Portal", results[0])
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	idx := testIndex()

	results := idx.Search("FORTRESS")
	if len(results) != 1 || results[0].AppID != 440 {
		t.Fatalf("results = %+v", results)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	idx := testIndex()

	if results := idx.Search("  "); results != nil {
		t.Fatalf("results = %+v, want nil", results)
	}
}

func TestSearchNoMatch(t *testing.T) {
	idx := testIndex()

	if results := idx.Search("zzzzzz"); len(results) != 0 {
		t.Fatalf("results = %+v, want none", results)
	}
}

func TestFilterScatteredQuery(t *testing.T) {
	idx := testIndex()

	matches := idx.Filter("cs2")
	if len(matches) == 0 {
		t.Fatal("expected at least one match for scattered query")
	}
	if matches[0].Game.AppID != 730 {
		t.Fatalf("best match = %+v, want Counter-Strike 2", matches[0].Game)
	}
	if len(matches[0].MatchedIndexes) != 3 {
		t.Fatalf("matched indexes = %v", matches[0].MatchedIndexes)
	}
}

func TestFilterEmptyIndex(t *testing.T) {
	idx := NewIndex(nil)

	if matches := idx.Filter("portal"); len(matches) != 0 {
		t.Fatalf("matches = %+v, want none", matches)
	}
}
