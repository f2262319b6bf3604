package domain

import (
	"reflect"
	"testing"
)

func TestStringSet(t *testing.T) {
	s := NewStringSet("b", "a", "b")

	if s.Len() != 2 {
		t.Fatalf("len = %d, want 2", s.Len())
	}
	if !s.Contains("a") || !s.Contains("b") {
		t.Fatal("expected members missing")
	}
	if s.Contains("c") {
		t.Fatal("unexpected member")
	}

	s.Add("c")
	if got, want := s.Sorted(), []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("sorted = %v, want %v", got, want)
	}
}

func TestStringSetNilSorted(t *testing.T) {
	var s StringSet
	if got := s.Sorted(); got == nil || len(got) != 0 {
		t.Fatalf("nil set should enumerate as empty slice, got %v", got)
	}
}

func TestFoldedSet(t *testing.T) {
	s := NewFoldedSet("Alice", "ALICE", "bob")

	if s.Len() != 2 {
		t.Fatalf("len = %d, want 2", s.Len())
	}

	for _, probe := range []string{"alice", "Alice", "ALICE", "aLiCe"} {
		if !s.Contains(probe) {
			t.Fatalf("membership for %q should ignore case", probe)
		}
	}

	// First-seen spelling is preserved for enumeration.
	if got, want := s.Sorted(), []string{"Alice", "bob"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("sorted = %v, want %v", got, want)
	}
}

func TestFoldedSetAddKeepsFirstSpelling(t *testing.T) {
	s := NewFoldedSet()
	s.Add("CamelCase")
	s.Add("camelcase")

	if got := s.Sorted(); len(got) != 1 || got[0] != "CamelCase" {
		t.Fatalf("sorted = %v, want [CamelCase]", got)
	}
}

func TestAccountSameAccount(t *testing.T) {
	a := Account{AccountName: "Alice", PersonaName: "Wonderland"}

	if !a.SameAccount("ALICE") {
		t.Fatal("account names should compare case-insensitively")
	}
	if a.SameAccount("bob") {
		t.Fatal("different names should not match")
	}
	if a.DisplayName() != "Wonderland" {
		t.Fatalf("display name = %q", a.DisplayName())
	}
}

func TestGameOwnedBy(t *testing.T) {
	g := Game{OwnerSteamIDs: NewStringSet("76561198000000001")}

	if !g.OwnedBy("76561198000000001") {
		t.Fatal("expected owner")
	}
	if g.OwnedBy("76561198000000002") {
		t.Fatal("unexpected owner")
	}
}

func TestFormattedPlaytime(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "never played"},
		{45, "45m"},
		{60, "1h 0m"},
		{5231, "87h 11m"},
	}

	for _, tt := range tests {
		g := Game{PlaytimeMinutes: tt.minutes}
		if got := g.FormattedPlaytime(); got != tt.want {
			t.Fatalf("FormattedPlaytime(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}
