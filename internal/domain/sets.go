package domain

import (
	"sort"
	"strings"
)

// StringSet is an unordered collection of unique strings.
type StringSet map[string]struct{}

// NewStringSet creates a set containing the given values.
func NewStringSet(values ...string) StringSet {
	s := make(StringSet, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Add inserts a value into the set.
func (s StringSet) Add(value string) {
	s[value] = struct{}{}
}

// Contains reports whether value is a member of the set.
func (s StringSet) Contains(value string) bool {
	_, ok := s[value]
	return ok
}

// Len returns the number of members.
func (s StringSet) Len() int { return len(s) }

// Sorted returns the members as a sorted slice.
// Always returns a non-nil slice so callers can iterate without a presence check.
func (s StringSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// FoldedSet is a case-insensitive string set. Membership ignores letter
// case; the first-seen spelling of each member is preserved for display.
type FoldedSet map[string]string

// NewFoldedSet creates a case-insensitive set containing the given values.
// Values differing only in case collapse to a single member.
func NewFoldedSet(values ...string) FoldedSet {
	s := make(FoldedSet, len(values))
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// Add inserts a value. If a case-variant is already present, the set is
// unchanged and the first-seen spelling wins.
func (s FoldedSet) Add(value string) {
	key := strings.ToLower(value)
	if _, ok := s[key]; !ok {
		s[key] = value
	}
}

// Contains reports membership ignoring case.
func (s FoldedSet) Contains(value string) bool {
	_, ok := s[strings.ToLower(value)]
	return ok
}

// Len returns the number of members.
func (s FoldedSet) Len() int { return len(s) }

// Sorted returns the preserved spellings as a sorted slice.
// Always returns a non-nil slice.
func (s FoldedSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for _, v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
