// Package search provides fuzzy matching over the cached game library.
package search

import (
	"sort"
	"strings"

	"github.com/dmaher/steamswap/internal/domain"
	"github.com/lithammer/fuzzysearch/fuzzy"
	sahilm "github.com/sahilm/fuzzy"
)

// Index is a snapshot of the library prepared for fuzzy matching.
// It implements sahilm/fuzzy.Source for zero-allocation filtering.
type Index struct {
	games      []domain.Game
	lowerNames []string // Pre-computed lowercase names
}

// NewIndex builds a search index over the given games.
func NewIndex(games []domain.Game) *Index {
	lower := make([]string, len(games))
	for i, g := range games {
		lower[i] = strings.ToLower(g.Name)
	}
	return &Index{games: games, lowerNames: lower}
}

// String returns the lowercase name at index i (implements fuzzy.Source)
func (idx *Index) String(i int) string { return idx.lowerNames[i] }

// Len returns the number of indexed games (implements fuzzy.Source)
func (idx *Index) Len() int { return len(idx.games) }

// Search returns games whose names fuzzily match the query, best first.
func (idx *Index) Search(query string) []domain.Game {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	matches := fuzzy.RankFindFold(query, idx.lowerNames)

	// Sort by distance (lower is better)
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})

	results := make([]domain.Game, 0, len(matches))
	for _, m := range matches {
		results = append(results, idx.games[m.OriginalIndex])
	}
	return results
}

// Match is a filter result with match metadata for highlighting.
type Match struct {
	Game           domain.Game
	MatchedIndexes []int // Character positions that matched
	Score          int   // Match score (higher is better)
}

// Filter returns subsequence matches with matched character positions,
// best first. Unlike Search, the query characters may be scattered
// through the name ("tf" matches "Team Fortress 2").
func (idx *Index) Filter(query string) []Match {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	found := sahilm.FindFrom(query, idx)

	results := make([]Match, 0, len(found))
	for _, m := range found {
		results = append(results, Match{
			Game:           idx.games[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		})
	}
	return results
}
