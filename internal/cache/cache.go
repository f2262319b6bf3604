// Package cache holds the durable snapshot of the game library. CachedGame
// is the serializable projection of domain.Game; GameCache wraps a full
// snapshot with a time-based staleness rule.
package cache

import (
	"time"

	"github.com/dmaher/steamswap/internal/domain"
)

// DefaultValidDuration is how long a library snapshot is trusted before the
// refresh workflow rescans.
const DefaultValidDuration = 7 * time.Hour

// GameCache is a point-in-time snapshot of the union of games owned across
// tracked accounts. Games and LastUpdated are replaced wholesale on every
// refresh, never merged incrementally.
type GameCache struct {
	LastUpdated   time.Time     `json:"lastUpdated"`
	Games         []CachedGame  `json:"games"`
	ValidDuration time.Duration `json:"validDuration"`
}

// New returns an empty cache. LastUpdated is the zero time, so a fresh
// cache always reports expired.
func New() GameCache {
	return GameCache{
		Games:         []CachedGame{},
		ValidDuration: DefaultValidDuration,
	}
}

// IsExpired reports whether the snapshot should no longer be trusted.
func (c GameCache) IsExpired() bool {
	return c.ExpiredAt(time.Now())
}

// ExpiredAt reports expiry relative to the given instant. A zero
// LastUpdated is infinitely stale. The boundary is strict: a snapshot
// exactly ValidDuration old is still valid.
func (c GameCache) ExpiredAt(now time.Time) bool {
	if c.LastUpdated.IsZero() {
		return true
	}
	return now.Sub(c.LastUpdated) > c.validFor()
}

// validFor returns the configured staleness window, falling back to the
// default when the field was absent in a persisted cache.
func (c GameCache) validFor() time.Duration {
	if c.ValidDuration <= 0 {
		return DefaultValidDuration
	}
	return c.ValidDuration
}

// CachedGame is the durable form of a single library entry. JSON field
// names are fixed for compatibility with previously persisted caches.
type CachedGame struct {
	AppID           int    `json:"appId"`
	Name            string `json:"name"`
	IconURL         string `json:"iconUrl"`
	PlaytimeMinutes int    `json:"playtimeMinutes"`

	OwnerSteamID     string `json:"ownerSteamId"`
	OwnerAccountName string `json:"ownerAccountName"`
	OwnerPersonaName string `json:"ownerPersonaName"`

	IsPaid      bool `json:"isPaid"`
	IsInstalled bool `json:"isInstalled"`

	LastUpdated time.Time `json:"lastUpdated"`

	// Ownership aggregated across all linked accounts. Serialized as
	// sequences of strings, empty rather than absent when no data.
	OwnerSteamIDsAll     []string `json:"ownerSteamIdsAll"`
	OwnerAccountNamesAll []string `json:"ownerAccountNamesAll"`
}

// FromGame converts a live Game into its durable form. Ownership sets are
// materialized as sorted sequences; uninitialized sets become empty
// sequences, never nil. AvailableAccounts is deliberately dropped.
func FromGame(g domain.Game) CachedGame {
	return CachedGame{
		AppID:                g.AppID,
		Name:                 g.Name,
		IconURL:              g.IconURL,
		PlaytimeMinutes:      g.PlaytimeMinutes,
		OwnerSteamID:         g.OwnerSteamID,
		OwnerAccountName:     g.OwnerAccountName,
		OwnerPersonaName:     g.OwnerPersonaName,
		IsPaid:               g.IsPaid,
		IsInstalled:          g.IsInstalled,
		LastUpdated:          g.LastUpdated,
		OwnerSteamIDsAll:     g.OwnerSteamIDs.Sorted(),
		OwnerAccountNamesAll: g.OwnerAccountNames.Sorted(),
	}
}

// Game reconstructs the live form. Duplicates in the stored sequences
// collapse; account names collapse case-insensitively. AvailableAccounts
// starts empty and must be repopulated by the refresh workflow.
func (c CachedGame) Game() domain.Game {
	return domain.Game{
		AppID:             c.AppID,
		Name:              c.Name,
		IconURL:           c.IconURL,
		PlaytimeMinutes:   c.PlaytimeMinutes,
		OwnerSteamID:      c.OwnerSteamID,
		OwnerAccountName:  c.OwnerAccountName,
		OwnerPersonaName:  c.OwnerPersonaName,
		IsPaid:            c.IsPaid,
		IsInstalled:       c.IsInstalled,
		LastUpdated:       c.LastUpdated,
		OwnerSteamIDs:     domain.NewStringSet(c.OwnerSteamIDsAll...),
		OwnerAccountNames: domain.NewFoldedSet(c.OwnerAccountNamesAll...),
		AvailableAccounts: []domain.Account{},
	}
}

// Snapshot builds a fresh cache from live games, stamped at now. The
// insertion order of games is preserved.
func Snapshot(games []domain.Game, now time.Time) GameCache {
	entries := make([]CachedGame, 0, len(games))
	for _, g := range games {
		entries = append(entries, FromGame(g))
	}
	return GameCache{
		LastUpdated:   now,
		Games:         entries,
		ValidDuration: DefaultValidDuration,
	}
}

// Live reconstructs the live form of every entry, preserving order.
func (c GameCache) Live() []domain.Game {
	games := make([]domain.Game, 0, len(c.Games))
	for _, e := range c.Games {
		games = append(games, e.Game())
	}
	return games
}
