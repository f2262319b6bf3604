// Package library owns the refresh workflow: it decides when the cached
// snapshot can be trusted, rescans when it cannot, and derives the
// per-game account availability that is never persisted.
package library

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmaher/steamswap/internal/cache"
	"github.com/dmaher/steamswap/internal/domain"
)

// Store is the slice of cache persistence the refresh workflow needs.
type Store interface {
	GetSnapshot() (cache.GameCache, bool)
	SaveSnapshot(cache.GameCache) error
	GetAccounts() ([]domain.Account, bool)
	SaveAccounts(accounts []domain.Account) error
	InvalidateSnapshot()
}

// Service orchestrates scanner + store operations.
type Service struct {
	scanner domain.LibraryScanner
	store   Store
	logger  *slog.Logger
	now     func() time.Time

	validDuration time.Duration // staleness window, DefaultValidDuration when zero
}

// NewService creates a new library service.
func NewService(scanner domain.LibraryScanner, store Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{scanner: scanner, store: store, logger: logger, now: time.Now}
}

// SetValidDuration overrides the default staleness window. The configured
// window also applies to snapshots persisted before the change.
func (s *Service) SetValidDuration(d time.Duration) {
	s.validDuration = d
}

// effective applies the configured staleness window to a loaded snapshot.
func (s *Service) effective(snap cache.GameCache) cache.GameCache {
	if s.validDuration > 0 {
		snap.ValidDuration = s.validDuration
	}
	return snap
}

// Load returns the live game library. A valid persisted snapshot is served
// as-is; a missing or expired one triggers a full rescan. Either way the
// returned games carry freshly derived AvailableAccounts.
func (s *Service) Load(ctx context.Context) ([]domain.Game, error) {
	snap, ok := s.store.GetSnapshot()
	snap = s.effective(snap)
	if !ok || snap.ExpiredAt(s.now()) {
		s.logger.Debug("snapshot missing or stale, rescanning", "found", ok)
		return s.Rescan(ctx)
	}

	games := snap.Live()
	accounts, err := s.Accounts(ctx)
	if err != nil {
		s.logger.Warn("could not load account roster", "error", err)
		accounts = nil
	}
	AttachAvailableAccounts(games, accounts)

	s.logger.Debug("served library from cache", "games", len(games), "lastUpdated", snap.LastUpdated)
	return games, nil
}

// Rescan performs a full library scan and replaces the persisted snapshot
// wholesale. The previous snapshot is never merged into the new one.
func (s *Service) Rescan(ctx context.Context) ([]domain.Game, error) {
	accounts, err := s.Accounts(ctx)
	if err != nil {
		return nil, err
	}

	scanned, err := s.scanner.Scan(ctx)
	if err != nil {
		s.logger.Error("library scan failed", "error", err)
		return nil, err
	}

	games := MergeOwnership(scanned)

	snap := s.effective(cache.Snapshot(games, s.now()))
	if err := s.store.SaveSnapshot(snap); err != nil {
		s.logger.Error("failed to save snapshot", "error", err)
	}

	AttachAvailableAccounts(games, accounts)
	s.logger.Info("rescanned library", "games", len(games), "accounts", len(accounts))
	return games, nil
}

// Accounts returns the machine's account roster, persisting it for use
// when the scanner is unavailable.
func (s *Service) Accounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.scanner.Accounts(ctx)
	if err != nil {
		if stored, ok := s.store.GetAccounts(); ok {
			s.logger.Debug("using stored account roster", "count", len(stored))
			return stored, nil
		}
		return nil, err
	}
	if err := s.store.SaveAccounts(accounts); err != nil {
		s.logger.Error("failed to save accounts", "error", err)
	}
	return accounts, nil
}

// Status describes the persisted snapshot for display.
type Status struct {
	LastUpdated time.Time
	Games       int
	Expired     bool
}

// Status reports the state of the persisted snapshot without touching the
// scanner.
func (s *Service) Status() Status {
	snap, ok := s.store.GetSnapshot()
	if !ok {
		return Status{Expired: true}
	}
	snap = s.effective(snap)
	return Status{
		LastUpdated: snap.LastUpdated,
		Games:       len(snap.Games),
		Expired:     snap.ExpiredAt(s.now()),
	}
}

// Invalidate discards the persisted snapshot, forcing the next Load to
// rescan.
func (s *Service) Invalidate() {
	s.store.InvalidateSnapshot()
	s.logger.Info("invalidated library snapshot")
}

// MergeOwnership collapses duplicate entries for the same app across
// owning account contexts into a single game whose ownership sets are the
// union of all claims. The first entry for an app supplies the primary
// owner and display metadata; insertion order of first appearance is
// preserved.
func MergeOwnership(games []domain.Game) []domain.Game {
	index := make(map[int]int, len(games))
	merged := make([]domain.Game, 0, len(games))

	for _, g := range games {
		i, seen := index[g.AppID]
		if !seen {
			// Copy the sets so merging never mutates the caller's games.
			g.OwnerSteamIDs = domain.NewStringSet(g.OwnerSteamIDs.Sorted()...)
			g.OwnerAccountNames = domain.NewFoldedSet(g.OwnerAccountNames.Sorted()...)
			index[g.AppID] = len(merged)
			merged = append(merged, g)
			continue
		}

		m := &merged[i]
		for _, id := range g.OwnerSteamIDs.Sorted() {
			m.OwnerSteamIDs.Add(id)
		}
		for _, name := range g.OwnerAccountNames.Sorted() {
			m.OwnerAccountNames.Add(name)
		}
		if g.PlaytimeMinutes > m.PlaytimeMinutes {
			m.PlaytimeMinutes = g.PlaytimeMinutes
		}
		m.IsInstalled = m.IsInstalled || g.IsInstalled
		m.IsPaid = m.IsPaid || g.IsPaid
		if m.Name == "" {
			m.Name = g.Name
		}
		if m.IconURL == "" {
			m.IconURL = g.IconURL
		}
	}
	return merged
}

// AttachAvailableAccounts populates every game's AvailableAccounts with
// the machine accounts that own it. This is the explicit post-load step:
// conversion from the cache always leaves the field empty.
func AttachAvailableAccounts(games []domain.Game, accounts []domain.Account) {
	for i := range games {
		available := []domain.Account{}
		for _, a := range accounts {
			if games[i].OwnedBy(a.SteamID) {
				available = append(available, a)
			}
		}
		games[i].AvailableAccounts = available
	}
}
