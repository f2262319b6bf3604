// Package steam reads the local Steam installation: the account roster from
// loginusers.vdf and installed games from library folder app manifests.
// These files are Steam's own on-disk state; no network access is involved.
package steam

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dmaher/steamswap/internal/domain"
)

// Scanner implements domain.LibraryScanner against a Steam installation root.
type Scanner struct {
	root   string
	logger *slog.Logger
}

// NewScanner creates a scanner rooted at the given Steam installation.
func NewScanner(root string, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{root: root, logger: logger}
}

// Accounts returns all Steam accounts that have logged in on this machine.
func (s *Scanner) Accounts(ctx context.Context) ([]domain.Account, error) {
	path := filepath.Join(s.root, "config", "loginusers.vdf")
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNoAccounts
		}
		return nil, fmt.Errorf("failed to open loginusers: %w", err)
	}
	defer f.Close()

	accounts, err := ParseLoginUsers(f)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("read account roster", "count", len(accounts))
	return accounts, nil
}

// Scan walks every library folder and returns one live Game per installed
// app, attributed to the account the app was last installed for. Games are
// returned in appId order within each folder; the refresh workflow merges
// entries for the same app across folders and accounts.
func (s *Scanner) Scan(ctx context.Context) ([]domain.Game, error) {
	accounts, err := s.Accounts(ctx)
	if err != nil && !errors.Is(err, domain.ErrNoAccounts) {
		return nil, err
	}
	byID := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		byID[a.SteamID] = a
	}

	folders := s.libraryFolders()
	now := time.Now()

	var games []domain.Game
	for _, folder := range folders {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		apps, err := s.scanFolder(folder, byID, now)
		if err != nil {
			s.logger.Warn("skipping library folder", "folder", folder, "error", err)
			continue
		}
		games = append(games, apps...)
	}

	s.logger.Info("scanned steam libraries", "folders", len(folders), "games", len(games))
	return games, nil
}

// libraryFolders returns the installation root plus any additional library
// folders registered in libraryfolders.vdf.
func (s *Scanner) libraryFolders() []string {
	folders := []string{s.root}

	path := filepath.Join(s.root, "steamapps", "libraryfolders.vdf")
	f, err := os.Open(path)
	if err != nil {
		return folders
	}
	defer f.Close()

	extra, err := ParseLibraryFolders(f)
	if err != nil {
		s.logger.Warn("failed to parse libraryfolders", "error", err)
		return folders
	}

	seen := map[string]bool{filepath.Clean(s.root): true}
	for _, p := range extra {
		clean := filepath.Clean(p)
		if !seen[clean] {
			seen[clean] = true
			folders = append(folders, clean)
		}
	}
	return folders
}

func (s *Scanner) scanFolder(folder string, byID map[string]domain.Account, now time.Time) ([]domain.Game, error) {
	pattern := filepath.Join(folder, "steamapps", "appmanifest_*.acf")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}

	var games []domain.Game
	for _, path := range matches {
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		manifest, err := ParseAppManifest(f)
		f.Close()
		if err != nil {
			s.logger.Warn("skipping unreadable manifest", "path", path, "error", err)
			continue
		}
		games = append(games, s.toGame(manifest, byID, now))
	}
	return games, nil
}

// toGame builds a live Game from an installed-app manifest. Ownership is
// seeded with the last-owner account; merging across accounts happens in
// the refresh workflow.
func (s *Scanner) toGame(m AppManifest, byID map[string]domain.Account, now time.Time) domain.Game {
	g := domain.Game{
		AppID:             m.AppID,
		Name:              m.Name,
		IsInstalled:       true,
		LastUpdated:       now,
		OwnerSteamIDs:     domain.NewStringSet(),
		OwnerAccountNames: domain.NewFoldedSet(),
		AvailableAccounts: []domain.Account{},
	}
	if m.LastOwner == "" {
		return g
	}

	g.OwnerSteamID = m.LastOwner
	g.OwnerSteamIDs.Add(m.LastOwner)
	if acct, ok := byID[m.LastOwner]; ok {
		g.OwnerAccountName = acct.AccountName
		g.OwnerPersonaName = acct.PersonaName
		g.OwnerAccountNames.Add(acct.AccountName)
	}
	return g
}
