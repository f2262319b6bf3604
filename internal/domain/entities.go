package domain

import (
	"fmt"
	"strings"
	"time"
)

// Account represents a Steam account known to this machine.
type Account struct {
	SteamID     string // 64-bit SteamID as a decimal string
	AccountName string // Login name (case-insensitive identity)
	PersonaName string // Display name
	MostRecent  bool   // Whether Steam last logged in with this account
	Timestamp   int64  // Unix timestamp of last login
}

// SameAccount reports whether two account names identify the same account.
// Steam login names are case-insensitive.
func (a Account) SameAccount(accountName string) bool {
	return strings.EqualFold(a.AccountName, accountName)
}

// DisplayName returns the persona name, falling back to the login name.
func (a Account) DisplayName() string {
	if a.PersonaName != "" {
		return a.PersonaName
	}
	return a.AccountName
}

// Game is the live, in-memory representation of a game in the library.
// Ownership across linked accounts is carried as true sets; AvailableAccounts
// is derived from the machine's account roster after every load and is never
// persisted.
type Game struct {
	AppID           int    // Steam application ID
	Name            string // Display title, may be empty if unknown
	IconURL         string // Icon image URL, may be empty
	PlaytimeMinutes int    // Total playtime, non-negative

	// Primary owner this entry is attributed to
	OwnerSteamID     string
	OwnerAccountName string
	OwnerPersonaName string

	IsPaid      bool
	IsInstalled bool

	LastUpdated time.Time // When this entry was last refreshed

	OwnerSteamIDs     StringSet // All Steam IDs that own this title
	OwnerAccountNames FoldedSet // All account names (case-insensitive) that own this title

	// Accounts on this machine that can play the game. Populated by the
	// refresh workflow after load; always empty immediately after
	// reconstruction from cache.
	AvailableAccounts []Account
}

// OwnedBy reports whether the account with the given Steam ID owns this game.
func (g Game) OwnedBy(steamID string) bool {
	return g.OwnerSteamIDs.Contains(steamID)
}

// FormattedPlaytime returns the playtime in a human-readable format.
func (g Game) FormattedPlaytime() string {
	if g.PlaytimeMinutes <= 0 {
		return "never played"
	}
	h := g.PlaytimeMinutes / 60
	m := g.PlaytimeMinutes % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
