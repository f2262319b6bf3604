package domain

import "context"

// LibraryScanner produces the live view of the machine: the account roster
// and the union of games owned across those accounts. Implemented by the
// local Steam installation scanner; a Steam Web API client could implement
// it equally.
type LibraryScanner interface {
	// Accounts returns all Steam accounts known to this machine.
	Accounts(ctx context.Context) ([]Account, error)

	// Scan returns the full game library with per-account ownership
	// aggregated into the owner sets.
	Scan(ctx context.Context) ([]Game, error)
}
