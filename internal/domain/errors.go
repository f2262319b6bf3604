package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrSteamNotFound indicates no Steam installation was found on this machine
	ErrSteamNotFound = errors.New("steam installation not found")

	// ErrNoAccounts indicates no Steam accounts are known to this machine
	ErrNoAccounts = errors.New("no steam accounts found")

	// ErrGameNotFound indicates the requested game does not exist in the library
	ErrGameNotFound = errors.New("game not found")
)
