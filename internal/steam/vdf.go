package steam

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/andygrunwald/vdf"
	"github.com/dmaher/steamswap/internal/domain"
)

// parseVDF reads a Valve Data Format document into its nested map form.
func parseVDF(r io.Reader) (map[string]interface{}, error) {
	m, err := vdf.NewParser(r).Parse()
	if err != nil {
		return nil, fmt.Errorf("failed to parse vdf: %w", err)
	}
	return m, nil
}

// child returns the nested map under key, matching case-insensitively.
// Valve files are inconsistent about key casing across Steam versions.
func child(m map[string]interface{}, key string) (map[string]interface{}, bool) {
	for k, v := range m {
		if strings.EqualFold(k, key) {
			sub, ok := v.(map[string]interface{})
			return sub, ok
		}
	}
	return nil, false
}

// str returns the string value under key, matching case-insensitively.
func str(m map[string]interface{}, key string) string {
	for k, v := range m {
		if strings.EqualFold(k, key) {
			if s, ok := v.(string); ok {
				return s
			}
		}
	}
	return ""
}

// ParseLoginUsers extracts the machine's account roster from a
// loginusers.vdf document. Accounts are returned most recent first, then
// by descending last-login timestamp.
func ParseLoginUsers(r io.Reader) ([]domain.Account, error) {
	doc, err := parseVDF(r)
	if err != nil {
		return nil, err
	}

	users, ok := child(doc, "users")
	if !ok {
		return nil, domain.ErrNoAccounts
	}

	accounts := make([]domain.Account, 0, len(users))
	for steamID, v := range users {
		entry, ok := v.(map[string]interface{})
		if !ok {
			continue
		}
		ts, _ := strconv.ParseInt(str(entry, "Timestamp"), 10, 64)
		accounts = append(accounts, domain.Account{
			SteamID:     steamID,
			AccountName: str(entry, "AccountName"),
			PersonaName: str(entry, "PersonaName"),
			MostRecent:  str(entry, "MostRecent") == "1",
			Timestamp:   ts,
		})
	}
	if len(accounts) == 0 {
		return nil, domain.ErrNoAccounts
	}

	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].MostRecent != accounts[j].MostRecent {
			return accounts[i].MostRecent
		}
		return accounts[i].Timestamp > accounts[j].Timestamp
	})
	return accounts, nil
}

// AppManifest is the subset of an appmanifest_*.acf file the scanner needs.
type AppManifest struct {
	AppID       int
	Name        string
	LastOwner   string // SteamID64 of the account the app was last installed for
	LastUpdated int64  // Unix timestamp of the last content update
}

// ParseAppManifest extracts installed-app metadata from an ACF document.
func ParseAppManifest(r io.Reader) (AppManifest, error) {
	doc, err := parseVDF(r)
	if err != nil {
		return AppManifest{}, err
	}

	state, ok := child(doc, "AppState")
	if !ok {
		return AppManifest{}, fmt.Errorf("appmanifest missing AppState block")
	}

	appID, err := strconv.Atoi(str(state, "appid"))
	if err != nil {
		return AppManifest{}, fmt.Errorf("appmanifest has invalid appid: %w", err)
	}
	updated, _ := strconv.ParseInt(str(state, "LastUpdated"), 10, 64)

	return AppManifest{
		AppID:       appID,
		Name:        str(state, "name"),
		LastOwner:   str(state, "LastOwner"),
		LastUpdated: updated,
	}, nil
}

// ParseLibraryFolders extracts library folder paths from a
// libraryfolders.vdf document. Handles both the current format (numbered
// blocks with a "path" field) and the legacy one (numbered string values).
func ParseLibraryFolders(r io.Reader) ([]string, error) {
	doc, err := parseVDF(r)
	if err != nil {
		return nil, err
	}

	folders, ok := child(doc, "libraryfolders")
	if !ok {
		return nil, nil
	}

	keys := make([]string, 0, len(folders))
	for k := range folders {
		if _, err := strconv.Atoi(k); err == nil {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		a, _ := strconv.Atoi(keys[i])
		b, _ := strconv.Atoi(keys[j])
		return a < b
	})

	var paths []string
	for _, k := range keys {
		switch v := folders[k].(type) {
		case string:
			paths = append(paths, v)
		case map[string]interface{}:
			if p := str(v, "path"); p != "" {
				paths = append(paths, p)
			}
		}
	}
	return paths, nil
}
