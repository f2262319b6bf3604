package steam

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// writeFakeSteamRoot lays out a minimal Steam installation for scanning.
func writeFakeSteamRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	mustWrite(t, filepath.Join(root, "config", "loginusers.vdf"), loginUsersVDF)
	mustWrite(t, filepath.Join(root, "steamapps", "appmanifest_440.acf"), appManifestACF)
	mustWrite(t, filepath.Join(root, "steamapps", "appmanifest_730.acf"), `"AppState"
{
	"appid"		"730"
	"name"		"Counter-Strike 2"
	"LastUpdated"		"1710000000"
	"LastOwner"		"76561198000000002"
}
`)
	return root
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestScannerAccounts(t *testing.T) {
	s := NewScanner(writeFakeSteamRoot(t), nil)

	accounts, err := s.Accounts(context.Background())
	if err != nil {
		t.Fatalf("accounts: %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("accounts = %d, want 2", len(accounts))
	}
}

func TestScannerScan(t *testing.T) {
	s := NewScanner(writeFakeSteamRoot(t), nil)

	games, err := s.Scan(context.Background())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("games = %d, want 2", len(games))
	}

	byApp := make(map[int]int)
	for i, g := range games {
		byApp[g.AppID] = i
	}

	tf2 := games[byApp[440]]
	if tf2.Name != "Team Fortress 2" || !tf2.IsInstalled {
		t.Fatalf("tf2 = %+v", tf2)
	}
	if tf2.OwnerSteamID != "76561198000000001" || tf2.OwnerAccountName != "alice" {
		t.Fatalf("tf2 owner = %q/%q", tf2.OwnerSteamID, tf2.OwnerAccountName)
	}
	if !tf2.OwnerSteamIDs.Contains("76561198000000001") {
		t.Fatal("owner set missing last owner")
	}
	if !tf2.OwnerAccountNames.Contains("ALICE") {
		t.Fatal("owner account names should match case-insensitively")
	}

	cs2 := games[byApp[730]]
	if cs2.OwnerAccountName != "bob" || cs2.OwnerPersonaName != "Bob" {
		t.Fatalf("cs2 owner = %+v", cs2)
	}
}

func TestScannerScanCancelled(t *testing.T) {
	s := NewScanner(writeFakeSteamRoot(t), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Scan(ctx); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}

func TestScannerMissingRoot(t *testing.T) {
	s := NewScanner(filepath.Join(t.TempDir(), "nope"), nil)

	if _, err := s.Accounts(context.Background()); err == nil {
		t.Fatal("expected error for missing loginusers")
	}
}

func TestResolveRootConfigured(t *testing.T) {
	root := writeFakeSteamRoot(t)

	got, err := ResolveRoot(root)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != root {
		t.Fatalf("root = %q, want %q", got, root)
	}

	if _, err := ResolveRoot(filepath.Join(root, "missing")); err == nil {
		t.Fatal("expected error for nonexistent configured root")
	}
}
