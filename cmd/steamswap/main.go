package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dmaher/steamswap/internal/cache"
	"github.com/dmaher/steamswap/internal/config"
	"github.com/dmaher/steamswap/internal/domain"
	"github.com/dmaher/steamswap/internal/library"
	"github.com/dmaher/steamswap/internal/log"
	"github.com/dmaher/steamswap/internal/search"
	"github.com/dmaher/steamswap/internal/steam"
	"github.com/dmaher/steamswap/internal/store"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var (
		showVersion bool
		refresh     bool
		status      bool
		accounts    bool
		clearCache  bool
		query       string
		filterQuery string
		asJSON      bool
	)
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.BoolVar(&refresh, "refresh", false, "force a full library rescan")
	flag.BoolVar(&status, "status", false, "show cache status")
	flag.BoolVar(&accounts, "accounts", false, "list steam accounts on this machine")
	flag.BoolVar(&clearCache, "clear", false, "discard the cached library")
	flag.StringVar(&query, "search", "", "fuzzy search the library by name")
	flag.StringVar(&filterQuery, "filter", "", "filter the library by scattered-character match")
	flag.BoolVar(&asJSON, "json", false, "machine-readable output")
	flag.Parse()

	if showVersion {
		fmt.Printf("steamswap %s\n", Version)
		return
	}

	if err := run(refresh, status, accounts, clearCache, query, filterQuery, asJSON); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(refresh, status, accounts, clearCache bool, query, filterQuery string, asJSON bool) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.Setup(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting steamswap", "version", Version)

	if clearCache {
		if err := config.ClearCache(cfg); err != nil {
			return err
		}
		fmt.Println("Cache cleared.")
		return nil
	}

	root, err := steam.ResolveRoot(cfg.Steam.Root)
	if err != nil {
		return fmt.Errorf("could not locate steam: %w", err)
	}
	logger.Debug("resolved steam root", "root", root)

	st, err := store.NewCacheStore(cfg.Cache.Dir, root)
	if err != nil {
		return fmt.Errorf("failed to open cache store: %w", err)
	}
	defer st.Close()

	scanner := steam.NewScanner(root, logger)
	svc := library.NewService(scanner, st, logger)
	svc.SetValidDuration(cfg.Cache.ValidDuration)

	ctx := context.Background()

	switch {
	case status:
		return printStatus(svc, asJSON)
	case accounts:
		return printAccounts(ctx, svc, asJSON)
	case refresh:
		games, err := svc.Rescan(ctx)
		if err != nil {
			return err
		}
		return printGames(games, asJSON)
	case query != "":
		games, err := svc.Load(ctx)
		if err != nil {
			return err
		}
		return printGames(search.NewIndex(games).Search(query), asJSON)
	case filterQuery != "":
		games, err := svc.Load(ctx)
		if err != nil {
			return err
		}
		highlight := term.IsTerminal(int(os.Stdout.Fd()))
		return printFilter(search.NewIndex(games).Filter(filterQuery), asJSON, highlight)
	default:
		games, err := svc.Load(ctx)
		if err != nil {
			return err
		}
		return printGames(games, asJSON)
	}
}

func printStatus(svc *library.Service, asJSON bool) error {
	st := svc.Status()
	if asJSON {
		return json.NewEncoder(os.Stdout).Encode(st)
	}
	if st.LastUpdated.IsZero() {
		fmt.Println("No cached library.")
		return nil
	}
	state := "valid"
	if st.Expired {
		state = "expired"
	}
	fmt.Printf("Cached games: %d\nLast updated: %s (%s)\n", st.Games, st.LastUpdated.Format("2006-01-02 15:04:05"), state)
	return nil
}

func printAccounts(ctx context.Context, svc *library.Service, asJSON bool) error {
	accounts, err := svc.Accounts(ctx)
	if err != nil {
		return err
	}
	if asJSON {
		return json.NewEncoder(os.Stdout).Encode(accounts)
	}
	for _, a := range accounts {
		marker := " "
		if a.MostRecent {
			marker = "*"
		}
		fmt.Printf("%s %-20s %-20s %s\n", marker, a.AccountName, a.DisplayName(), a.SteamID)
	}
	return nil
}

func printGames(games []domain.Game, asJSON bool) error {
	if asJSON {
		out := make([]cache.CachedGame, 0, len(games))
		for _, g := range games {
			out = append(out, cache.FromGame(g))
		}
		return json.NewEncoder(os.Stdout).Encode(out)
	}

	nameWidth := 40
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		// Leave room for the appid, playtime and owner columns.
		if nw := w - 45; nw > 10 && nw < nameWidth {
			nameWidth = nw
		}
	}

	for _, g := range games {
		name := truncateName(g.Name, nameWidth)
		owners := strings.Join(g.OwnerAccountNames.Sorted(), ",")
		installed := " "
		if g.IsInstalled {
			installed = "+"
		}
		fmt.Printf("%s %7d  %-*s  %-12s  %s\n", installed, g.AppID, nameWidth, name, g.FormattedPlaytime(), owners)
	}
	fmt.Printf("\n%d games\n", len(games))
	return nil
}

func printFilter(matches []search.Match, asJSON, highlight bool) error {
	if asJSON {
		type result struct {
			Game  cache.CachedGame `json:"game"`
			Score int              `json:"score"`
		}
		out := make([]result, 0, len(matches))
		for _, m := range matches {
			out = append(out, result{Game: cache.FromGame(m.Game), Score: m.Score})
		}
		return json.NewEncoder(os.Stdout).Encode(out)
	}

	for _, m := range matches {
		owners := strings.Join(m.Game.OwnerAccountNames.Sorted(), ",")
		fmt.Printf("%7d  %s  %s\n", m.Game.AppID, formatMatchedName(m.Game.Name, m.MatchedIndexes, highlight), owners)
	}
	fmt.Printf("\n%d matches\n", len(matches))
	return nil
}

// formatMatchedName marks the characters the filter matched. On a terminal
// the matched runes are underlined, otherwise they are wrapped in brackets.
func formatMatchedName(name string, matched []int, highlight bool) string {
	if len(matched) == 0 {
		return name
	}
	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}
	var b strings.Builder
	for i, r := range name {
		switch {
		case !hit[i]:
			b.WriteRune(r)
		case highlight:
			b.WriteString("\x1b[4m")
			b.WriteRune(r)
			b.WriteString("\x1b[0m")
		default:
			b.WriteByte('[')
			b.WriteRune(r)
			b.WriteByte(']')
		}
	}
	return b.String()
}

// truncateName shortens a title to fit the name column. It cuts on rune
// boundaries so multi-byte titles never end in a broken sequence.
func truncateName(name string, width int) string {
	runes := []rune(name)
	if len(runes) <= width {
		return name
	}
	return string(runes[:width-1]) + "…"
}
