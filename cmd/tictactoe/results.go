package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/supply-tictactoe/internal/platform/tui"
	"github.com/vovakirdan/supply-tictactoe/internal/registry"
	"github.com/vovakirdan/supply-tictactoe/internal/storage"
)

var (
	flagLimit      int
	flagClear      bool
	flagResultsTUI bool
)

var resultsCmd = &cobra.Command{
	Use:   "results [variant]",
	Short: "Show the results ledger",
	Long: `Display win/draw tallies and the most recent finished games.

Without a variant, prints a tally for every variant.

Examples:
  tictactoe results
  tictactoe results tictactoe --limit 20
  tictactoe results tictactoe_fair --clear
  tictactoe results --tui`,
	Args: cobra.MaximumNArgs(1),
	Run:  runResults,
}

func init() {
	resultsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of recent games to show")
	resultsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all results of the variant")
	resultsCmd.Flags().BoolVar(&flagResultsTUI, "tui", false, "Open the interactive results board")
}

func runResults(_ *cobra.Command, args []string) {
	gameID := ""
	if len(args) == 1 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
			fmt.Fprintln(os.Stderr, "Run 'tictactoe list' to see available variants.")
			os.Exit(1)
		}
	}

	store, err := storage.Open(appCfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagResultsTUI:
		cfg := runtimeConfig()
		if _, err := tui.RunResults(store, cfg.ScreenW, cfg.ScreenH, gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error running results board: %v\n", err)
			os.Exit(1)
		}

	case flagClear:
		if gameID == "" {
			fmt.Fprintln(os.Stderr, "Error: --clear needs a variant")
			os.Exit(1)
		}
		n, err := store.ClearResults(gameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing results: %v\n", err)
			os.Exit(1)
		}
		logger.Info("results cleared", "game", gameID, "rows", n)
		fmt.Printf("Cleared %d results for %s.\n", n, gameID)

	case gameID == "":
		printAllTallies(store)

	default:
		printVariantResults(store, gameID)
	}
}

func printAllTallies(store *storage.Store) {
	tallies, err := store.AllTallies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving results: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Results")
	fmt.Println()
	fmt.Printf("  %-20s  %5s  %5s  %5s  %5s  %s\n", "Variant", "Games", "X", "O", "Draw", "Last played")
	fmt.Printf("  %-20s  %5s  %5s  %5s  %5s  %s\n", "-------", "-----", "-", "-", "----", "-----------")

	for _, g := range registry.List() {
		t, ok := tallies[g.ID]
		if !ok {
			fmt.Printf("  %-20s  %5d  %5s  %5s  %5s  %s\n", g.ID, 0, "-", "-", "-", "never")
			continue
		}
		fmt.Printf("  %-20s  %5d  %5d  %5d  %5d  %s\n",
			g.ID, t.Games, t.XWins, t.OWins, t.Draws, t.LastPlayed.Local().Format("2006-01-02 15:04"))
	}
}

func printVariantResults(store *storage.Store, gameID string) {
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	tally, err := store.Tally(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving tally: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Results - %s\n", game.Title())
	fmt.Println()

	if tally.Games == 0 {
		fmt.Println("No finished games recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'tictactoe play %s' to record the first one!\n", gameID)
		return
	}

	fmt.Printf("  Games %d   X wins %d   O wins %d   Draws %d   Avg moves %.1f\n",
		tally.Games, tally.XWins, tally.OWins, tally.Draws, tally.AvgPlacements)
	fmt.Println()

	recent, err := store.RecentResults(gameID, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving results: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("  %-3s  %-7s  %-12s  %-5s  %-8s  %s\n", "#", "Outcome", "Line", "Moves", "Left X/O", "Date")
	fmt.Printf("  %-3s  %-7s  %-12s  %-5s  %-8s  %s\n", "-", "-------", "----", "-----", "--------", "----")
	for i, row := range tui.ResultRows(recent) {
		fmt.Printf("  %-3d  %-7s  %-12s  %-5s  %-8s  %s\n", i+1, row[1], row[2], row[3], row[4], recent[i].CreatedAt.Local().Format("2006-01-02 15:04"))
	}
}
