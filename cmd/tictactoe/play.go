package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/supply-tictactoe/internal/games/tictactoe"
	"github.com/vovakirdan/supply-tictactoe/internal/platform/tui"
	"github.com/vovakirdan/supply-tictactoe/internal/registry"
)

var (
	flagConfig       string
	flagInitialCount int
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the given variant (default: tictactoe).

Controls:
  Arrows/WASD/HJKL  - Move the cursor
  Enter/Space       - Place at the cursor
  1-9               - Place directly (1 = top-left, 9 = bottom-right)
  Mouse click       - Place on the clicked cell
  P                 - Pause
  R                 - Rematch (after the game ends)
  B/Esc             - Back to the menu (when paused or finished)
  Q/Ctrl+C          - Quit

Variants:
  tictactoe          - Marks drawn from 5 X and 5 O
  tictactoe_fair     - Marks drawn from a huge supply (coin flips)
  tictactoe_classic  - No draw, marks alternate X and O

Examples:
  tictactoe play
  tictactoe play tictactoe_classic
  tictactoe play --initial-count 7
  tictactoe play --seed 42
  tictactoe play --config ./my-tictactoe.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tictactoe.yaml")
	playCmd.Flags().IntVar(&flagInitialCount, "initial-count", 0, "Marks of each symbol in the supply (min 5; 0 = from config)")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := tictactoe.IDWeighted
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'tictactoe list' to see available variants.")
		os.Exit(1)
	}
	if flagInitialCount < 0 {
		fmt.Fprintf(os.Stderr, "Error: --initial-count must not be negative, got %d\n", flagInitialCount)
		os.Exit(1)
	}

	// Set config path and supply for games before creation
	tictactoe.SetConfigPath(flagConfig)
	tictactoe.SetInitialCount(flagInitialCount)

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	cfg := runtimeConfig()
	store := openStore()

	logger.Info("starting game", "game", gameID, "seed", cfg.Seed)
	backToMenu, runErr := tui.Run(game, store, cfg, tui.WithLogger(logger))
	if runErr == nil && backToMenu {
		runErr = tui.RunSession(store, runtimeConfig(), logger)
	}

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
