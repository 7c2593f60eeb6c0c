// tictactoe is a terminal tic-tac-toe where each mark is drawn at random
// from a shrinking supply of X and O marks.
//
// Usage:
//
//	tictactoe list               - List available variants
//	tictactoe play [variant]     - Play a variant (default: tictactoe)
//	tictactoe menu               - Pick variants interactively
//	tictactoe results [variant]  - Show the results ledger
//	tictactoe serve              - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 30)
//	--seed <value>        - Set RNG seed for reproducible games
//	--db <path>           - Set results database path (default: ~/.arcade/results.db)
//	--log-file <path>     - Write logs to a file
//	--log-level <level>   - debug, info, warn or error
//	--app-config <path>   - Process settings YAML (ARCADE_* env vars also apply)
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/supply-tictactoe/internal/config"
	"github.com/vovakirdan/supply-tictactoe/internal/core"
	"github.com/vovakirdan/supply-tictactoe/internal/games/tictactoe"
	"github.com/vovakirdan/supply-tictactoe/internal/platform/tui"
	"github.com/vovakirdan/supply-tictactoe/internal/storage"
)

var (
	// Global flags
	flagFPS       int
	flagSeed      int64
	flagDBPath    string
	flagLogFile   string
	flagLogLevel  string
	flagAppConfig string

	// Resolved in PersistentPreRunE
	appCfg  *config.AppConfig
	logger  = log.New(io.Discard)
	logFile *os.File
)

func main() {
	err := rootCmd.Execute()
	closeLog()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tictactoe",
	Short: "Supply tic-tac-toe - marks drawn from a shrinking pool",
	Long: `Supply tic-tac-toe is played on a normal 3x3 board, but you do not
choose your mark. Each placement draws X or O at random, weighted by how
many of each are left in a shared supply (5 of each by default).

Available commands:
  list     - Show all variants
  play     - Play a variant directly
  menu     - Interactive variant picker
  results  - View the results ledger
  serve    - Start SSH server for remote play

Examples:
  tictactoe list
  tictactoe play
  tictactoe play tictactoe_classic
  tictactoe menu
  tictactoe results tictactoe
  tictactoe serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to results database (default ~/.arcade/results.db)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagAppConfig, "app-config", defaultAppConfigPath(), "Path to process settings YAML")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(serveCmd)

	rootCmd.SetHelpTemplate(rootCmd.HelpTemplate() + "\n" + config.ConfigUsage() + "\n")
}

func defaultAppConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "arcade.yaml")
}

// setup loads process settings, lets explicit flags win over them and
// builds the logger.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadApp(flagAppConfig)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.TickRate = flagFPS
	}
	if flags.Changed("db") {
		cfg.DBPath = flagDBPath
	}
	if flags.Changed("log-file") {
		cfg.LogFile = flagLogFile
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	if cfg.TickRate <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", cfg.TickRate)
	}
	appCfg = cfg

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	// The TUI owns the terminal, so interactive commands only log to a file.
	var out io.Writer = os.Stderr
	if isInteractive(cmd) {
		out = io.Discard
	}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		out = f
	}

	logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "tictactoe",
		Level:           level,
	})
	tictactoe.SetLogger(logger.WithPrefix("game"))
	tui.DisableColorIfRequested()

	return nil
}

func isInteractive(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "play", "menu":
		return true
	case "results":
		interactive, _ := cmd.Flags().GetBool("tui")
		return interactive
	}
	return false
}

func closeLog() {
	if logFile != nil {
		logFile.Close()
	}
}

// runtimeConfig builds the game runtime settings from the terminal size
// and global flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = appCfg.TickRate
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the results ledger. A failure is reported and the caller
// continues without one.
func openStore() *storage.Store {
	store, err := storage.Open(appCfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		logger.Warn("results database unavailable", "path", appCfg.DBPath, "error", err)
		return nil
	}
	return store
}
