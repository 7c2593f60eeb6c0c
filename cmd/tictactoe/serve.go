package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/supply-tictactoe/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own menu and its own games; nothing is shared
between sessions except the results ledger.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, uses ARCADE_SSH_HOST_KEY or .ssh/arcade_ed25519, generated on first start

Examples:
  tictactoe serve                           # Listen on :2222
  tictactoe serve --ssh :23234              # Listen on another port
  tictactoe serve --host-key ./my_host_key  # Use specific host key
  tictactoe serve --db ./results.db         # Use specific database

Users can connect with:
  ssh -t localhost -p 2222`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, default :2222)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (generated if missing)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting (default 30m)")
}

func runServe(cmd *cobra.Command, _ []string) {
	cfg := tui.SSHServerConfig{
		Address:     appCfg.SSH.Address,
		HostKeyPath: appCfg.SSH.HostKeyPath,
		IdleTimeout: appCfg.SSH.IdleTimeout,
		TickRate:    appCfg.TickRate,
	}
	if cmd.Flags().Changed("ssh") {
		cfg.Address = flagSSHAddr
	}
	if cmd.Flags().Changed("host-key") {
		cfg.HostKeyPath = flagHostKey
	}
	if cmd.Flags().Changed("idle-timeout") {
		cfg.IdleTimeout = flagIdleTimeout
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	server, err := tui.NewSSHServer(cfg, store, logger.WithPrefix("ssh"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		if store != nil {
			store.Close()
		}
		os.Exit(1)
	}

	fmt.Printf("Starting SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		if store != nil {
			store.Close()
		}
		os.Exit(1)
	}
}
