package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/termfolio/internal/app"
	"github.com/vovakirdan/termfolio/internal/config"
	"github.com/vovakirdan/termfolio/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the terminal over SSH",
	Long: `Start an SSH server. Every connection gets its own terminal session;
scores go to the shared database.

Host key handling:
  - --host-key, then server.host_key_path from the site config
  - otherwise a key is generated at ~/.termfolio/host_key

Examples:
  termfolio serve
  termfolio serve --ssh :2222
  termfolio serve --host-key ./my_host_key

Users can connect with:
  ssh localhost -p 2222`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from site config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) error {
	if !cmd.Flags().Changed("log-level") {
		flagLogLevel = "info"
	}
	a, err := openApp(app.Options{})
	if err != nil {
		return err
	}
	defer a.Close()

	srv := a.Site.Server
	cfg := tui.SSHConfigFrom(srv.Host, srv.Port, srv.HostKeyPath)
	if flagSSHAddr != "" {
		cfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.HostKeyPath = flagHostKey
	}
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute

	server, err := tui.NewSSHServer(cfg, *tuiEnv(a, config.DifficultyNormal))
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "Serving termfolio on %s (Ctrl+C to stop)\n", server.Addr())
	return server.ListenAndServe(ctx)
}
