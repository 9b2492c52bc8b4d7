package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/carelink/brainarcade/internal/api"
	"github.com/carelink/brainarcade/internal/config"
	"github.com/carelink/brainarcade/internal/events"
	"github.com/carelink/brainarcade/internal/games/memory"
	"github.com/carelink/brainarcade/internal/platform/tui"
	"github.com/carelink/brainarcade/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagHTTPAddr    string
	flagNATSURL     string
	flagWatchConfig bool
	flagRoundTTL    time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the arcade SSH server and optional HTTP API",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with a board picker menu.
Rounds are stored per-server, so all users share one leaderboard.

With --http, the same server exposes a JSON API where a remote client
drives rounds that the server owns and animates in real time.
With --nats-url, every finished round is published to NATS on
brainarcade.results.<board>.
With --watch-config, edits to memory.yaml apply to boards dealt afterwards.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.arcade/host_key

Examples:
  brainarcade serve                             # SSH on :23234
  brainarcade serve --ssh :2222 --http :8080    # SSH and HTTP
  brainarcade serve --ssh "" --http :8080       # HTTP only
  brainarcade serve --nats-url nats://localhost:4222 --watch-config

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port, empty to disable)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP API address (host:port, empty to disable)")
	serveCmd.Flags().StringVar(&flagNATSURL, "nats-url", "", "NATS server URL for round completion events")
	serveCmd.Flags().BoolVar(&flagWatchConfig, "watch-config", false, "Reload memory.yaml when it changes")
	serveCmd.Flags().DurationVar(&flagRoundTTL, "round-ttl", 30*time.Minute, "Drop HTTP rounds idle for this long")
}

func runServe(cmd *cobra.Command, _ []string) error {
	if flagSSHAddr == "" && flagHTTPAddr == "" {
		return errors.New("nothing to serve: both --ssh and --http are empty")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	var pub *events.Publisher
	if flagNATSURL != "" {
		p, err := events.Connect(flagNATSURL, "brainarcade")
		if err != nil {
			return err
		}
		defer p.Close()
		pub = p
		logger.Info("publishing results", "nats", flagNATSURL)
	}

	g, ctx := errgroup.WithContext(ctx)

	if flagSSHAddr != "" {
		srv, err := tui.NewSSHServer(tui.SSHServerConfig{
			Address:     flagSSHAddr,
			HostKeyPath: flagHostKey,
			IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
			TickRate:    flagFPS,
		}, tui.NewRecorder(store, pub, logger), logger)
		if err != nil {
			return err
		}
		g.Go(func() error { return srv.Serve(ctx) })
	}

	if flagHTTPAddr != "" {
		serveHTTP(ctx, g, store, pub)
	}

	if flagWatchConfig {
		watchConfig(ctx, g)
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("stopped")
	return nil
}

func serveHTTP(ctx context.Context, g *errgroup.Group, store *storage.Store, pub *events.Publisher) {
	opts := []api.HubOption{
		api.WithPublisher(pub),
		api.WithLogger(logger.WithPrefix("hub")),
		api.WithRoundTTL(flagRoundTTL),
	}
	if store != nil {
		opts = append(opts, api.WithStore(store))
	}
	hub := api.NewHub(opts...)

	srv := &http.Server{
		Addr:              flagHTTPAddr,
		Handler:           api.NewRouter(hub, logger.WithPrefix("http")),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g.Go(func() error { return hub.Run(ctx) })
	g.Go(func() error {
		logger.Info("starting HTTP server", "address", flagHTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
}

func watchConfig(ctx context.Context, g *errgroup.Group) {
	path := config.ResolveMemoryPath(flagConfig)
	if path == "" {
		logger.Warn("--watch-config: no memory.yaml found, using built-in defaults")
		return
	}

	g.Go(func() error {
		logger.Info("watching config", "path", path)
		return config.WatchMemory(ctx, path, func(cfg config.MemoryConfig, err error) {
			if err == nil {
				cfg, err = withDifficulty(cfg)
			}
			if err != nil {
				logger.Error("config reload rejected", "path", path, "err", err)
				return
			}
			memory.SetConfig(cfg)
			logger.Info("config reloaded", "path", path, "pairs", cfg.Board.Pairs)
		})
	})
}
