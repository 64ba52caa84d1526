package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"bslint/internal/document"
	"bslint/internal/engine"
	"bslint/internal/lsp"
	"bslint/internal/observ"
)

const (
	lspCacheSize = 256
	lspCacheTTL  = 10 * time.Minute
)

func newLSPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Run the bslint language server over stdio",
		Args:  cobra.NoArgs,
		RunE:  runLSP,
	}
	cmd.Flags().String("config", "", "path to bslint.toml or .bslint.yaml (default: search from the workspace root)")
	cmd.Flags().String("metrics-addr", "", "serve Prometheus metrics on this address, e.g. 127.0.0.1:9464")
	cmd.Flags().Duration("debounce", 200*time.Millisecond, "delay before diagnostics are published after an edit")
	cmd.Flags().Bool("watch", true, "reload rules when the configuration file changes")
	return cmd
}

func runLSP(cmd *cobra.Command, _ []string) error {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	metricsAddr, err := cmd.Flags().GetString("metrics-addr")
	if err != nil {
		return fmt.Errorf("failed to get metrics-addr flag: %w", err)
	}
	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return fmt.Errorf("failed to get debounce flag: %w", err)
	}
	watch, err := cmd.Flags().GetBool("watch")
	if err != nil {
		return fmt.Errorf("failed to get watch flag: %w", err)
	}
	// stdout занят протоколом, логи только в stderr
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}

	metrics := observ.NewMetrics()
	registry := document.NewRegistry(document.WithLogger(log))
	eng := engine.New(registry, engine.DefaultConfig(),
		engine.WithLogger(log),
		engine.WithMetrics(metrics),
		engine.WithCache(lspCacheSize, lspCacheTTL),
	)

	if metricsAddr != "" {
		stop, err := serveMetrics(metricsAddr, metrics)
		if err != nil {
			return fmt.Errorf("lsp: %w", err)
		}
		defer stop()
		log.WithField("addr", metricsAddr).Info("serving metrics")
	}

	server := lsp.NewServer(os.Stdin, os.Stdout, lsp.ServerOptions{
		Engine:      eng,
		Log:         log,
		ConfigPath:  configPath,
		Debounce:    debounce,
		WatchConfig: watch,
	})
	if err := server.Run(cmd.Context()); err != nil {
		if errors.Is(err, lsp.ErrExit) {
			return nil
		}
		if errors.Is(err, lsp.ErrExitWithoutShutdown) {
			return fmt.Errorf("lsp exit without shutdown")
		}
		return err
	}
	return nil
}

// serveMetrics starts the /metrics endpoint; the returned func shuts it down.
func serveMetrics(addr string, m *observ.Metrics) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() { _ = srv.Serve(ln) }()
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}
