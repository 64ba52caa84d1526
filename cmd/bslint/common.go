package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"bslint/internal/document"
	"bslint/internal/engine"
	"bslint/internal/observ"
	"bslint/internal/prof"
	"bslint/internal/project"
	"bslint/internal/ui"
)

// newLogger строит логгер из глобальных флагов; логи всегда идут в stderr.
func newLogger(cmd *cobra.Command) (*logrus.Logger, error) {
	level, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get log-level flag: %w", err)
	}
	format, err := cmd.Flags().GetString("log-format")
	if err != nil {
		return nil, fmt.Errorf("failed to get log-format flag: %w", err)
	}
	return observ.NewLogger(level, format, cmd.ErrOrStderr())
}

// useColor resolves the --color flag for w.
func useColor(cmd *cobra.Command, w io.Writer) (bool, error) {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch mode {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto", "":
		return ui.IsTerminal(w), nil
	default:
		return false, fmt.Errorf("unknown color mode %q (must be auto, on or off)", mode)
	}
}

// loadProjectConfig reads the explicit configuration file or the nearest one
// above target. Without any file the defaults apply and the target's
// directory becomes the configuration root.
func loadProjectConfig(explicit, target string) (project.Config, error) {
	if explicit != "" {
		cfg, err := project.LoadConfig(explicit)
		if err != nil {
			return project.Config{}, err
		}
		return *cfg, nil
	}
	start := target
	if info, err := os.Stat(target); err == nil && !info.IsDir() {
		start = filepath.Dir(target)
	}
	cfg, err := project.LoadConfigFrom(start)
	if errors.Is(err, project.ErrNoConfig) {
		abs, absErr := filepath.Abs(start)
		if absErr != nil {
			return project.Config{}, absErr
		}
		def := project.DefaultConfig(filepath.Base(abs))
		def.Root = abs
		return def, nil
	}
	if err != nil {
		return project.Config{}, err
	}
	return *cfg, nil
}

// newEngine wires a registry rooted at the configuration and an engine
// configured from it.
func newEngine(cfg project.Config, log logrus.FieldLogger, opts ...engine.Option) *engine.Engine {
	registry := document.NewRegistry(document.WithLogger(log))
	registry.SetConfigurationRoot(cfg.Root)
	opts = append([]engine.Option{engine.WithLogger(log)}, opts...)
	return engine.New(registry, engine.ConfigFrom(cfg), opts...)
}

// setupProfiling starts the profilers requested by the persistent flags. The
// returned cleanup is safe to call more than once.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	flags := cmd.Flags()
	var opts prof.Options
	var err error
	if opts.CPU, err = flags.GetString("cpu-profile"); err != nil {
		return nil, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if opts.Mem, err = flags.GetString("mem-profile"); err != nil {
		return nil, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if opts.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return nil, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	session, err := prof.Start(opts)
	if err != nil {
		return nil, err
	}
	return func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "failed to write profile: %v\n", err)
		}
	}, nil
}
