package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"bslint/internal/version"
)

// errFindings завершает процесс с кодом 1 без сообщения: всё уже выведено.
var errFindings = errors.New("diagnostics with errors found")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "bslint",
		Short:         "Static analysis for 1C:Enterprise (BSL) and OneScript modules",
		Long:          `bslint checks BSL and OneScript sources for code smells and errors and serves the results over LSP`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newDiagCmd())
	root.AddCommand(newFixCmd())
	root.AddCommand(newTokenizeCmd())
	root.AddCommand(newLSPCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newVersionCmd())

	// Глобальные флаги
	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	root.PersistentFlags().String("log-level", "warn", "log level (trace|debug|info|warn|error)")
	root.PersistentFlags().String("log-format", "text", "log format (text|json)")
	root.PersistentFlags().String("cpu-profile", "", "write CPU profile to file")
	root.PersistentFlags().String("mem-profile", "", "write heap profile to file on exit")
	root.PersistentFlags().String("runtime-trace", "", "write Go runtime trace to file")
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errFindings) {
			fmt.Fprintln(os.Stderr, "bslint:", err)
		}
		os.Exit(1)
	}
}
