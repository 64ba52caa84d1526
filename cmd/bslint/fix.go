package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"bslint/internal/diagfmt"
	"bslint/internal/document"
	"bslint/internal/engine"
	"bslint/internal/fix"
)

func newFixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix [flags] <file>",
		Short: "Apply available quick fixes to a module",
		Long: `Run diagnostics on a single module and apply every non-conflicting quick fix.
Without --write the fixed text is printed to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: runFix,
	}
	cmd.Flags().StringSlice("rule", nil, "only fix diagnostics of these rules")
	cmd.Flags().Bool("write", false, "rewrite the file in place")
	cmd.Flags().Bool("preview", false, "show the edits without applying them")
	cmd.Flags().String("config", "", "path to bslint.toml or .bslint.yaml (default: search upwards)")
	return cmd
}

func runFix(cmd *cobra.Command, args []string) error {
	path := args[0]

	onlyRules, err := cmd.Flags().GetStringSlice("rule")
	if err != nil {
		return fmt.Errorf("failed to get rule flag: %w", err)
	}
	write, err := cmd.Flags().GetBool("write")
	if err != nil {
		return fmt.Errorf("failed to get write flag: %w", err)
	}
	preview, err := cmd.Flags().GetBool("preview")
	if err != nil {
		return fmt.Errorf("failed to get preview flag: %w", err)
	}
	if write && preview {
		return fmt.Errorf("--write and --preview are mutually exclusive")
	}
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	cleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	content, info, err := readSource(path)
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}
	cfg, err := loadProjectConfig(configPath, path)
	if err != nil {
		return err
	}
	if len(onlyRules) > 0 {
		cfg.Diagnostics.Enabled = onlyRules
	}
	eng := newEngine(cfg, log)

	uri := document.URIFromPath(path)
	snap := eng.Registry().Upsert(uri, string(content)).Snapshot()
	diags, err := eng.Analyze(cmd.Context(), snap)
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}
	actions := eng.QuickFixes(snap, engine.WholeDocument, diags)

	if preview {
		if len(actions) == 0 {
			fmt.Fprintln(cmd.ErrOrStderr(), "No fixes available")
			return nil
		}
		return diagfmt.FixPreview(cmd.OutOrStdout(), path, snap.File, actions, uri)
	}

	res, applyErr := fix.Apply(snap.File, uri, actions)
	if errors.Is(applyErr, fix.ErrNoFixes) {
		fmt.Fprintln(cmd.ErrOrStderr(), "No fixes applied")
		if !write {
			_, err = cmd.OutOrStdout().Write(snap.File.Content)
			return err
		}
		return nil
	}
	if applyErr != nil {
		return fmt.Errorf("fix: %w", applyErr)
	}

	if write {
		if err := os.WriteFile(path, res.Content, info.Mode().Perm()); err != nil {
			return fmt.Errorf("fix: %w", err)
		}
	} else if _, err := cmd.OutOrStdout().Write(res.Content); err != nil {
		return err
	}
	reportApplied(cmd.ErrOrStderr(), res)
	return nil
}

// reportApplied пишет сводку в stderr, чтобы stdout оставался чистым текстом модуля.
func reportApplied(w io.Writer, res *fix.ApplyResult) {
	fmt.Fprintf(w, "Applied %d fix(es)\n", len(res.Applied))
	for _, item := range res.Applied {
		fmt.Fprintf(w, "  - %s (%d edit(s))\n", item.Title, item.EditCount)
	}
	for _, item := range res.Skipped {
		fmt.Fprintf(w, "  skipped %s: %s\n", item.Title, item.Reason)
	}
}
