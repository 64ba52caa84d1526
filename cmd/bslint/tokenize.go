package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bslint/internal/diagfmt"
	"bslint/internal/driver"
)

// maxLexDiagnostics ограничивает шум от бинарных или сильно битых файлов.
const maxLexDiagnostics = 100

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] <file>",
		Short: "Print the token stream of a module",
		Args:  cobra.ExactArgs(1),
		RunE:  runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	cmd.Flags().Bool("trivia", false, "include whitespace tokens")
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	trivia, err := cmd.Flags().GetBool("trivia")
	if err != nil {
		return fmt.Errorf("failed to get trivia flag: %w", err)
	}
	colorErr, err := useColor(cmd, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	res, err := driver.Tokenize(args[0], maxLexDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenize: %w", err)
	}

	switch format {
	case "pretty":
		err = diagfmt.FormatTokensPretty(cmd.OutOrStdout(), res.Tokens, trivia)
	case "json":
		err = diagfmt.FormatTokensJSON(cmd.OutOrStdout(), res.Tokens, trivia)
	default:
		return fmt.Errorf("unknown format %q (must be pretty or json)", format)
	}
	if err != nil {
		return err
	}

	if res.Bag.Len() == 0 {
		return nil
	}
	res.Bag.Sort()
	files := []diagfmt.FileDiagnostics{{Path: args[0], File: res.File, Diagnostics: res.Bag.Items()}}
	if err := diagfmt.Pretty(cmd.ErrOrStderr(), files, diagfmt.PrettyOpts{Color: colorErr}); err != nil {
		return err
	}
	if res.Bag.HasErrors() {
		return errFindings
	}
	return nil
}
