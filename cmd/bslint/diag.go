package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"bslint/internal/diagfmt"
	"bslint/internal/driver"
	"bslint/internal/observ"
	"bslint/internal/rules"
	"bslint/internal/ui"
)

func newDiagCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diag [flags] <file|directory>",
		Short: "Run diagnostics on a module or a directory of modules",
		Long: `Run every enabled rule over a .bsl/.os file or all source files of a directory.
Exits with status 1 when an error-severity diagnostic is found or a file cannot be read.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDiag,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json|yaml|short)")
	cmd.Flags().String("config", "", "path to bslint.toml or .bslint.yaml (default: search upwards)")
	cmd.Flags().Int("jobs", 0, "max parallel files (0=auto)")
	cmd.Flags().Bool("cache", false, "reuse results of unchanged files from the user cache directory")
	cmd.Flags().Bool("timings", false, "print phase timings to stderr")
	cmd.Flags().Bool("list-rules", false, "list available rules and exit")
	cmd.Flags().Int("context", 0, "source lines shown before each diagnostic (pretty)")
	cmd.Flags().String("path-mode", "auto", "how file paths are shown (auto|absolute|relative|basename)")
	cmd.Flags().Int("max", 0, "maximum diagnostics in json/yaml output (0=all)")
	cmd.Flags().Bool("with-notes", false, "include related notes")
	return cmd
}

// runDiag executes the "diag" command: it loads the configuration for the
// target, analyzes the collected files in parallel and renders the results
// in the requested format.
func runDiag(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json", "yaml", "short":
	default:
		return fmt.Errorf("unknown format %q (must be pretty, json, yaml or short)", format)
	}

	listRules, err := cmd.Flags().GetBool("list-rules")
	if err != nil {
		return fmt.Errorf("failed to get list-rules flag: %w", err)
	}
	if listRules {
		return printRules(cmd.OutOrStdout(), format)
	}
	if len(args) != 1 {
		return fmt.Errorf("diag requires a file or directory argument")
	}
	target := args[0]

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	showTimings, err := cmd.Flags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	contextLines, err := cmd.Flags().GetInt("context")
	if err != nil {
		return fmt.Errorf("failed to get context flag: %w", err)
	}
	pathModeStr, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	pathMode, ok := diagfmt.ParsePathMode(pathModeStr)
	if !ok {
		return fmt.Errorf("unknown path-mode %q", pathModeStr)
	}
	maxOut, err := cmd.Flags().GetInt("max")
	if err != nil {
		return fmt.Errorf("failed to get max flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	colorOut, err := useColor(cmd, cmd.OutOrStdout())
	if err != nil {
		return err
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

	var timer *observ.Timer
	if showTimings {
		timer = observ.NewTimer()
	}

	phase := timer.Begin("config")
	cfg, err := loadProjectConfig(configPath, target)
	if err != nil {
		return err
	}
	eng := newEngine(cfg, log)
	timer.End(phase, cfg.Path)

	phase = timer.Begin("discover")
	paths, err := driver.CollectFiles(target, cfg)
	if err != nil {
		return fmt.Errorf("diag: %w", err)
	}
	timer.End(phase, fmt.Sprintf("%d files", len(paths)))

	opts := driver.Options{Jobs: jobs, Log: log, Timer: timer}
	if useCache {
		cache, err := driver.OpenDiskCache("bslint")
		if err != nil {
			log.WithError(err).Warn("disk cache disabled")
		} else {
			opts.Cache = cache
		}
	}
	progress := ui.NewProgress(cmd.ErrOrStderr(), len(paths), "analyzing")
	opts.Progress = progress.Set

	res, err := driver.AnalyzeFiles(cmd.Context(), eng, paths, opts)
	progress.Finish()
	if err != nil {
		return fmt.Errorf("diag: %w", err)
	}

	phase = timer.Begin("render")
	files := toFileDiagnostics(res)
	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		err = diagfmt.Pretty(out, files, diagfmt.PrettyOpts{
			Color:     colorOut,
			Context:   contextLines,
			PathMode:  pathMode,
			BaseDir:   cfg.Root,
			ShowNotes: withNotes,
		})
		if err == nil && res.Count() > 0 {
			_, err = fmt.Fprintf(out, "%d diagnostic(s) in %d file(s)\n", res.Count(), len(files))
		}
	case "json", "yaml":
		jsonOpts := diagfmt.JSONOpts{PathMode: pathMode, BaseDir: cfg.Root, Max: maxOut, IncludeNotes: withNotes}
		if format == "json" {
			err = diagfmt.JSON(out, files, jsonOpts)
		} else {
			err = diagfmt.YAML(out, files, jsonOpts)
		}
	case "short":
		err = diagfmt.Short(out, files, pathMode, cfg.Root)
	}
	if err != nil {
		return err
	}
	timer.End(phase, format)

	if showTimings {
		fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
	}
	if res.HasErrors() {
		return errFindings
	}
	return nil
}

func toFileDiagnostics(res *driver.Result) []diagfmt.FileDiagnostics {
	files := make([]diagfmt.FileDiagnostics, 0, len(res.Files))
	for _, f := range res.Files {
		files = append(files, diagfmt.FileDiagnostics{
			Path:        f.Path,
			File:        f.File,
			Diagnostics: f.Diagnostics,
			Err:         f.Err,
		})
	}
	return files
}

// ruleEntry is one line of `diag --list-rules`.
type ruleEntry struct {
	Code          string         `json:"code" yaml:"code"`
	Type          string         `json:"type" yaml:"type"`
	Severity      string         `json:"severity" yaml:"severity"`
	Scope         string         `json:"scope" yaml:"scope"`
	Minutes       int            `json:"minutes" yaml:"minutes"`
	Tags          []string       `json:"tags" yaml:"tags"`
	Compatibility string         `json:"compatibility,omitempty" yaml:"compatibility,omitempty"`
	Params        map[string]any `json:"params,omitempty" yaml:"params,omitempty"`
}

func collectRules() []ruleEntry {
	out := make([]ruleEntry, 0, len(rules.Codes()))
	for _, code := range rules.Codes() {
		info, err := rules.Describe(code)
		if err != nil {
			continue
		}
		e := ruleEntry{
			Code:     code.ID(),
			Type:     info.Type.String(),
			Severity: info.Severity.String(),
			Scope:    info.Scope.String(),
			Minutes:  info.Minutes,
		}
		for _, t := range info.Tags {
			e.Tags = append(e.Tags, string(t))
		}
		if !info.Compatibility.IsZero() {
			e.Compatibility = info.Compatibility.String()
		}
		if len(info.Params) > 0 {
			e.Params = info.Defaults()
		}
		out = append(out, e)
	}
	return out
}

func printRules(w io.Writer, format string) error {
	entries := collectRules()
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case "yaml":
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(entries); err != nil {
			return err
		}
		return enc.Close()
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RULE\tTYPE\tSEVERITY\tSCOPE\tMINUTES\tTAGS")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n", e.Code, e.Type, e.Severity, e.Scope, e.Minutes, strings.Join(e.Tags, ","))
	}
	return tw.Flush()
}

// readSource reads a module for single-file commands.
func readSource(path string) ([]byte, os.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, err
	}
	if info.IsDir() {
		return nil, nil, fmt.Errorf("%s is a directory", path)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return content, info, nil
}
