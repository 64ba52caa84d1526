package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"bslint/internal/version"
)

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show bslint build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := cmd.Flags().GetString("format")
			if err != nil {
				return fmt.Errorf("failed to get format flag: %w", err)
			}
			switch format {
			case "json":
				return renderVersionJSON(cmd.OutOrStdout())
			case "pretty":
				colored, err := useColor(cmd, cmd.OutOrStdout())
				if err != nil {
					return err
				}
				renderVersionPretty(cmd.OutOrStdout(), colored)
				return nil
			default:
				return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
			}
		},
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func renderVersionPretty(w io.Writer, colored bool) {
	if !colored {
		fmt.Fprintln(w, version.String())
		return
	}
	line := "bslint " + version.Colored()
	if version.GitCommit != "" {
		line += " (" + version.GitCommit + ")"
	}
	if version.BuildDate != "" {
		line += " built " + version.BuildDate
	}
	fmt.Fprintln(w, line)
}

func renderVersionJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(versionPayload{
		Tool:      "bslint",
		Version:   version.Version,
		GitCommit: version.GitCommit,
		BuildDate: version.BuildDate,
	})
}
