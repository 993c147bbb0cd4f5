package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"plexart/internal/preflight"
	"plexart/internal/terminal"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify Plex connectivity and local directory access",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			format := terminal.For(out)
			results := preflight.RunAll(cmd.Context(), cfg)

			for _, line := range terminal.SectionHeader(format, "Preflight") {
				fmt.Fprintln(out, line)
			}
			var failed []string
			for _, result := range results {
				kind := terminal.StatusOK
				if !result.Passed {
					kind = terminal.StatusError
					failed = append(failed, result.Name)
				}
				fmt.Fprintln(out, terminal.StatusLine(format, result.Name, kind, result.Detail))
			}
			if len(failed) > 0 {
				return fmt.Errorf("preflight failed: %s", strings.Join(failed, ", "))
			}
			return nil
		},
	}
}
