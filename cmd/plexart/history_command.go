package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"plexart/internal/history"
	"plexart/internal/terminal"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var runID string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent artwork runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				return errors.New("run history is disabled; set [history] enabled = true in the config file")
			}
			store, err := history.OpenFromConfig(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			format := terminal.For(out)

			if runID != "" {
				attempts, err := store.Attempts(cmd.Context(), runID)
				if err != nil {
					return err
				}
				if len(attempts) == 0 {
					fmt.Fprintf(out, "No attempts recorded for run %s\n", runID)
					return nil
				}
				rows := make([][]string, 0, len(attempts))
				for _, a := range attempts {
					rows = append(rows, []string{a.Kind, a.Title, a.Outcome, a.Path, a.Detail})
				}
				fmt.Fprintln(out, renderTable([]string{"Kind", "Title", "Outcome", "Path", "Detail"}, rows, nil))
				return nil
			}

			runs, err := store.RecentRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.ID,
					humanize.Time(run.StartedAt),
					run.LibraryTitle,
					run.Mode,
					string(run.Status),
					strconv.Itoa(run.Downloaded),
					strconv.Itoa(run.Skipped),
					runDuration(run.StartedAt, run.FinishedAt),
				})
			}
			fmt.Fprintln(out, format.Style(terminal.RoleHeading, "Recent runs"))
			fmt.Fprintln(out, renderTable(
				[]string{"Run", "Started", "Library", "Mode", "Status", "Downloaded", "Skipped", "Duration"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of runs to show")
	cmd.Flags().StringVar(&runID, "run", "", "Show the artwork attempts of one run")
	return cmd
}

func runDuration(started, finished time.Time) string {
	if started.IsZero() || finished.IsZero() {
		return "-"
	}
	return finished.Sub(started).Round(time.Second).String()
}
