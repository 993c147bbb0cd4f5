package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"plexart/internal/services/plex"
	"plexart/internal/terminal"
)

func newLibrariesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "libraries",
		Aliases: []string{"libs"},
		Short:   "List available Plex libraries",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listLibraries(cmd, ctx)
		},
	}
}

// listLibraries prints every library section sorted by id.
func listLibraries(cmd *cobra.Command, ctx *commandContext) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	sections, err := plex.NewFromConfig(cfg).Sections(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	format := terminal.For(out)
	if len(sections) == 0 {
		fmt.Fprintln(out, "No libraries found")
		return nil
	}

	rows := make([][]string, 0, len(sections))
	for _, section := range sections {
		rows = append(rows, []string{strconv.Itoa(section.ID), section.Title, string(section.Kind)})
	}
	fmt.Fprintln(out, format.Style(terminal.RoleHeading, "Available Plex libraries"))
	fmt.Fprintln(out, renderTable([]string{"ID", "Title", "Type"}, rows, []columnAlignment{alignRight, alignLeft, alignLeft}))
	return nil
}
