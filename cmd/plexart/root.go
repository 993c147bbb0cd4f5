package main

import (
	"github.com/spf13/cobra"
)

const rootLong = `Download poster.jpg, fanart.jpg and cover.jpg for media items in a Plex library.

Examples:
  plexart --list-libraries
  plexart --poster --fanart
  plexart --library 3 --poster
  plexart --library 4 --mode overwrite --fanart
  plexart --library 2 --mode add --poster --fanart`

func newRootCommand() *cobra.Command {
	var configFlag string
	flags := &runFlags{}

	ctx := newCommandContext(&configFlag, flags)

	rootCmd := &cobra.Command{
		Use:           "plexart",
		Short:         "Download Plex artwork into media folders",
		Long:          rootLong,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.listLibraries {
				return listLibraries(cmd, ctx)
			}
			return runArtwork(cmd, ctx)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Also log to stderr at debug level")
	flags.register(rootCmd)

	rootCmd.AddCommand(newLibrariesCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
