package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var dataDirFlag string
	var tabFlag string

	ctx := newCommandContext(&configFlag, &dataDirFlag, &tabFlag)

	rootCmd := &cobra.Command{
		Use:           "catalog",
		Short:         "Keep track of the records on your shelves",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureSettings()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Settings file path")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "Directory holding the tabs file and catalogs")
	rootCmd.PersistentFlags().StringVarP(&tabFlag, "tab", "t", "", "Tab to work on (defaults to the first tab)")

	rootCmd.AddCommand(newTabsCommand(ctx))
	rootCmd.AddCommand(newListCommand(ctx))
	rootCmd.AddCommand(newAddCommand(ctx))
	rootCmd.AddCommand(newRemoveCommand(ctx))
	rootCmd.AddCommand(newSortCommand(ctx))
	rootCmd.AddCommand(newArtistsCommand(ctx))
	rootCmd.AddCommand(newExportCommand(ctx))
	rootCmd.AddCommand(newImportCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newTUICommand(ctx))

	return rootCmd
}
