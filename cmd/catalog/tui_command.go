package main

import (
	"github.com/spf13/cobra"

	"github.com/handiism/record-catalog/internal/tui"
)

func newTUICommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive catalog editor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := ctx.ensureSettings()
			if err != nil {
				return err
			}
			return tui.Run(settings)
		},
	}
}
