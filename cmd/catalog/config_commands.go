package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/handiism/record-catalog/internal/config"
	"github.com/handiism/record-catalog/internal/registry"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand(ctx))
	configCmd.AddCommand(newConfigShowCommand(ctx))

	return configCmd
}

func newConfigInitCommand(ctx *commandContext) *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write default settings and tabs files",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := ctx.configPath()

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("settings file already exists at %s (use --overwrite to replace it)", target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check settings path: %w", err)
				}
			}

			settings := config.DefaultSettings()
			if ctx.dataDirFlag != nil && strings.TrimSpace(*ctx.dataDirFlag) != "" {
				settings.DataDir = strings.TrimSpace(*ctx.dataDirFlag)
			}
			if err := settings.Save(target); err != nil {
				return fmt.Errorf("write settings: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote settings to %s\n", target)

			if err := os.MkdirAll(settings.DataDir, 0o755); err != nil {
				return fmt.Errorf("create data directory %q: %w", settings.DataDir, err)
			}
			tabsPath := settings.TabsPath()
			if _, err := os.Stat(tabsPath); os.IsNotExist(err) {
				if err := registry.WriteConfig(tabsPath, registry.DefaultTabSpecs()); err != nil {
					return fmt.Errorf("write tabs file: %w", err)
				}
				fmt.Fprintf(out, "Wrote tabs file to %s\n", tabsPath)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite an existing settings file")
	return cmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := ctx.ensureSettings()
			if err != nil {
				return err
			}
			data, err := toml.Marshal(settings)
			if err != nil {
				return fmt.Errorf("encode settings: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# %s\n", ctx.configPath())
			_, err = out.Write(data)
			return err
		},
	}
}
