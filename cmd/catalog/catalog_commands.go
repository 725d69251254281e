package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/handiism/record-catalog/internal/export"
)

func newTabsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "tabs",
		Short: "List configured tabs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, false, func(s *session) error {
				out := cmd.OutOrStdout()
				selected := s.manager.SelectedIndex()

				rows := make([][]string, 0, len(s.manager.Tabs()))
				for i, tab := range s.manager.Tabs() {
					marker := ""
					if i == selected {
						marker = "*"
					}
					rows = append(rows, []string{
						marker,
						tab.Name(),
						filepath.Base(tab.Path()),
						strconv.Itoa(tab.Catalog().Len()),
					})
				}
				fmt.Fprintln(out, renderTable(out, []string{"", "Tab", "File", "Albums"}, rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight}))
				return nil
			})
		},
	}
}

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the numbered listing of a tab",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, false, func(s *session) error {
				out := cmd.OutOrStdout()
				tab := s.manager.Selected()
				if tab == nil {
					return fmt.Errorf("list: no tabs configured")
				}

				entries := tab.Catalog().Flatten()
				if len(entries) == 0 {
					fmt.Fprintln(out, export.EmptyPlaceholder)
					return nil
				}

				rows := make([][]string, 0, len(entries))
				for _, e := range entries {
					rows = append(rows, []string{strconv.Itoa(e.Position), e.Artist, e.Album})
				}
				fmt.Fprintln(out, renderTable(out, []string{"#", "Artist", "Album"}, rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft}))
				return nil
			})
		},
	}
}

func newAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add ARTIST ALBUM",
		Short: "Add an album to a tab",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, true, func(s *session) error {
				if err := s.manager.Add(args[0], args[1]); err != nil {
					return err
				}
				return s.saveSelected()
			})
		},
	}
}

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove N",
		Short: "Remove the entry at position N of the listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, true, func(s *session) error {
				if _, err := s.manager.Remove(args[0]); err != nil {
					return err
				}
				return s.saveSelected()
			})
		},
	}
}

func newSortCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sort",
		Short: "Order a tab by artist name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, true, func(s *session) error {
				if err := s.manager.Sort(); err != nil {
					return err
				}
				return s.saveSelected()
			})
		},
	}
}

func newArtistsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "artists [PREFIX]",
		Short: "List artists, optionally only those starting with PREFIX",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, false, func(s *session) error {
				tab := s.manager.Selected()
				if tab == nil {
					return fmt.Errorf("artists: no tabs configured")
				}

				artists := tab.Catalog().Artists()
				if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
					artists = s.manager.Suggestions(args[0])
				}
				for _, artist := range artists {
					fmt.Fprintln(cmd.OutOrStdout(), artist)
				}
				return nil
			})
		},
	}
}

func newExportCommand(ctx *commandContext) *cobra.Command {
	var formatFlag string
	var dirFlag string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a tab to a text or YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, false, func(s *session) error {
				name := s.settings.ExportFormat
				if cmd.Flags().Changed("format") {
					name = formatFlag
				}
				format, err := export.ParseFormat(name)
				if err != nil {
					return err
				}

				dir := s.settings.ExportDirPath()
				if strings.TrimSpace(dirFlag) != "" {
					dir = strings.TrimSpace(dirFlag)
				}
				_, err = s.manager.Export(format, dir)
				return err
			})
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", "", "Export format: text or yaml (defaults to export_format)")
	cmd.Flags().StringVarP(&dirFlag, "dir", "d", "", "Destination directory (defaults to export_dir)")
	return cmd
}

func newImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import DIR",
		Short: "Add albums found in the ID3 tags of MP3 files under DIR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, true, func(s *session) error {
				report, err := s.manager.Import(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if report.Added == 0 {
					return nil
				}
				return s.saveSelected()
			})
		},
	}
}
