package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/handiism/record-catalog/internal/config"
	"github.com/handiism/record-catalog/internal/logging"
	"github.com/handiism/record-catalog/internal/registry"
	"github.com/handiism/record-catalog/internal/workspace"
)

type commandContext struct {
	configFlag  *string
	dataDirFlag *string
	tabFlag     *string

	settingsOnce sync.Once
	settings     *config.Settings
	settingsErr  error
}

func newCommandContext(configFlag, dataDirFlag, tabFlag *string) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		dataDirFlag: dataDirFlag,
		tabFlag:     tabFlag,
	}
}

func (c *commandContext) configPath() string {
	if c.configFlag != nil && strings.TrimSpace(*c.configFlag) != "" {
		return strings.TrimSpace(*c.configFlag)
	}
	return config.DefaultPath()
}

func (c *commandContext) ensureSettings() (*config.Settings, error) {
	c.settingsOnce.Do(func() {
		settings, err := config.Load(c.configPath())
		if err != nil {
			c.settingsErr = err
			return
		}
		if c.dataDirFlag != nil && strings.TrimSpace(*c.dataDirFlag) != "" {
			settings.DataDir = strings.TrimSpace(*c.dataDirFlag)
		}
		c.settings = settings
	})
	return c.settings, c.settingsErr
}

// session is one command's view of the catalog: the tabs, a manager with
// the requested tab selected and a logger. Sessions that change catalogs
// hold the data directory lock until closed.
type session struct {
	manager  *workspace.Manager
	settings *config.Settings
	logger   *slog.Logger

	lock     *workspace.Lock
	closeLog func() error
}

// openSession loads every tab and selects the one named by --tab.
// Manager events other than warnings and errors are printed to out;
// failures surface as the command's error instead. When mutate is set the
// data directory lock is taken first, so a running TUI session makes the
// command fail with workspace.ErrBusy instead of having its save clobbered.
func (c *commandContext) openSession(out io.Writer, mutate bool) (*session, error) {
	settings, err := c.ensureSettings()
	if err != nil {
		return nil, err
	}

	base, closeLog, err := logging.NewFromSettings(settings)
	if err != nil {
		return nil, err
	}
	s := &session{settings: settings, logger: logging.Component(base, "cli"), closeLog: closeLog}

	if mutate {
		lock, err := workspace.AcquireLock(settings.DataDir)
		if err != nil {
			_ = s.close()
			return nil, err
		}
		s.lock = lock
	}

	tabs, loadErr := registry.BuildTabs(settings.TabsPath(), settings.DataDir, base)
	if loadErr != nil {
		s.logger.Warn("some catalogs could not be loaded", "error", loadErr)
	}

	s.manager = workspace.NewManager(tabs, base, func(e workspace.Event) {
		switch e.Level {
		case workspace.LevelWarning, workspace.LevelError:
			return
		}
		fmt.Fprintln(out, e.Message)
	})

	if c.tabFlag != nil && strings.TrimSpace(*c.tabFlag) != "" {
		if err := s.manager.SelectByName(*c.tabFlag); err != nil {
			_ = s.close()
			return nil, err
		}
	}

	return s, nil
}

// withSession runs fn against a freshly opened session.
func (c *commandContext) withSession(cmd *cobra.Command, mutate bool, fn func(*session) error) error {
	s, err := c.openSession(cmd.OutOrStdout(), mutate)
	if err != nil {
		return err
	}
	defer s.close()
	return fn(s)
}

// close releases the data directory lock and the log file.
func (s *session) close() error {
	return errors.Join(s.lock.Release(), s.closeLog())
}

// saveSelected writes the selected tab after a mutation.
func (s *session) saveSelected() error {
	tab := s.manager.Selected()
	if tab == nil {
		return workspace.ErrNoTab
	}
	if err := tab.Save(); err != nil {
		return fmt.Errorf("save tab %q: %w", tab.Name(), err)
	}
	s.logger.Debug("tab saved", "tab", tab.Name(), "path", tab.Path())
	return nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
