package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Settings holds all configuration options.
type Settings struct {
	// Storage
	DataDir  string `toml:"data_dir"`
	TabsFile string `toml:"tabs_file"`

	// Logging
	LogLevel  string `toml:"log_level"`  // debug, info, warn, error
	LogFormat string `toml:"log_format"` // console, json
	LogFile   string `toml:"log_file"`   // relative to data_dir; empty logs to stderr

	// Export
	ExportFormat string `toml:"export_format"` // text, yaml
	ExportDir    string `toml:"export_dir"`    // relative to data_dir; empty means data_dir

	// Interactive mode
	SaveOnExit bool `toml:"save_on_exit"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		DataDir:      defaultDataDir(),
		TabsFile:     "tabs.conf",
		LogLevel:     "info",
		LogFormat:    "console",
		ExportFormat: "text",
		SaveOnExit:   true,
	}
}

// DefaultPath returns the settings file location used when none is given.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return "record-catalog.toml"
	}
	return filepath.Join(dir, "record-catalog", "config.toml")
}

// Load reads settings from a TOML file.
//
// An empty path or a missing file yields DefaultSettings. Keys absent from
// the file keep their default values.
func Load(path string) (*Settings, error) {
	settings := DefaultSettings()
	if strings.TrimSpace(path) == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	settings.DataDir = expandHome(settings.DataDir)

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return settings, nil
}

// Save writes settings to a TOML file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := toml.Marshal(s)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// Validate checks enumerated fields.
func (s *Settings) Validate() error {
	var errs []error
	if strings.TrimSpace(s.DataDir) == "" {
		errs = append(errs, errors.New("data_dir must not be empty"))
	}
	if strings.TrimSpace(s.TabsFile) == "" {
		errs = append(errs, errors.New("tabs_file must not be empty"))
	}
	switch strings.ToLower(s.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("log_level: unsupported value %q", s.LogLevel))
	}
	switch strings.ToLower(s.LogFormat) {
	case "", "console", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log_format: unsupported value %q", s.LogFormat))
	}
	switch strings.ToLower(s.ExportFormat) {
	case "", "text", "txt", "yaml", "yml":
	default:
		errs = append(errs, fmt.Errorf("export_format: unsupported value %q", s.ExportFormat))
	}
	return errors.Join(errs...)
}

// TabsPath returns the tabs configuration file path.
func (s *Settings) TabsPath() string {
	return s.resolve(s.TabsFile)
}

// LogFilePath returns the log file path, or "" when logging to stderr.
func (s *Settings) LogFilePath() string {
	if s.LogFile == "" {
		return ""
	}
	return s.resolve(s.LogFile)
}

// ExportDirPath returns the directory exports are written to.
func (s *Settings) ExportDirPath() string {
	if s.ExportDir == "" {
		return s.DataDir
	}
	return s.resolve(s.ExportDir)
}

func (s *Settings) resolve(name string) string {
	name = expandHome(name)
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.DataDir, name)
}

func defaultDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil || homeDir == "" {
		return "."
	}
	return filepath.Join(homeDir, ".local", "share", "record-catalog")
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
}
