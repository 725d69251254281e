// Package config provides configuration management for record-catalog.
//
// This package handles:
//   - Loading and saving settings from TOML files
//   - Default configuration values
//   - Resolving data, tabs, log and export paths
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Catalog files live in ~/.local/share/record-catalog
//	// Tabs are described by tabs.conf in that directory
//	// Exports are plain text
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.toml")
//	if err != nil {
//	    // invalid TOML or unsupported values; a missing file is not an error
//	}
//
// # Saving Settings
//
//	settings.ExportFormat = "yaml"
//	err := settings.Save("/path/to/config.toml")
//
// The tabs file itself (which catalogs exist and where they are stored) is
// owned by the registry package.
package config
