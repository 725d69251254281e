// Package logging assembles the slog loggers used across record-catalog.
//
// It owns handler selection (text or JSON), level parsing and output
// routing from config.Settings, and provides Nop for tests. Components
// attach their name with Component so every line carries a "component"
// attribute.
package logging
