// Package ioutils provides file system utilities for record-catalog.
//
// This package contains functions for:
//   - Atomic file writing (temp file + rename)
//   - File copying
//   - Filename sanitization for cross-platform compatibility
//   - Directory creation and existence checks
//
// # File Operations
//
//	// Replace a catalog file without leaving a half-written copy behind
//	err := ioutils.WriteFileAtomic("/data/cd_catalog.json", data, 0o644)
//
//	// Keep a copy of a file before it is replaced
//	err := ioutils.CopyFile("/data/cd_catalog.json", "/data/cd_catalog.json.bak")
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/data")
//
// # Filename Sanitization
//
// Use SanitizeFileName to remove invalid characters from filenames:
//
//	safe := ioutils.SanitizeFileName("Rock: 70s/80s") // Returns "Rock_ 70s_80s"
package ioutils
