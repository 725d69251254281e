package ioutils

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	invalidChars  = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots  = regexp.MustCompile(`\.+$`)
	repeatedSpace = regexp.MustCompile(`\s+`)
)

// WriteFileAtomic replaces path with data.
//
// The data is written to a temporary file in the same directory, synced,
// and renamed over path, so readers only ever see the old or the new
// content. The temporary file is removed if any step fails.
//
// Example:
//
//	err := WriteFileAtomic("/data/cd_catalog.json", data, 0o644)
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

// CopyFile copies a file from source to destination.
//
// The destination file is created with mode 0644 if it doesn't exist,
// or truncated if it does. The source file must exist and be readable.
//
// Returns an error if:
//   - Source file cannot be opened
//   - Destination file cannot be created
//   - Copy operation fails
func CopyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		_ = destFile.Close()
		return err
	}
	return destFile.Close()
}

// Exists reports whether path exists. Errors other than "not exist"
// are returned so permission problems are not mistaken for absence.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// SanitizeFileName removes or replaces characters that are invalid in file/folder names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control characters 0x00-0x1f) → underscore
//   - Trailing dots → removed (Windows limitation)
//   - Multiple whitespace → single space
//   - Leading and trailing whitespace → removed
//
// Example:
//
//	SanitizeFileName("Rock: 70s/80s")   // Returns "Rock_ 70s_80s"
//	SanitizeFileName("Vinyl...")        // Returns "Vinyl"
//	SanitizeFileName("My   Collection") // Returns "My Collection"
func SanitizeFileName(name string) string {
	name = invalidChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = repeatedSpace.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}
