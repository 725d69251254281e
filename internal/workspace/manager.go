package workspace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/handiism/record-catalog/internal/catalog"
	"github.com/handiism/record-catalog/internal/export"
	ioutils "github.com/handiism/record-catalog/internal/io"
	"github.com/handiism/record-catalog/internal/logging"
	"github.com/handiism/record-catalog/internal/registry"
	"github.com/handiism/record-catalog/internal/tags"
)

// EventLevel indicates the severity/type of a user-facing message.
type EventLevel int

const (
	LevelInfo EventLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// String returns the lower-case level name.
func (l EventLevel) String() string {
	switch l {
	case LevelVerbose:
		return "verbose"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelSuccess:
		return "success"
	default:
		return "info"
	}
}

// Event is a message for the user about the outcome of an action.
type Event struct {
	Message string
	Level   EventLevel
}

// ErrNoTab is returned when an action needs a selected tab and none exists.
var ErrNoTab = errors.New("no catalog tab available")

// ErrUnknownTab is returned when selecting a tab that does not exist.
var ErrUnknownTab = errors.New("unknown tab")

// Manager routes user actions to the currently selected tab.
//
// Every action reports its outcome through the event callback as well as
// its return value, so a UI can just render events while a CLI can check
// errors. Positions given to Remove always refer to the listing as it is
// at the time of the call.
type Manager struct {
	tabs     []*registry.Tab
	selected int

	reader *tags.Reader
	logger *slog.Logger

	onEvent func(Event)
	mu      sync.Mutex
}

// NewManager creates a Manager over tabs with the first tab selected.
func NewManager(tabs []*registry.Tab, logger *slog.Logger, onEvent func(Event)) *Manager {
	return &Manager{
		tabs:    tabs,
		reader:  tags.NewReader(tags.DefaultReaderConfig()),
		logger:  logging.Component(logger, "workspace"),
		onEvent: onEvent,
	}
}

// Tabs returns all tabs in display order.
func (m *Manager) Tabs() []*registry.Tab {
	return append([]*registry.Tab(nil), m.tabs...)
}

// SelectedIndex returns the index of the selected tab.
func (m *Manager) SelectedIndex() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selected
}

// Selected returns the selected tab, or nil when there are no tabs.
func (m *Manager) Selected() *registry.Tab {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.tabs) == 0 {
		return nil
	}
	return m.tabs[m.selected]
}

// Select makes the tab at index i current.
func (m *Manager) Select(i int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i < 0 || i >= len(m.tabs) {
		return fmt.Errorf("%w: index %d", ErrUnknownTab, i)
	}
	m.selected = i
	return nil
}

// SelectByName makes the tab with the given display name current.
// Names are matched case-insensitively.
func (m *Manager) SelectByName(name string) error {
	name = strings.TrimSpace(name)
	for i, tab := range m.tabs {
		if strings.EqualFold(tab.Name(), name) {
			return m.Select(i)
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownTab, name)
}

// Cycle moves the selection by delta, wrapping around.
func (m *Manager) Cycle(delta int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.tabs) == 0 {
		return
	}
	n := len(m.tabs)
	m.selected = ((m.selected+delta)%n + n) % n
}

// Add adds an album to the selected tab.
// A duplicate is reported as a warning and returned as catalog.ErrDuplicate.
func (m *Manager) Add(artist, album string) error {
	tab, err := m.current()
	if err != nil {
		return err
	}

	err = tab.Catalog().Add(artist, album)
	switch {
	case err == nil:
		m.emit(LevelSuccess, "Added: %s - %s", strings.TrimSpace(artist), strings.TrimSpace(album))
		m.logger.Debug("album added", "tab", tab.Name(), "artist", artist, "album", album)
	case errors.Is(err, catalog.ErrDuplicate):
		m.emit(LevelWarning, "Already in %s: %s - %s", tab.Name(), strings.TrimSpace(artist), strings.TrimSpace(album))
	case errors.Is(err, catalog.ErrValidation):
		m.emit(LevelError, "Enter both an artist and an album.")
	default:
		m.emit(LevelError, "Add failed: %v", err)
	}
	return err
}

// Remove deletes the entry at a 1-based position typed by the user.
func (m *Manager) Remove(positionText string) (catalog.Entry, error) {
	tab, err := m.current()
	if err != nil {
		return catalog.Entry{}, err
	}

	position, err := strconv.Atoi(strings.TrimSpace(positionText))
	if err != nil {
		m.emit(LevelError, "Enter a valid entry number.")
		return catalog.Entry{}, fmt.Errorf("%w: %q is not a number", catalog.ErrOutOfRange, positionText)
	}

	entry, err := tab.Catalog().RemoveAt(position)
	if err != nil {
		if position < 1 {
			m.emit(LevelError, "The number must be positive.")
		} else {
			m.emit(LevelError, "The number exceeds the number of entries.")
		}
		return catalog.Entry{}, err
	}

	m.emit(LevelSuccess, "Removed: %s - %s", entry.Artist, entry.Album)
	m.logger.Debug("album removed", "tab", tab.Name(), "position", position, "artist", entry.Artist, "album", entry.Album)
	return entry, nil
}

// Sort orders the selected tab by artist.
func (m *Manager) Sort() error {
	tab, err := m.current()
	if err != nil {
		return err
	}
	tab.Catalog().Sort()
	m.emit(LevelSuccess, "%s sorted by artist.", tab.Name())
	return nil
}

// SaveAll saves every tab, reporting each failure and a summary.
func (m *Manager) SaveAll() (bool, error) {
	ok, err := registry.SaveAll(m.tabs)
	if !ok {
		m.logger.Error("save failed", "error", err)
		m.emit(LevelError, "Save failed: %v", err)
		return false, err
	}
	m.logger.Info("all tabs saved", "count", len(m.tabs))
	m.emit(LevelSuccess, "All catalogs saved.")
	return true, nil
}

// Export writes the selected tab to dir in format and returns the file path.
func (m *Manager) Export(format export.Format, dir string) (string, error) {
	tab, err := m.current()
	if err != nil {
		return "", err
	}

	data, err := export.NewExporter(format).Render(tab.Catalog())
	if err != nil {
		m.emit(LevelError, "Export failed: %v", err)
		return "", err
	}

	if err := ioutils.EnsureDir(dir); err != nil {
		m.emit(LevelError, "Export failed: %v", err)
		return "", err
	}
	path := filepath.Join(dir, export.FileName(tab.Path(), format))
	if err := ioutils.WriteFileAtomic(path, data, 0o644); err != nil {
		m.emit(LevelError, "Export failed: %v", err)
		return "", err
	}

	m.emit(LevelSuccess, "Catalog exported to %s", path)
	return path, nil
}

// Import adds the albums tagged in MP3 files under dir to the selected tab.
func (m *Manager) Import(ctx context.Context, dir string) (tags.Report, error) {
	tab, err := m.current()
	if err != nil {
		return tags.Report{}, err
	}

	report, err := m.reader.Import(ctx, dir, tab.Catalog())
	if err != nil {
		m.emit(LevelError, "Import failed: %v", err)
		return report, err
	}

	m.emit(LevelSuccess, "Imported into %s: %d added, %d already listed, %d skipped",
		tab.Name(), report.Added, report.Duplicates, report.Skipped)
	return report, nil
}

// Listing returns the display lines of tab.
func (m *Manager) Listing(tab *registry.Tab) []string {
	return export.Lines(tab.Catalog())
}

// Suggestions returns the selected tab's artists starting with prefix.
func (m *Manager) Suggestions(prefix string) []string {
	tab := m.Selected()
	if tab == nil {
		return nil
	}
	return tab.Catalog().ArtistsWithPrefix(prefix)
}

func (m *Manager) current() (*registry.Tab, error) {
	tab := m.Selected()
	if tab == nil {
		m.emit(LevelError, "No catalog tab is available.")
		return nil, ErrNoTab
	}
	return tab, nil
}

func (m *Manager) emit(level EventLevel, format string, args ...any) {
	if m.onEvent != nil {
		m.onEvent(Event{Message: fmt.Sprintf(format, args...), Level: level})
	}
}
