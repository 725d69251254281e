package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/record-catalog/internal/config"
	"github.com/handiism/record-catalog/internal/export"
	"github.com/handiism/record-catalog/internal/logging"
	"github.com/handiism/record-catalog/internal/registry"
	"github.com/handiism/record-catalog/internal/workspace"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4")).
			Width(10)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1A1A2E")).
			Background(lipgloss.Color("#4ECDC4")).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC")).
			Padding(0, 1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(0, 1)

	suggestionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// maxLogs is how many recent events stay on screen.
const maxLogs = 6

// Field identifies one of the input fields.
type Field int

const (
	FieldArtist Field = iota
	FieldAlbum
	FieldPosition
	fieldCount
)

type keyMap struct {
	NextField  key.Binding
	PrevField  key.Binding
	NextTab    key.Binding
	PrevTab    key.Binding
	Submit     key.Binding
	Sort       key.Binding
	Save       key.Binding
	Export     key.Binding
	Accept     key.Binding
	Suggestion key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextField:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevField:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		NextTab:    key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "next tab")),
		PrevTab:    key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "prev tab")),
		Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add/remove")),
		Sort:       key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "sort")),
		Save:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save all")),
		Export:     key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "export")),
		Accept:     key.NewBinding(key.WithKeys("ctrl+right"), key.WithHelp("ctrl+→", "use suggestion")),
		Suggestion: key.NewBinding(key.WithKeys("ctrl+down"), key.WithHelp("ctrl+↓", "next suggestion")),
		Quit:       key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.NextField, k.NextTab, k.Sort, k.Save, k.Export, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextField, k.PrevField, k.Submit},
		{k.NextTab, k.PrevTab},
		{k.Accept, k.Suggestion},
		{k.Sort, k.Save, k.Export, k.Quit},
	}
}

// eventLog collects manager events. The model holds it by pointer so the
// manager callback and every copy of the model see the same entries.
type eventLog struct {
	entries []workspace.Event
}

func (l *eventLog) add(e workspace.Event) {
	l.entries = append(l.entries, e)
	if len(l.entries) > maxLogs {
		l.entries = l.entries[len(l.entries)-maxLogs:]
	}
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	manager  *workspace.Manager
	settings *config.Settings
	logger   *slog.Logger
	events   *eventLog

	inputs [fieldCount]textinput.Model
	focus  Field

	suggestions []string
	suggestion  int

	listing viewport.Model
	keys    keyMap
	help    help.Model

	// unsaved is set when a save on exit failed; the next quit key
	// leaves without saving.
	unsaved bool

	width  int
	height int
}

// NewModel creates a TUI model over tabs. startupErr, when non-nil, is
// shown as a warning; it is what registry.BuildTabs reported.
func NewModel(tabs []*registry.Tab, settings *config.Settings, logger *slog.Logger, startupErr error) Model {
	if settings == nil {
		settings = config.DefaultSettings()
	}
	events := &eventLog{}

	placeholders := [fieldCount]string{"Artist name", "Album title", "Entry number"}
	var inputs [fieldCount]textinput.Model
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 200
		ti.Width = 40
		inputs[i] = ti
	}
	inputs[FieldPosition].CharLimit = 9
	inputs[FieldPosition].Width = 10
	inputs[FieldArtist].Focus()

	m := Model{
		manager:  workspace.NewManager(tabs, logger, events.add),
		settings: settings,
		logger:   logging.Component(logger, "tui"),
		events:   events,
		inputs:   inputs,
		listing:  viewport.New(60, 10),
		keys:     defaultKeyMap(),
		help:     help.New(),
	}

	if startupErr != nil {
		for _, err := range splitJoined(startupErr) {
			events.add(workspace.Event{Message: err.Error(), Level: workspace.LevelWarning})
		}
	}
	m.refresh()
	return m
}

// Manager returns the workspace driven by the model.
func (m Model) Manager() *workspace.Manager {
	return m.manager
}

// Focused returns the field receiving key presses.
func (m Model) Focused() Field {
	return m.focus
}

// Value returns the text of an input field.
func (m Model) Value(f Field) string {
	return m.inputs[f].Value()
}

// Suggestions returns the artist completions currently offered.
func (m Model) Suggestions() []string {
	return m.suggestions
}

// Events returns the recent events in display order.
func (m Model) Events() []workspace.Event {
	return append([]workspace.Event(nil), m.events.entries...)
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.listing.Width = max(msg.Width-4, 20)
		m.listing.Height = max(msg.Height-20, 3)
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			if m.settings.SaveOnExit && !m.unsaved {
				if ok, err := m.manager.SaveAll(); !ok {
					m.unsaved = true
					m.logger.Warn("save on exit failed, staying open", "error", err)
					m.events.add(workspace.Event{
						Message: "Changes were not saved. Fix the problem and press ctrl+s, or press esc again to quit without saving.",
						Level:   workspace.LevelWarning,
					})
					return m, nil
				}
			}
			m.logger.Info("session closed", "unsaved", m.unsaved)
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextField):
			m.setFocus((m.focus + 1) % fieldCount)
			return m, nil

		case key.Matches(msg, m.keys.PrevField):
			m.setFocus((m.focus + fieldCount - 1) % fieldCount)
			return m, nil

		case key.Matches(msg, m.keys.NextTab):
			m.manager.Cycle(1)
			m.refresh()
			return m, nil

		case key.Matches(msg, m.keys.PrevTab):
			m.manager.Cycle(-1)
			m.refresh()
			return m, nil

		case key.Matches(msg, m.keys.Submit):
			m.submit()
			return m, nil

		case key.Matches(msg, m.keys.Sort):
			m.manager.Sort()
			m.refresh()
			return m, nil

		case key.Matches(msg, m.keys.Save):
			if ok, _ := m.manager.SaveAll(); ok {
				m.unsaved = false
			}
			return m, nil

		case key.Matches(msg, m.keys.Export):
			m.export()
			return m, nil

		case key.Matches(msg, m.keys.Accept):
			if m.focus == FieldArtist && len(m.suggestions) > 0 {
				m.inputs[FieldArtist].SetValue(m.suggestions[m.suggestion])
				m.inputs[FieldArtist].CursorEnd()
				m.setFocus(FieldAlbum)
			}
			return m, nil

		case key.Matches(msg, m.keys.Suggestion):
			if len(m.suggestions) > 0 {
				m.suggestion = (m.suggestion + 1) % len(m.suggestions)
			}
			return m, nil

		case msg.Type == tea.KeyPgUp || msg.Type == tea.KeyPgDown:
			var cmd tea.Cmd
			m.listing, cmd = m.listing.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if m.focus == FieldArtist {
		m.updateSuggestions()
	}
	return m, cmd
}

func (m *Model) submit() {
	if m.focus == FieldPosition {
		if _, err := m.manager.Remove(m.inputs[FieldPosition].Value()); err == nil {
			m.inputs[FieldPosition].SetValue("")
		}
		m.refresh()
		return
	}

	err := m.manager.Add(m.inputs[FieldArtist].Value(), m.inputs[FieldAlbum].Value())
	if err == nil {
		m.inputs[FieldArtist].SetValue("")
		m.inputs[FieldAlbum].SetValue("")
		m.setFocus(FieldArtist)
	}
	m.refresh()
}

func (m *Model) export() {
	format, err := export.ParseFormat(m.settings.ExportFormat)
	if err != nil {
		m.events.add(workspace.Event{Message: err.Error(), Level: workspace.LevelError})
		return
	}
	m.manager.Export(format, m.settings.ExportDirPath())
}

func (m *Model) setFocus(f Field) {
	m.inputs[m.focus].Blur()
	m.focus = f
	m.inputs[m.focus].Focus()
	m.updateSuggestions()
}

func (m *Model) updateSuggestions() {
	m.suggestion = 0
	prefix := strings.TrimSpace(m.inputs[FieldArtist].Value())
	if m.focus != FieldArtist || prefix == "" {
		m.suggestions = nil
		return
	}
	m.suggestions = m.manager.Suggestions(prefix)
}

// refresh re-renders the listing of the selected tab.
func (m *Model) refresh() {
	if tab := m.manager.Selected(); tab != nil {
		m.listing.SetContent(strings.Join(m.manager.Listing(tab), "\n"))
	} else {
		m.listing.SetContent(dimStyle.Render("No tabs configured."))
	}
	m.updateSuggestions()
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("♪ Record Catalog"))
	b.WriteString("\n")
	b.WriteString(m.viewTabs())
	b.WriteString("\n\n")

	labels := [fieldCount]string{"Artist", "Album", "Remove #"}
	for i := range m.inputs {
		b.WriteString(labelStyle.Render(labels[i]))
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
		if Field(i) == FieldArtist {
			b.WriteString(m.viewSuggestions())
		}
	}
	b.WriteString("\n")

	b.WriteString(boxStyle.Render(m.listing.View()))
	b.WriteString("\n")
	b.WriteString(m.renderLogs())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m Model) viewTabs() string {
	tabs := m.manager.Tabs()
	parts := make([]string, 0, len(tabs))
	selected := m.manager.SelectedIndex()
	for i, tab := range tabs {
		if i == selected {
			parts = append(parts, activeTabStyle.Render(tab.Name()))
		} else {
			parts = append(parts, tabStyle.Render(tab.Name()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) viewSuggestions() string {
	if len(m.suggestions) == 0 {
		return ""
	}
	parts := make([]string, len(m.suggestions))
	for i, s := range m.suggestions {
		if i == m.suggestion {
			parts[i] = suggestionStyle.Render("[" + s + "]")
		} else {
			parts[i] = dimStyle.Render(s)
		}
	}
	return labelStyle.Render("") + strings.Join(parts, " ") + "\n"
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, event := range m.events.entries {
		var style lipgloss.Style
		prefix := "•"
		switch event.Level {
		case workspace.LevelError:
			style = errorStyle
			prefix = "✗"
		case workspace.LevelWarning:
			style = warningStyle
			prefix = "!"
		case workspace.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case workspace.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + event.Message))
		b.WriteString("\n")
	}

	return b.String()
}

// splitJoined unpacks an errors.Join result into its parts.
func splitJoined(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}

// DefaultLogFile is where the interface logs when settings name no log
// file; writing to stderr would corrupt the screen.
const DefaultLogFile = "catalog-tui.log"

// Run starts the TUI application with the given settings.
//
// The data directory is locked for the whole session; a second session
// on the same directory fails with workspace.ErrBusy.
func Run(settings *config.Settings) error {
	if settings == nil {
		settings = config.DefaultSettings()
	}

	logSettings := *settings
	if logSettings.LogFile == "" {
		logSettings.LogFile = DefaultLogFile
	}
	base, closeLog, err := logging.NewFromSettings(&logSettings)
	if err != nil {
		return err
	}
	defer closeLog()
	logger := logging.Component(base, "tui")

	lock, err := workspace.AcquireLock(settings.DataDir)
	if err != nil {
		return err
	}
	defer lock.Release()

	tabs, loadErr := registry.BuildTabs(settings.TabsPath(), settings.DataDir, base)
	if loadErr != nil {
		logger.Warn("some catalogs could not be loaded", "error", loadErr)
	}
	if len(tabs) == 0 {
		return errors.New("no catalog tabs configured")
	}

	logger.Info("session started", "data_dir", settings.DataDir, "tabs", len(tabs))
	p := tea.NewProgram(NewModel(tabs, settings, base, loadErr), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run interface: %w", err)
	}
	return nil
}
