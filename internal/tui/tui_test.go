package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/handiism/record-catalog/internal/config"
	"github.com/handiism/record-catalog/internal/logging"
	"github.com/handiism/record-catalog/internal/registry"
	"github.com/handiism/record-catalog/internal/store"
	"github.com/handiism/record-catalog/internal/workspace"
)

func newTestModel(t *testing.T) (Model, string) {
	t.Helper()
	dir := t.TempDir()
	settings := config.DefaultSettings()
	settings.DataDir = dir
	tabs := []*registry.Tab{
		registry.NewTab("CD", filepath.Join(dir, "cd.json"), nil),
		registry.NewTab("Vinyl", filepath.Join(dir, "vinyl.json"), nil),
	}
	return NewModel(tabs, settings, logging.Nop(), nil), dir
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func typed(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_AddThroughInputs(t *testing.T) {
	m, _ := newTestModel(t)

	m = send(t, m,
		typed("Queen"),
		tea.KeyMsg{Type: tea.KeyTab},
		typed("Jazz"),
		tea.KeyMsg{Type: tea.KeyEnter},
	)

	c := m.Manager().Selected().Catalog()
	if c.Len() != 1 {
		t.Fatalf("entries = %d, want 1", c.Len())
	}
	if m.Value(FieldArtist) != "" || m.Value(FieldAlbum) != "" {
		t.Errorf("inputs not cleared: %q / %q", m.Value(FieldArtist), m.Value(FieldAlbum))
	}
	if m.Focused() != FieldArtist {
		t.Errorf("focus = %d, want artist", m.Focused())
	}
	if !strings.Contains(m.View(), "1. Queen - Jazz") {
		t.Errorf("listing missing from view:\n%s", m.View())
	}
}

func TestModel_RemoveThroughPositionField(t *testing.T) {
	m, _ := newTestModel(t)
	_ = m.Manager().Add("Queen", "Jazz")
	_ = m.Manager().Add("Abba", "Arrival")

	m = send(t, m,
		tea.KeyMsg{Type: tea.KeyShiftTab},
		typed("1"),
		tea.KeyMsg{Type: tea.KeyEnter},
	)

	if m.Focused() != FieldPosition {
		t.Fatalf("focus = %d, want position", m.Focused())
	}
	got := m.Manager().Listing(m.Manager().Selected())
	if len(got) != 1 || got[0] != "1. Abba - Arrival" {
		t.Errorf("listing = %v", got)
	}
	if m.Value(FieldPosition) != "" {
		t.Errorf("position input not cleared: %q", m.Value(FieldPosition))
	}
}

func TestModel_InvalidPositionKeepsInput(t *testing.T) {
	m, _ := newTestModel(t)

	m = send(t, m,
		tea.KeyMsg{Type: tea.KeyShiftTab},
		typed("7"),
		tea.KeyMsg{Type: tea.KeyEnter},
	)

	if m.Value(FieldPosition) != "7" {
		t.Errorf("position = %q, want 7", m.Value(FieldPosition))
	}
	events := m.Events()
	if len(events) == 0 || events[len(events)-1].Level != workspace.LevelError {
		t.Errorf("expected an error event, got %v", events)
	}
}

func TestModel_Suggestions(t *testing.T) {
	m, _ := newTestModel(t)
	_ = m.Manager().Add("Queen", "Jazz")
	_ = m.Manager().Add("Queensryche", "Empire")
	_ = m.Manager().Add("Abba", "Arrival")

	m = send(t, m, typed("qu"))
	if got := m.Suggestions(); len(got) != 2 || got[0] != "Queen" {
		t.Fatalf("suggestions = %v", got)
	}

	m = send(t, m,
		tea.KeyMsg{Type: tea.KeyCtrlDown},
		tea.KeyMsg{Type: tea.KeyCtrlRight},
	)
	if m.Value(FieldArtist) != "Queensryche" {
		t.Errorf("artist = %q, want Queensryche", m.Value(FieldArtist))
	}
	if m.Focused() != FieldAlbum {
		t.Errorf("focus = %d, want album", m.Focused())
	}
	if m.Suggestions() != nil {
		t.Errorf("suggestions should clear off the artist field, got %v", m.Suggestions())
	}
}

func TestModel_SwitchTabs(t *testing.T) {
	m, _ := newTestModel(t)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlN})
	if name := m.Manager().Selected().Name(); name != "Vinyl" {
		t.Fatalf("selected = %q, want Vinyl", name)
	}
	if !strings.Contains(m.View(), "Catalog is empty!") {
		t.Errorf("empty placeholder missing from view")
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlP}, tea.KeyMsg{Type: tea.KeyCtrlP})
	if name := m.Manager().Selected().Name(); name != "Vinyl" {
		t.Errorf("selected = %q, want Vinyl after wrapping", name)
	}
}

func TestModel_QuitSavesWhenConfigured(t *testing.T) {
	m, dir := newTestModel(t)
	_ = m.Manager().Add("Queen", "Jazz")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected tea.QuitMsg")
	}

	loaded, err := store.Load(filepath.Join(dir, "cd.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Len() != 1 {
		t.Errorf("saved entries = %d, want 1", loaded.Len())
	}
}

func TestModel_QuitStaysOpenWhenSaveFails(t *testing.T) {
	dir := t.TempDir()
	tabs := []*registry.Tab{registry.NewTab("CD", filepath.Join(dir, "missing", "cd.json"), nil)}
	m := NewModel(tabs, nil, logging.Nop(), nil)
	_ = m.Manager().Add("Queen", "Jazz")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	if cmd != nil {
		if _, ok := cmd().(tea.QuitMsg); ok {
			t.Fatal("quit although saving on exit failed")
		}
	}

	events := m.Events()
	if len(events) < 2 {
		t.Fatalf("events = %v, want the save error and a warning", events)
	}
	if events[len(events)-2].Level != workspace.LevelError {
		t.Errorf("save failure not shown: %v", events)
	}
	if events[len(events)-1].Level != workspace.LevelWarning {
		t.Errorf("expected a warning about unsaved changes, got %v", events[len(events)-1])
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("second esc should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected tea.QuitMsg on second esc")
	}
}

func TestModel_StartupErrorShown(t *testing.T) {
	dir := t.TempDir()
	tabs := []*registry.Tab{registry.NewTab("CD", filepath.Join(dir, "cd.json"), nil)}
	m := NewModel(tabs, nil, nil, store.ErrFormat)

	events := m.Events()
	if len(events) != 1 || events[0].Level != workspace.LevelWarning {
		t.Errorf("events = %v", events)
	}
}
