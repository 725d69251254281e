// Package tui provides a Bubble Tea terminal user interface for the record
// catalog.
//
// One screen shows the tab bar, the artist, album and position inputs,
// artist completions for the selected tab, the numbered listing and the
// most recent action messages. All catalog work goes through a
// workspace.Manager.
package tui
