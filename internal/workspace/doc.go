// Package workspace routes catalog actions to the selected tab.
//
// A Manager owns the list of tabs built by the registry, tracks which one
// is selected and turns every user action (add, remove, sort, save,
// export, import) into an Event the interface can show. AcquireLock keeps
// an interactive session and mutating commands from editing the same data
// directory at once.
package workspace
