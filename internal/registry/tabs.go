package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/handiism/record-catalog/internal/catalog"
	ioutils "github.com/handiism/record-catalog/internal/io"
	"github.com/handiism/record-catalog/internal/logging"
	"github.com/handiism/record-catalog/internal/store"
)

// maxConcurrentSaves bounds how many catalog files SaveAll writes at once.
const maxConcurrentSaves = 4

// Tab is a catalog bound to a display name and a backing file.
// Name and path are fixed at construction.
type Tab struct {
	name    string
	path    string
	catalog *catalog.Catalog
}

// NewTab creates a Tab. A nil catalog is replaced by an empty one.
func NewTab(name, path string, c *catalog.Catalog) *Tab {
	if c == nil {
		c = catalog.New()
	}
	return &Tab{name: name, path: path, catalog: c}
}

// Name returns the display name.
func (t *Tab) Name() string { return t.name }

// Path returns the backing file path.
func (t *Tab) Path() string { return t.path }

// Catalog returns the tab's catalog.
func (t *Tab) Catalog() *catalog.Catalog { return t.catalog }

// Save writes the tab's catalog to its backing file.
func (t *Tab) Save() error {
	return store.Save(t.catalog, t.path)
}

// BuildTabs assembles the tabs described by the configuration at
// configPath, resolving relative filenames against baseDir.
//
// Every tab is returned even when its file could not be loaded; such tabs
// start empty. A corrupt file is copied aside first so a later save does
// not destroy it. The returned error joins every load problem and is
// meant for display, not for aborting startup.
func BuildTabs(configPath, baseDir string, logger *slog.Logger) ([]*Tab, error) {
	logger = logging.Component(logger, "registry")

	if err := ioutils.EnsureDir(baseDir); err != nil {
		logger.Warn("could not create data directory", "dir", baseDir, "error", err)
	}

	specs := ResolveConfig(configPath, logger)

	tabs := make([]*Tab, 0, len(specs))
	var errs []error
	for _, spec := range specs {
		path := spec.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}

		c, err := store.Load(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("tab %q: %w", spec.Name, err))
			c = catalog.New()

			if errors.Is(err, store.ErrFormat) {
				if backup, qerr := store.Quarantine(path); qerr != nil {
					logger.Warn("could not back up corrupt catalog", "tab", spec.Name, "path", path, "error", qerr)
				} else {
					logger.Warn("corrupt catalog backed up, starting empty", "tab", spec.Name, "path", path, "backup", backup)
				}
			} else {
				logger.Warn("catalog unreadable, starting empty", "tab", spec.Name, "path", path, "error", err)
			}
		} else {
			logger.Debug("catalog loaded", "tab", spec.Name, "path", path, "entries", c.Len())
		}

		tabs = append(tabs, NewTab(spec.Name, path, c))
	}

	logger.Debug("tabs ready", "count", len(tabs))
	return tabs, errors.Join(errs...)
}

// SaveAll writes every tab to its backing file.
//
// All tabs are attempted even if some fail. It returns true only when every
// save succeeded; the error joins the failures in tab order.
func SaveAll(tabs []*Tab) (bool, error) {
	errs := make([]error, len(tabs))

	var g errgroup.Group
	g.SetLimit(maxConcurrentSaves)
	for i, tab := range tabs {
		g.Go(func() error {
			if err := tab.Save(); err != nil {
				errs[i] = fmt.Errorf("tab %q: %w", tab.Name(), err)
			}
			return nil
		})
	}
	_ = g.Wait()

	err := errors.Join(errs...)
	return err == nil, err
}
