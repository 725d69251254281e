package workspace

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"

	ioutils "github.com/handiism/record-catalog/internal/io"
)

// LockFileName is the file under the data directory held while an
// interactive session is running.
const LockFileName = ".catalog.lock"

// ErrBusy is returned when another session holds the data directory.
var ErrBusy = errors.New("catalog data directory is in use by another session")

// Lock is an exclusive hold on a data directory.
type Lock struct {
	flock *flock.Flock
}

// AcquireLock takes the session lock for dataDir without blocking.
func AcquireLock(dataDir string) (*Lock, error) {
	if err := ioutils.EnsureDir(dataDir); err != nil {
		return nil, fmt.Errorf("ensure data directory: %w", err)
	}

	fl := flock.New(filepath.Join(dataDir, LockFileName))
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", fl.Path(), err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrBusy, dataDir)
	}
	return &Lock{flock: fl}, nil
}

// Release gives up the lock. It is safe to call more than once.
func (l *Lock) Release() error {
	if l == nil || l.flock == nil {
		return nil
	}
	return l.flock.Unlock()
}
