package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/cases"
)

var (
	// ErrValidation is returned when an artist or album is blank.
	ErrValidation = errors.New("artist and album are required")

	// ErrDuplicate is returned when the album already exists for the artist.
	// The catalog is left unchanged.
	ErrDuplicate = errors.New("album already in catalog")

	// ErrOutOfRange is returned for a position outside the current listing.
	ErrOutOfRange = errors.New("position out of range")

	// ErrFormat is returned when persisted data does not describe a catalog.
	ErrFormat = errors.New("invalid catalog data")
)

// Entry is one numbered (artist, album) pair of a flattened catalog.
type Entry struct {
	// Position is the 1-based index in the current listing.
	Position int

	Artist string
	Album  string
}

// Shelf is one artist with its albums, the unit of a catalog snapshot.
type Shelf struct {
	Artist string
	Albums []string
}

// Catalog is an artist-keyed album collection with stable iteration order.
//
// Catalog is safe for concurrent use; every method holds the catalog lock
// for its whole duration, so RemoveAt's lookup and removal are atomic.
type Catalog struct {
	mu      sync.Mutex
	artists []string
	albums  map[string][]string
}

// New creates an empty Catalog.
func New() *Catalog {
	return &Catalog{albums: make(map[string][]string)}
}

// Add appends album to artist's list, creating the artist if needed.
//
// Both values are trimmed before use and stored trimmed. Matching of
// existing albums is exact and case-sensitive.
func (c *Catalog) Add(artist, album string) error {
	artist = strings.TrimSpace(artist)
	album = strings.TrimSpace(album)
	if artist == "" || album == "" {
		return ErrValidation
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	list, ok := c.albums[artist]
	if ok && contains(list, album) {
		return fmt.Errorf("%w: %s - %s", ErrDuplicate, artist, album)
	}
	if !ok {
		c.artists = append(c.artists, artist)
	}
	c.albums[artist] = append(list, album)
	return nil
}

// RemoveAt deletes the entry at the 1-based position of the current
// listing and returns it. An artist left without albums is removed.
func (c *Catalog) RemoveAt(position int) (Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if position < 1 {
		return Entry{}, fmt.Errorf("%w: position must be positive, got %d", ErrOutOfRange, position)
	}

	remaining := position
	for i, artist := range c.artists {
		list := c.albums[artist]
		if remaining > len(list) {
			remaining -= len(list)
			continue
		}

		idx := remaining - 1
		entry := Entry{Position: position, Artist: artist, Album: list[idx]}

		list = append(list[:idx:idx], list[idx+1:]...)
		if len(list) == 0 {
			delete(c.albums, artist)
			c.artists = append(c.artists[:i:i], c.artists[i+1:]...)
		} else {
			c.albums[artist] = list
		}
		return entry, nil
	}

	return Entry{}, fmt.Errorf("%w: %d exceeds %d entries", ErrOutOfRange, position, position-remaining)
}

// Sort orders artists ascending by ordinal string comparison.
// Album order within an artist is not changed.
func (c *Catalog) Sort() {
	c.mu.Lock()
	defer c.mu.Unlock()

	sort.Strings(c.artists)
}

// Flatten returns the numbered listing in current order.
// An empty catalog yields an empty slice.
func (c *Catalog) Flatten() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := make([]Entry, 0, c.lenLocked())
	for _, artist := range c.artists {
		for _, album := range c.albums[artist] {
			entries = append(entries, Entry{
				Position: len(entries) + 1,
				Artist:   artist,
				Album:    album,
			})
		}
	}
	return entries
}

// Len returns the number of (artist, album) pairs.
func (c *Catalog) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lenLocked()
}

// Artists returns artist names in iteration order.
func (c *Catalog) Artists() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]string(nil), c.artists...)
}

// Albums returns a copy of the albums listed for artist.
func (c *Catalog) Albums(artist string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]string(nil), c.albums[artist]...)
}

// ArtistsWithPrefix returns the sorted artist names starting with prefix,
// compared case-insensitively. An empty prefix matches every artist.
func (c *Catalog) ArtistsWithPrefix(prefix string) []string {
	fold := cases.Fold()
	want := fold.String(strings.TrimSpace(prefix))

	matches := make([]string, 0)
	for _, artist := range c.Artists() {
		if strings.HasPrefix(fold.String(artist), want) {
			matches = append(matches, artist)
		}
	}
	sort.Strings(matches)
	return matches
}

// Snapshot returns the catalog contents in iteration order.
// The result shares no memory with the catalog.
func (c *Catalog) Snapshot() []Shelf {
	c.mu.Lock()
	defer c.mu.Unlock()

	shelves := make([]Shelf, 0, len(c.artists))
	for _, artist := range c.artists {
		shelves = append(shelves, Shelf{
			Artist: artist,
			Albums: append([]string(nil), c.albums[artist]...),
		})
	}
	return shelves
}

// FromSnapshot builds a Catalog from shelves in the given order.
//
// Names are trimmed, repeated albums after the first are dropped, blank
// albums are dropped, and artists with no remaining albums are skipped.
// A shelf repeating an earlier artist extends that artist's list.
// A blank artist name is an ErrFormat.
func FromSnapshot(shelves []Shelf) (*Catalog, error) {
	c := New()
	for i, shelf := range shelves {
		artist := strings.TrimSpace(shelf.Artist)
		if artist == "" {
			return nil, fmt.Errorf("%w: shelf %d has an empty artist name", ErrFormat, i+1)
		}
		for _, album := range shelf.Albums {
			err := c.Add(artist, album)
			if err != nil && !errors.Is(err, ErrDuplicate) && !errors.Is(err, ErrValidation) {
				return nil, err
			}
		}
	}
	return c, nil
}

func (c *Catalog) lenLocked() int {
	n := 0
	for _, artist := range c.artists {
		n += len(c.albums[artist])
	}
	return n
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
