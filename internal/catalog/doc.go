// Package catalog defines the in-memory record collection used throughout
// record-catalog.
//
// # Catalog
//
// A Catalog maps artist names to an ordered list of album titles. Artists
// keep insertion order until Sort is called:
//
//	c := catalog.New()
//	_ = c.Add("Queen", "A Night at the Opera")
//	_ = c.Add("Abba", "Arrival")
//	c.Sort()
//
// # Positional addressing
//
// Flatten numbers every (artist, album) pair from 1 in the current order.
// RemoveAt takes a position from that numbering. Positions are recomputed
// on every call, so a position read before a mutation must not be reused
// after it:
//
//	for _, e := range c.Flatten() {
//	    fmt.Printf("%d. %s - %s\n", e.Position, e.Artist, e.Album)
//	}
//	removed, err := c.RemoveAt(1)
//	// call Flatten again before the next RemoveAt
//
// # Errors
//
// Failures are returned as wrapped sentinels:
//   - ErrValidation - artist or album is blank
//   - ErrDuplicate - the album is already listed for the artist (no-op)
//   - ErrOutOfRange - the position is outside the current listing
//   - ErrFormat - a snapshot could not be turned into a catalog
package catalog
