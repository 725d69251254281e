// Package tags imports catalog entries from tagged MP3 files.
//
// # Reading tags
//
// The Reader walks a directory, parses ID3v2 tags with the id3v2 library
// and turns each file into an (artist, album) pair:
//
//	reader := tags.NewReader(tags.DefaultReaderConfig())
//	scan, err := reader.ReadDir(ctx, "/music/rips")
//
// Frames used:
//   - TPE1 (lead artist), with TPE2 (album artist) as fallback
//   - TALB (album title)
//
// # Importing
//
// Import adds the distinct pairs to a catalog; tracks of the same album
// collapse into one entry and albums already listed count as duplicates:
//
//	report, err := reader.Import(ctx, "/music/rips", tab.Catalog())
package tags
