package tags

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bogem/id3v2"
	"golang.org/x/sync/errgroup"

	"github.com/handiism/record-catalog/internal/catalog"
)

// ReaderConfig controls how artist and album are taken from ID3 frames.
type ReaderConfig struct {
	// PreferAlbumArtist reads TPE2 (album artist) before TPE1 (lead artist).
	// Compilations usually carry the right shelf name in TPE2.
	PreferAlbumArtist bool

	// MaxConcurrent limits how many files are parsed at once.
	MaxConcurrent int
}

// DefaultReaderConfig returns the default reader configuration.
//
// By default TPE1 is used and TPE2 is only a fallback.
func DefaultReaderConfig() *ReaderConfig {
	return &ReaderConfig{
		PreferAlbumArtist: false,
		MaxConcurrent:     8,
	}
}

// Pair is an artist and album read from one or more files.
type Pair struct {
	Artist string
	Album  string
}

// ScanResult is the outcome of reading a directory.
type ScanResult struct {
	// Pairs are the distinct pairs found, in sorted file path order.
	Pairs []Pair

	// Files is the number of .mp3 files seen.
	Files int

	// Skipped counts files without a usable artist and album.
	Skipped int
}

// Report summarizes an import into a catalog.
type Report struct {
	Added      int
	Duplicates int
	Skipped    int
}

// Reader extracts catalog pairs from tagged MP3 files.
//
// Example:
//
//	reader := NewReader(DefaultReaderConfig())
//	report, err := reader.Import(ctx, "/music/rips", tab.Catalog())
//	fmt.Printf("added %d, already listed %d\n", report.Added, report.Duplicates)
type Reader struct {
	config *ReaderConfig
}

// NewReader creates a new Reader with the given configuration.
//
// If config is nil, DefaultReaderConfig() is used.
func NewReader(config *ReaderConfig) *Reader {
	if config == nil {
		config = DefaultReaderConfig()
	}
	if config.MaxConcurrent < 1 {
		config.MaxConcurrent = 1
	}
	return &Reader{config: config}
}

// ReadDir walks dir recursively and reads the tags of every .mp3 file.
//
// Files that cannot be opened or lack an artist or album are skipped.
// The walk itself failing (for example dir missing) is an error.
func (r *Reader) ReadDir(ctx context.Context, dir string) (ScanResult, error) {
	paths, err := findMP3s(dir)
	if err != nil {
		return ScanResult{}, err
	}

	found := make([]*Pair, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.config.MaxConcurrent)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			pair, ok := r.readFile(path)
			if ok {
				found[i] = &pair
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ScanResult{}, err
	}

	result := ScanResult{Files: len(paths)}
	seen := make(map[Pair]struct{})
	for _, pair := range found {
		if pair == nil {
			result.Skipped++
			continue
		}
		if _, dup := seen[*pair]; dup {
			continue
		}
		seen[*pair] = struct{}{}
		result.Pairs = append(result.Pairs, *pair)
	}
	return result, nil
}

// Import reads dir and adds every pair to c.
// Pairs already in c are counted as duplicates, not errors.
func (r *Reader) Import(ctx context.Context, dir string, c *catalog.Catalog) (Report, error) {
	scan, err := r.ReadDir(ctx, dir)
	if err != nil {
		return Report{}, err
	}

	report := Report{Skipped: scan.Skipped}
	for _, pair := range scan.Pairs {
		err := c.Add(pair.Artist, pair.Album)
		switch {
		case err == nil:
			report.Added++
		case errors.Is(err, catalog.ErrDuplicate):
			report.Duplicates++
		default:
			report.Skipped++
		}
	}
	return report, nil
}

// readFile returns the artist and album of one file.
func (r *Reader) readFile(path string) (Pair, bool) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return Pair{}, false
	}
	defer tag.Close()

	lead := strings.TrimSpace(tag.Artist())
	albumArtist := strings.TrimSpace(tag.GetTextFrame("TPE2").Text)

	artist := lead
	if r.config.PreferAlbumArtist && albumArtist != "" {
		artist = albumArtist
	}
	if artist == "" {
		artist = albumArtist
	}

	album := strings.TrimSpace(tag.Album())
	if artist == "" || album == "" {
		return Pair{}, false
	}
	return Pair{Artist: artist, Album: album}, true
}

func findMP3s(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".mp3") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	sort.Strings(paths)
	return paths, nil
}
