package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/handiism/record-catalog/internal/catalog"
	ioutils "github.com/handiism/record-catalog/internal/io"
)

var (
	// ErrIO wraps every filesystem failure while reading or writing a catalog file.
	ErrIO = errors.New("catalog file i/o failed")

	// ErrFormat is returned when a catalog file holds something other than
	// an object of string arrays. It is the same value as catalog.ErrFormat.
	ErrFormat = catalog.ErrFormat
)

const indent = "    "

// Marshal encodes c as an indented JSON object whose keys follow the
// catalog's iteration order. Non-ASCII text is written verbatim.
func Marshal(c *catalog.Catalog) ([]byte, error) {
	shelves := c.Snapshot()

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, shelf := range shelves {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString("\n" + indent)
		if err := writeString(&buf, shelf.Artist); err != nil {
			return nil, err
		}
		buf.WriteString(": [")
		for j, album := range shelf.Albums {
			if j > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString("\n" + indent + indent)
			if err := writeString(&buf, album); err != nil {
				return nil, err
			}
		}
		if len(shelf.Albums) > 0 {
			buf.WriteString("\n" + indent)
		}
		buf.WriteByte(']')
	}
	if len(shelves) > 0 {
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

// Unmarshal decodes a catalog file, keeping the key order of the document.
//
// When a key repeats, the artist keeps its first position and takes the
// last value, matching how the files were historically read.
func Unmarshal(data []byte) (*catalog.Catalog, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	if err := expectDelim(dec, '{', "top-level value must be an object"); err != nil {
		return nil, err
	}

	var order []string
	values := make(map[string][]string)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, formatErr(err.Error())
		}
		artist, ok := tok.(string)
		if !ok {
			return nil, formatErr("object key is not a string")
		}

		albums, err := decodeAlbums(dec, artist)
		if err != nil {
			return nil, err
		}
		if _, seen := values[artist]; !seen {
			order = append(order, artist)
		}
		values[artist] = albums
	}
	if err := expectDelim(dec, '}', "unterminated object"); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, formatErr("unexpected data after top-level object")
	}

	shelves := make([]catalog.Shelf, 0, len(order))
	for _, artist := range order {
		shelves = append(shelves, catalog.Shelf{Artist: artist, Albums: values[artist]})
	}
	return catalog.FromSnapshot(shelves)
}

// Save writes c to path, fully replacing any previous content.
//
// The write goes through a temporary file and a rename, so no sidecar file
// is left behind. Writers are serialized by the data directory lock
// (workspace.AcquireLock). Any filesystem failure is wrapped in ErrIO.
func Save(c *catalog.Catalog, path string) error {
	data, err := Marshal(c)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	if err := ioutils.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrIO, path, err)
	}
	return nil
}

// Load reads the catalog stored at path.
//
// A missing file yields an empty catalog and no error. Unreadable files
// return ErrIO; malformed content returns ErrFormat.
func Load(path string) (*catalog.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return catalog.New(), nil
		}
		return nil, fmt.Errorf("%w: read %s: %w", ErrIO, path, err)
	}

	c, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Quarantine copies a file that failed to load next to itself with a
// ".corrupt-<unix time>" suffix and returns the copy's path.
func Quarantine(path string) (string, error) {
	dst := fmt.Sprintf("%s.corrupt-%d", path, time.Now().Unix())
	if err := ioutils.CopyFile(path, dst); err != nil {
		return "", fmt.Errorf("%w: quarantine %s: %w", ErrIO, path, err)
	}
	return dst, nil
}

func decodeAlbums(dec *json.Decoder, artist string) ([]string, error) {
	if err := expectDelim(dec, '[', fmt.Sprintf("value for %q must be an array", artist)); err != nil {
		return nil, err
	}

	albums := make([]string, 0)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, formatErr(err.Error())
		}
		album, ok := tok.(string)
		if !ok {
			return nil, formatErr(fmt.Sprintf("albums of %q must be strings", artist))
		}
		albums = append(albums, album)
	}

	if err := expectDelim(dec, ']', fmt.Sprintf("unterminated array for %q", artist)); err != nil {
		return nil, err
	}
	return albums, nil
}

func expectDelim(dec *json.Decoder, want json.Delim, reason string) error {
	tok, err := dec.Token()
	if err != nil {
		return formatErr(reason)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return formatErr(reason)
	}
	return nil
}

func writeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}

func formatErr(reason string) error {
	return fmt.Errorf("%w: %s", ErrFormat, reason)
}
