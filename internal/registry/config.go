package registry

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"unicode"

	ioutils "github.com/handiism/record-catalog/internal/io"
	"github.com/handiism/record-catalog/internal/logging"
)

// ErrConfigFormat is returned for a tabs file that does not follow the
// count-then-entries layout.
var ErrConfigFormat = errors.New("invalid tabs configuration")

// TabSpec names one tab and the file backing it.
type TabSpec struct {
	Name string
	File string
}

// DefaultTabSpecs returns the tabs used when no valid configuration exists.
func DefaultTabSpecs() []TabSpec {
	return []TabSpec{
		{Name: "CD", File: "cd_catalog.json"},
		{Name: "Vinyl", File: "vinyl_catalog.json"},
		{Name: "Cassette", File: "cassette_catalog.json"},
	}
}

// ParseConfig reads a tabs configuration.
//
// The first non-blank line holds a positive tab count K. Each of the next
// K non-blank lines holds a display name and a filename; the filename is
// the last whitespace-separated token and the name is everything before
// it, so names may contain spaces. Lines after the K-th entry are ignored.
func ParseConfig(r io.Reader) ([]TabSpec, error) {
	scanner := bufio.NewScanner(r)

	lineNo := 0
	next := func() (string, bool) {
		for scanner.Scan() {
			lineNo++
			line := strings.TrimSpace(scanner.Text())
			if line != "" {
				return line, true
			}
		}
		return "", false
	}

	countLine, ok := next()
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read tabs configuration: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: file is empty", ErrConfigFormat)
	}

	count, err := strconv.Atoi(countLine)
	if err != nil {
		return nil, fmt.Errorf("%w: line %d: tab count %q is not an integer", ErrConfigFormat, lineNo, countLine)
	}
	if count <= 0 {
		return nil, fmt.Errorf("%w: line %d: tab count must be positive, got %d", ErrConfigFormat, lineNo, count)
	}

	specs := make([]TabSpec, 0, count)
	for len(specs) < count {
		line, ok := next()
		if !ok {
			if err := scanner.Err(); err != nil {
				return nil, fmt.Errorf("read tabs configuration: %w", err)
			}
			return nil, fmt.Errorf("%w: declared %d tabs, found %d", ErrConfigFormat, count, len(specs))
		}

		spec, ok := parseEntry(line)
		if !ok {
			return nil, fmt.Errorf("%w: line %d: expected \"<name> <filename>\", got %q", ErrConfigFormat, lineNo, line)
		}
		specs = append(specs, spec)
	}

	return specs, nil
}

// FormatConfig renders specs in the layout ParseConfig reads.
func FormatConfig(specs []TabSpec) string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(len(specs)))
	sb.WriteString("\n")
	for _, spec := range specs {
		sb.WriteString(spec.Name)
		sb.WriteString(" ")
		sb.WriteString(spec.File)
		sb.WriteString("\n")
	}
	return sb.String()
}

// LoadConfig parses the tabs configuration at path.
// A missing file is reported with an error satisfying fs.ErrNotExist.
func LoadConfig(path string) ([]TabSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	specs, err := ParseConfig(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return specs, nil
}

// WriteConfig writes specs to path, replacing any existing file.
func WriteConfig(path string, specs []TabSpec) error {
	return ioutils.WriteFileAtomic(path, []byte(FormatConfig(specs)), 0o644)
}

// ResolveConfig returns the tabs described at path, falling back to
// DefaultTabSpecs when the file is missing or malformed.
//
// A missing file is created with the defaults so later runs see the same
// tabs. A malformed file is left untouched.
func ResolveConfig(path string, logger *slog.Logger) []TabSpec {
	if logger == nil {
		logger = logging.Nop()
	}

	specs, err := LoadConfig(path)
	if err == nil {
		return specs
	}

	defaults := DefaultTabSpecs()
	if errors.Is(err, fs.ErrNotExist) {
		if werr := WriteConfig(path, defaults); werr != nil {
			logger.Warn("could not write default tabs configuration", "path", path, "error", werr)
		} else {
			logger.Info("wrote default tabs configuration", "path", path, "tabs", len(defaults))
		}
		return defaults
	}

	logger.Warn("tabs configuration unusable, using defaults", "path", path, "error", err)
	return defaults
}

func parseEntry(line string) (TabSpec, bool) {
	cut := strings.LastIndexFunc(line, unicode.IsSpace)
	if cut < 0 {
		return TabSpec{}, false
	}

	name := strings.TrimSpace(line[:cut])
	file := strings.TrimSpace(line[cut:])
	if name == "" || file == "" {
		return TabSpec{}, false
	}
	return TabSpec{Name: name, File: file}, true
}
