package export

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/handiism/record-catalog/internal/catalog"
	ioutils "github.com/handiism/record-catalog/internal/io"
)

// EmptyPlaceholder is shown instead of a listing for an empty catalog.
const EmptyPlaceholder = "Catalog is empty!"

// Format represents supported export formats.
//
// Each format has a different audience:
//   - Text: numbered listing for printing or sharing
//   - YAML: ordered artist mapping for other tools
type Format int

const (
	// FormatText creates .txt files with a numbered listing.
	FormatText Format = iota

	// FormatYAML creates .yaml files mapping artists to album lists.
	FormatYAML
)

// ParseFormat maps a configured format name to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text", "txt":
		return FormatText, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return FormatText, fmt.Errorf("export format: unsupported value %q", name)
	}
}

// Extension returns the file extension for the format, including the dot.
func (f Format) Extension() string {
	switch f {
	case FormatYAML:
		return ".yaml"
	default:
		return ".txt"
	}
}

// String returns the canonical format name.
func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	default:
		return "text"
	}
}

// Exporter renders catalogs in one format.
//
// Example:
//
//	exp := NewExporter(FormatText)
//	data, _ := exp.Render(tab.Catalog())
//	os.WriteFile(filepath.Join(dir, FileName(tab.Path(), FormatText)), data, 0644)
//
//	// Result:
//	// Catalog:
//	// ----------------------------------------
//	// 1. Queen - A Night at the Opera
//	// ----------------------------------------
type Exporter struct {
	format Format
}

// NewExporter creates an Exporter for format.
func NewExporter(format Format) *Exporter {
	return &Exporter{format: format}
}

// Format returns the exporter's format.
func (e *Exporter) Format() Format {
	return e.format
}

// Render produces the export document for c.
func (e *Exporter) Render(c *catalog.Catalog) ([]byte, error) {
	switch e.format {
	case FormatYAML:
		return renderYAML(c)
	default:
		return []byte(renderText(c)), nil
	}
}

// Lines returns the numbered "N. Artist - Album" lines of c, or a single
// placeholder line when c is empty.
func Lines(c *catalog.Catalog) []string {
	entries := c.Flatten()
	if len(entries) == 0 {
		return []string{EmptyPlaceholder}
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%d. %s - %s", e.Position, e.Artist, e.Album))
	}
	return lines
}

// FileName returns the export file name for a tab backed by backingPath:
// the backing file's stem with the format's extension.
//
//	FileName("/data/cd_catalog.json", FormatText) // "cd_catalog.txt"
func FileName(backingPath string, format Format) string {
	base := filepath.Base(backingPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	stem = ioutils.SanitizeFileName(stem)
	if stem == "" {
		stem = "catalog"
	}
	return stem + format.Extension()
}

// renderText generates the plain text listing.
//
//	Catalog:
//	----------------------------------------
//	1. Artist - Album
//	----------------------------------------
func renderText(c *catalog.Catalog) string {
	if c.Len() == 0 {
		return EmptyPlaceholder + "\n"
	}

	rule := strings.Repeat("-", 40)

	var sb strings.Builder
	sb.WriteString("Catalog:\n")
	sb.WriteString(rule + "\n")
	for _, line := range Lines(c) {
		sb.WriteString(line + "\n")
	}
	sb.WriteString(rule + "\n")
	return sb.String()
}

// renderYAML generates an ordered mapping of artists to album sequences.
// Nodes are built by hand because yaml.v3 sorts plain Go map keys.
func renderYAML(c *catalog.Catalog) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, shelf := range c.Snapshot() {
		albums := &yaml.Node{Kind: yaml.SequenceNode}
		for _, album := range shelf.Albums {
			albums.Content = append(albums.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: album})
		}
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: shelf.Artist}
		root.Content = append(root.Content, key, albums)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
