// Package export renders catalogs into files meant for people or other
// tools rather than for loading back.
//
// Supported formats:
//   - Text: the numbered listing shown in the UI, framed by rules
//   - YAML: an ordered artist to album-list mapping
//
// Example:
//
//	format, _ := export.ParseFormat("text")
//	data, err := export.NewExporter(format).Render(tab.Catalog())
//	name := export.FileName(tab.Path(), format) // cd_catalog.txt
package export
