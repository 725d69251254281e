package export

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/handiism/record-catalog/internal/catalog"
)

func createTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c := catalog.New()
	for _, pair := range [][2]string{
		{"Queen", "A Night at the Opera"},
		{"Abba", "Arrival"},
		{"Queen", "Jazz"},
	} {
		if err := c.Add(pair[0], pair[1]); err != nil {
			t.Fatal(err)
		}
	}
	return c
}

func TestExporter_Text(t *testing.T) {
	content, err := NewExporter(FormatText).Render(createTestCatalog(t))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	rule := strings.Repeat("-", 40)
	want := "Catalog:\n" + rule + "\n" +
		"1. Queen - A Night at the Opera\n" +
		"2. Queen - Jazz\n" +
		"3. Abba - Arrival\n" +
		rule + "\n"
	if string(content) != want {
		t.Errorf("Render() =\n%s\nwant\n%s", content, want)
	}
}

func TestExporter_TextEmpty(t *testing.T) {
	content, err := NewExporter(FormatText).Render(catalog.New())
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != EmptyPlaceholder+"\n" {
		t.Errorf("Render() = %q", content)
	}
}

func TestExporter_YAMLKeepsOrder(t *testing.T) {
	c := createTestCatalog(t)
	if err := c.Add("Кино", "Группа крови"); err != nil {
		t.Fatal(err)
	}

	content, err := NewExporter(FormatYAML).Render(c)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(content, &doc); err != nil {
		t.Fatalf("output is not valid YAML: %v\n%s", err, content)
	}
	root := doc.Content[0]
	var keys []string
	for i := 0; i < len(root.Content); i += 2 {
		keys = append(keys, root.Content[i].Value)
	}
	wantKeys := []string{"Queen", "Abba", "Кино"}
	if strings.Join(keys, ",") != strings.Join(wantKeys, ",") {
		t.Errorf("keys = %v, want %v", keys, wantKeys)
	}

	var values map[string][]string
	if err := yaml.Unmarshal(content, &values); err != nil {
		t.Fatal(err)
	}
	if got := values["Queen"]; len(got) != 2 || got[0] != "A Night at the Opera" || got[1] != "Jazz" {
		t.Errorf("Queen albums = %v", got)
	}
	if got := values["Кино"]; len(got) != 1 || got[0] != "Группа крови" {
		t.Errorf("Кино albums = %v", got)
	}
}

func TestExporter_YAMLQuotesAmbiguousScalars(t *testing.T) {
	c := catalog.New()
	_ = c.Add("Yes", "90125")
	_ = c.Add("null", "true")

	content, err := NewExporter(FormatYAML).Render(c)
	if err != nil {
		t.Fatal(err)
	}

	var values map[string][]string
	if err := yaml.Unmarshal(content, &values); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, content)
	}
	if values["Yes"][0] != "90125" || values["null"][0] != "true" {
		t.Errorf("scalars not preserved as strings: %v", values)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"TXT", FormatText, false},
		{"yaml", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"pdf", FormatText, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		path   string
		format Format
		want   string
	}{
		{"/data/cd_catalog.json", FormatText, "cd_catalog.txt"},
		{"vinyl_catalog.json", FormatYAML, "vinyl_catalog.yaml"},
		{"/data/noext", FormatText, "noext.txt"},
		{"/data/.json", FormatText, "catalog.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FileName(tt.path, tt.format); got != tt.want {
				t.Errorf("FileName(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestLines(t *testing.T) {
	if got := Lines(catalog.New()); len(got) != 1 || got[0] != EmptyPlaceholder {
		t.Errorf("Lines(empty) = %v", got)
	}
	got := Lines(createTestCatalog(t))
	if len(got) != 3 || got[2] != "3. Abba - Arrival" {
		t.Errorf("Lines() = %v", got)
	}
}
