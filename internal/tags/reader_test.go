package tags

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2"

	"github.com/handiism/record-catalog/internal/catalog"
)

func writeTaggedFile(t *testing.T, path, artist, albumArtist, album string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}

	tag := id3v2.NewEmptyTag()
	if artist != "" {
		tag.SetArtist(artist)
	}
	if albumArtist != "" {
		tag.AddTextFrame("TPE2", id3v2.EncodingUTF8, albumArtist)
	}
	if album != "" {
		tag.SetAlbum(album)
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := tag.WriteTo(f); err != nil {
		t.Fatalf("write tag: %v", err)
	}
	// A few bytes standing in for audio frames.
	if _, err := f.Write([]byte{0xff, 0xfb, 0x90, 0x00}); err != nil {
		t.Fatal(err)
	}
}

func createTestLibrary(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeTaggedFile(t, filepath.Join(dir, "queen", "01.mp3"), "Queen", "", "Jazz")
	writeTaggedFile(t, filepath.Join(dir, "queen", "02.mp3"), "Queen", "", "Jazz")
	writeTaggedFile(t, filepath.Join(dir, "abba", "01.MP3"), "Abba", "", "Arrival")
	writeTaggedFile(t, filepath.Join(dir, "various", "01.mp3"), "", "Various Artists", "Now 1")
	writeTaggedFile(t, filepath.Join(dir, "untagged", "01.mp3"), "Nobody", "", "")
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not audio"), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestReader_ReadDir(t *testing.T) {
	dir := createTestLibrary(t)

	scan, err := NewReader(nil).ReadDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}

	if scan.Files != 5 {
		t.Errorf("Files = %d, want 5", scan.Files)
	}
	if scan.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", scan.Skipped)
	}

	want := []Pair{
		{"Abba", "Arrival"},
		{"Queen", "Jazz"},
		{"Various Artists", "Now 1"},
	}
	if len(scan.Pairs) != len(want) {
		t.Fatalf("Pairs = %v, want %v", scan.Pairs, want)
	}
	for i := range want {
		if scan.Pairs[i] != want[i] {
			t.Errorf("Pairs[%d] = %v, want %v", i, scan.Pairs[i], want[i])
		}
	}
}

func TestReader_PreferAlbumArtist(t *testing.T) {
	dir := t.TempDir()
	writeTaggedFile(t, filepath.Join(dir, "a.mp3"), "Freddie Mercury", "Queen", "Innuendo")

	scan, err := NewReader(&ReaderConfig{PreferAlbumArtist: true, MaxConcurrent: 2}).ReadDir(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(scan.Pairs) != 1 || scan.Pairs[0].Artist != "Queen" {
		t.Errorf("Pairs = %v, want album artist Queen", scan.Pairs)
	}

	scan, err = NewReader(nil).ReadDir(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(scan.Pairs) != 1 || scan.Pairs[0].Artist != "Freddie Mercury" {
		t.Errorf("Pairs = %v, want lead artist", scan.Pairs)
	}
}

func TestReader_Import(t *testing.T) {
	dir := createTestLibrary(t)
	c := catalog.New()
	if err := c.Add("Queen", "Jazz"); err != nil {
		t.Fatal(err)
	}

	report, err := NewReader(nil).Import(context.Background(), dir, c)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if report.Added != 2 || report.Duplicates != 1 || report.Skipped != 1 {
		t.Errorf("Report = %+v, want Added 2, Duplicates 1, Skipped 1", report)
	}
	if c.Len() != 3 {
		t.Errorf("catalog Len() = %d, want 3", c.Len())
	}
}

func TestReader_MissingDir(t *testing.T) {
	_, err := NewReader(nil).ReadDir(context.Background(), filepath.Join(t.TempDir(), "absent"))
	if err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestReader_CancelledContext(t *testing.T) {
	dir := createTestLibrary(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewReader(nil).ReadDir(ctx, dir); err == nil {
		t.Error("expected error for cancelled context")
	}
}
