package registry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/record-catalog/internal/catalog"
	"github.com/handiism/record-catalog/internal/logging"
	"github.com/handiism/record-catalog/internal/store"
)

func TestParseConfig(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []TabSpec
		wantErr bool
	}{
		{
			name:  "two tabs",
			input: "2\nRock rock.json\nJazz jazz.json\n",
			want:  []TabSpec{{"Rock", "rock.json"}, {"Jazz", "jazz.json"}},
		},
		{
			name:  "names with spaces and blank lines",
			input: "\n  2\n\nRare  Pressings\trare.json\n\n Live Bootlegs   live.json  \n",
			want:  []TabSpec{{"Rare  Pressings", "rare.json"}, {"Live Bootlegs", "live.json"}},
		},
		{
			name:  "extra lines ignored",
			input: "1\nCD cd.json\nVinyl vinyl.json\n",
			want:  []TabSpec{{"CD", "cd.json"}},
		},
		{name: "zero count", input: "0\n", wantErr: true},
		{name: "negative count", input: "-2\nA a.json\nB b.json\n", wantErr: true},
		{name: "empty file", input: "", wantErr: true},
		{name: "only blanks", input: "\n  \n\t\n", wantErr: true},
		{name: "non integer", input: "two\nA a.json\nB b.json\n", wantErr: true},
		{name: "too few lines", input: "3\nA a.json\nB b.json\n", wantErr: true},
		{name: "missing filename", input: "2\nA a.json\nlonely\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseConfig(strings.NewReader(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrConfigFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatConfig_RoundTrip(t *testing.T) {
	specs := []TabSpec{{"Rare Pressings", "rare.json"}, {"CD", "cd.json"}}
	got, err := ParseConfig(strings.NewReader(FormatConfig(specs)))
	require.NoError(t, err)
	assert.Equal(t, specs, got)
}

func TestResolveConfig_BootstrapsMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tabs.conf")

	specs := ResolveConfig(path, logging.Nop())
	assert.Equal(t, DefaultTabSpecs(), specs)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "3\nCD cd_catalog.json\nVinyl vinyl_catalog.json\nCassette cassette_catalog.json\n", string(data))
}

func TestResolveConfig_MalformedFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tabs.conf")
	require.NoError(t, os.WriteFile(path, []byte("0\n"), 0o644))

	specs := ResolveConfig(path, nil)
	assert.Equal(t, DefaultTabSpecs(), specs)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "0\n", string(data), "malformed file must be left untouched")
}

func TestBuildTabs(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "tabs.conf")
	absolute := filepath.Join(t.TempDir(), "elsewhere.json")

	require.NoError(t, WriteConfig(configPath, []TabSpec{
		{"Rock", "rock.json"},
		{"Broken", "broken.json"},
		{"Away", absolute},
	}))

	rock := catalog.New()
	require.NoError(t, rock.Add("Queen", "Jazz"))
	require.NoError(t, store.Save(rock, filepath.Join(dir, "rock.json")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("[not a catalog"), 0o644))

	tabs, err := BuildTabs(configPath, dir, logging.Nop())
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrFormat)
	require.Len(t, tabs, 3)

	assert.Equal(t, "Rock", tabs[0].Name())
	assert.Equal(t, filepath.Join(dir, "rock.json"), tabs[0].Path())
	assert.Equal(t, rock.Snapshot(), tabs[0].Catalog().Snapshot())

	assert.Equal(t, "Broken", tabs[1].Name())
	assert.Equal(t, 0, tabs[1].Catalog().Len())
	backups, globErr := filepath.Glob(filepath.Join(dir, "broken.json.corrupt-*"))
	require.NoError(t, globErr)
	assert.Len(t, backups, 1)

	assert.Equal(t, absolute, tabs[2].Path())
	assert.Equal(t, 0, tabs[2].Catalog().Len())
}

func TestBuildTabs_DefaultsWhenConfigMissing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	tabs, err := BuildTabs(filepath.Join(dir, "tabs.conf"), dir, logging.Nop())
	require.NoError(t, err)
	require.Len(t, tabs, 3)
	for i, spec := range DefaultTabSpecs() {
		assert.Equal(t, spec.Name, tabs[i].Name())
		assert.Equal(t, filepath.Join(dir, spec.File), tabs[i].Path())
	}
}

func TestSaveAll(t *testing.T) {
	dir := t.TempDir()

	good := NewTab("Good", filepath.Join(dir, "good.json"), nil)
	require.NoError(t, good.Catalog().Add("Abba", "Arrival"))
	bad := NewTab("Bad", filepath.Join(dir, "missing", "bad.json"), nil)
	alsoGood := NewTab("Also", filepath.Join(dir, "also.json"), nil)

	ok, err := SaveAll([]*Tab{good, bad, alsoGood})
	assert.False(t, ok)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrIO)
	assert.Contains(t, err.Error(), `tab "Bad"`)

	for _, tab := range []*Tab{good, alsoGood} {
		loaded, loadErr := store.Load(tab.Path())
		require.NoError(t, loadErr)
		assert.Equal(t, tab.Catalog().Snapshot(), loaded.Snapshot())
	}
	_, statErr := os.Stat(alsoGood.Path())
	assert.NoError(t, statErr, "tabs after a failure must still be saved")

	ok, err = SaveAll([]*Tab{good, alsoGood})
	assert.True(t, ok)
	assert.NoError(t, err)
}
