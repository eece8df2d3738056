package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"song-catalog/internal/catalog"
	"song-catalog/internal/config"
	"song-catalog/internal/core/builder"
	"song-catalog/internal/shared"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.GetDefaultConfig()
	cfg.InDir(t.TempDir())
	return cfg
}

func newTestContainer(cfg *config.Config, lines ...string) (*ServiceContainer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	container := NewServiceContainer(cfg, in, out,
		builder.WithClock(func() time.Time { return time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC) }),
	)
	return container, out
}

var minimalSongInput = []string{"Song", "A, B", "", "1", "", "X", "", "", "2", ""}

func TestNewServiceContainer(t *testing.T) {
	container, _ := newTestContainer(testConfig(t))

	if container.Config == nil {
		t.Error("Config service not initialized")
	}
	if container.Logger == nil {
		t.Error("Logger not initialized")
	}
	if container.Store == nil {
		t.Error("Store not initialized")
	}
	if container.Builder == nil {
		t.Error("Builder not initialized")
	}
	if container.Catalog == nil {
		t.Error("Catalog service not initialized")
	}
	if container.WarningCollector == nil {
		t.Error("WarningCollector not initialized")
	}
}

func TestAddSongEndToEnd(t *testing.T) {
	cfg := testConfig(t)
	container, out := newTestContainer(cfg, minimalSongInput...)

	song, err := container.Catalog.AddSong()
	require.NoError(t, err)

	var doc struct {
		Songs []map[string]interface{} `json:"songs"`
	}
	data, err := os.ReadFile(cfg.MetadataFile)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Len(t, doc.Songs, 1)

	record := doc.Songs[0]
	assert.Equal(t, song.ID, record["id"])
	assert.Equal(t, []interface{}{"A", "B"}, record["singers"])
	assert.Equal(t, "English", record["language"])
	assert.Equal(t, "Mass", record["genre"])
	assert.Equal(t, float64(2026), record["year"])
	assert.NotContains(t, record, "album")
	assert.NotContains(t, record, "musicBy")
	assert.NotContains(t, record, "youtube")

	idx := catalog.NewStore(cfg.MetadataFile, cfg.FiltersFile, container.Logger, nil).LoadFilterIndex()
	assert.Equal(t, []string{"English"}, idx.Languages)
	assert.Equal(t, []string{"Mass"}, idx.Genres)
	assert.Equal(t, []int{2026}, idx.Years)
	assert.Equal(t, []string{"A", "B"}, idx.Singers)
	assert.Empty(t, idx.MusicBy)
	assert.Empty(t, idx.Albums)

	text := out.String()
	assert.Contains(t, text, "--- Song Added ---")
	assert.Contains(t, text, `  "title": "Song",`)
	assert.Less(t, strings.Index(text, "Saved metadata.json"), strings.Index(text, "Saved filters.json"))
}

func TestAddSongAppendsToExistingCatalog(t *testing.T) {
	cfg := testConfig(t)
	existing := `{"songs": [{"id": "first", "title": "Old"}]}`
	require.NoError(t, os.WriteFile(cfg.MetadataFile, []byte(existing), 0644))
	require.NoError(t, os.WriteFile(cfg.FiltersFile, []byte(`{"languages": ["Telugu", "English"], "years": [2026, 1990]}`), 0644))

	container, _ := newTestContainer(cfg, minimalSongInput...)
	song, err := container.Catalog.AddSong()
	require.NoError(t, err)

	cat := container.Store.LoadCatalog()
	require.Equal(t, 2, cat.Len())
	assert.JSONEq(t, `{"id": "first", "title": "Old"}`, string(cat.Songs[0]))
	added, err := cat.Decode(1)
	require.NoError(t, err)
	assert.Equal(t, song, added)

	idx := container.Store.LoadFilterIndex()
	assert.Equal(t, []string{"English", "Telugu"}, idx.Languages)
	assert.Equal(t, []int{1990, 2026}, idx.Years)
}

func TestAddSongInputClosedWritesNothing(t *testing.T) {
	cfg := testConfig(t)
	container, _ := newTestContainer(cfg, "Song", "A")

	_, err := container.Catalog.AddSong()
	assert.True(t, errors.Is(err, shared.ErrInputClosed))
	assert.False(t, shared.FileExists(cfg.MetadataFile))
	assert.False(t, shared.FileExists(cfg.FiltersFile))
}

func TestAddSongInvalidDocumentsRecovered(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.MetadataFile, []byte("garbage"), 0644))
	require.NoError(t, os.WriteFile(cfg.FiltersFile, []byte("{"), 0644))

	container, out := newTestContainer(cfg, minimalSongInput...)
	_, err := container.Catalog.AddSong()
	require.NoError(t, err)

	assert.Contains(t, out.String(), "metadata.json invalid. Creating new.")
	assert.Contains(t, out.String(), "filters.json invalid. Creating new.")
	assert.Equal(t, 2, container.WarningCollector.GetWarningCount())
	assert.Equal(t, 1, container.Store.LoadCatalog().Len())
}

func TestAddSongKeepsNonObjectEntries(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.MetadataFile, []byte(`{"songs": [{"id": "old", "title": "Old", "singers": ["A"], "year": 1999}, "stray"]}`), 0644))

	container, _ := newTestContainer(cfg, minimalSongInput...)
	_, err := container.Catalog.AddSong()
	require.NoError(t, err)
	assert.Equal(t, 3, container.Store.LoadCatalog().Len())

	var buf bytes.Buffer
	assert.Equal(t, 3, container.Catalog.ListSongs(&buf))
	assert.Contains(t, buf.String(), "  1. Old - A (1999)\n")
	assert.Contains(t, buf.String(), "  3. Song - A, B (")
	assert.Len(t, container.WarningCollector.(*shared.WarningCollector).GetWarningsByType()[shared.MalformedSongWarning], 1)
}

func TestAddSongSaveFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
	cfg := config.GetDefaultConfig()
	cfg.MetadataFile = filepath.Join(blocker, "metadata.json")
	cfg.FiltersFile = filepath.Join(dir, "filters.json")

	container, out := newTestContainer(cfg, minimalSongInput...)
	_, err := container.Catalog.AddSong()
	assert.Error(t, err)
	assert.NotContains(t, out.String(), "Saved")
	assert.False(t, shared.FileExists(cfg.FiltersFile), "filters are saved after the catalog")
}

func TestAddSongFilterSaveFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
	cfg := config.GetDefaultConfig()
	cfg.MetadataFile = filepath.Join(dir, "metadata.json")
	cfg.FiltersFile = filepath.Join(blocker, "filters.json")

	container, out := newTestContainer(cfg, minimalSongInput...)
	song, err := container.Catalog.AddSong()
	assert.Error(t, err)
	require.NotNil(t, song)
	assert.Equal(t, 1, container.Store.LoadCatalog().Len(), "the catalog save is not rolled back")
	assert.Contains(t, out.String(), "run rebuild-filters to repair it")
}

func TestRebuildFilters(t *testing.T) {
	cfg := testConfig(t)
	songs := `{"songs": [
  {"id": "1", "title": "a", "singers": ["Zed"], "language": "Hindi", "year": 2001, "album": "X"},
  {"id": 2, "title": "broken"},
  {"id": "3", "title": "b", "singers": ["Ann", "Zed"], "language": "Tamil", "year": 0, "genre": "Sad", "musicBy": "M"}
]}`
	require.NoError(t, os.WriteFile(cfg.MetadataFile, []byte(songs), 0644))

	container, _ := newTestContainer(cfg)
	folded, err := container.Catalog.RebuildFilters()
	require.NoError(t, err)
	assert.Equal(t, 2, folded)
	assert.Equal(t, 1, container.WarningCollector.GetWarningCount())

	idx := container.Store.LoadFilterIndex()
	assert.Equal(t, []string{"Hindi", "Tamil"}, idx.Languages)
	assert.Equal(t, []string{"Sad"}, idx.Genres)
	assert.Equal(t, []int{2001}, idx.Years)
	assert.Equal(t, []string{"Ann", "Zed"}, idx.Singers)
	assert.Equal(t, []string{"M"}, idx.MusicBy)
	assert.Equal(t, []string{"X"}, idx.Albums)
}

func TestListSongs(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.MetadataFile, []byte(`{"songs": [{"id": "1", "title": "Song", "singers": ["A", "B"], "year": 2020}]}`), 0644))

	container, _ := newTestContainer(cfg)
	var buf bytes.Buffer
	count := container.Catalog.ListSongs(&buf)

	assert.Equal(t, 1, count)
	assert.Equal(t, "  1. Song - A, B (2020)\n", buf.String())
}

func TestConfigServiceValidate(t *testing.T) {
	cs := NewConfigService()

	assert.NoError(t, cs.ValidateConfig(cs.GetDefaultConfig()))

	cfg := cs.GetDefaultConfig()
	cfg.Options.Genres = nil
	assert.Error(t, cs.ValidateConfig(cfg))
	assert.Error(t, cs.SaveConfig(filepath.Join(t.TempDir(), "c.json"), cfg))
}

func TestConsoleLoggerDebugMode(t *testing.T) {
	t.Setenv("DEBUG", "")
	var buf bytes.Buffer
	logger := NewConsoleLogger(&buf)

	logger.Debug("hidden")
	assert.Empty(t, buf.String())

	logger.SetDebugMode(true)
	logger.Debug("shown %d", 1)
	logger.Info("info")
	logger.Success("done")
	assert.Equal(t, "🐛 DEBUG: shown 1\ninfo\n✅ done\n", buf.String())
}
