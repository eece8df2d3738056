package services

import (
	"fmt"
	"io"
	"strings"

	"song-catalog/internal/catalog"
	"song-catalog/internal/cdn"
	"song-catalog/internal/config"
	"song-catalog/internal/core/builder"
	"song-catalog/internal/core/filters"
	"song-catalog/internal/interfaces"
	"song-catalog/internal/prompt"
	"song-catalog/internal/shared"
)

// ServiceContainer holds all application services
type ServiceContainer struct {
	Config           interfaces.ConfigService
	Logger           interfaces.LoggerService
	Store            interfaces.CatalogStore
	Builder          interfaces.SongBuilder
	Catalog          *CatalogService
	WarningCollector interfaces.WarningCollectorService
}

// NewServiceContainer wires every service for one run. Operator input is read
// from in; prompts, logs and results go to out.
func NewServiceContainer(cfg *config.Config, in io.Reader, out io.Writer, opts ...builder.Option) *ServiceContainer {
	// Create logger first as other services may need it
	logger := NewConsoleLogger(out)
	logger.SetDebugMode(cfg.Debug)

	warningCollector := shared.NewWarningCollector(true)

	store := catalog.NewStore(cfg.MetadataFile, cfg.FiltersFile, logger, warningCollector)
	prompter := prompt.NewConsole(in, out)
	urls := cdn.NewResolver(cfg.CDN)
	songBuilder := builder.New(prompter, urls, cfg.Options, opts...)

	return &ServiceContainer{
		Config:           NewConfigService(),
		Logger:           logger,
		Store:            store,
		Builder:          songBuilder,
		Catalog:          NewCatalogService(store, songBuilder, logger, warningCollector),
		WarningCollector: warningCollector,
	}
}

// ConfigService implementation
type ConfigService struct{}

func NewConfigService() *ConfigService {
	return &ConfigService{}
}

func (cs *ConfigService) GetDefaultConfig() *config.Config {
	return config.GetDefaultConfig()
}

func (cs *ConfigService) SaveConfig(configFile string, cfg *config.Config) error {
	if err := cs.ValidateConfig(cfg); err != nil {
		return err
	}
	return config.SaveConfig(configFile, cfg)
}

func (cs *ConfigService) ValidateConfig(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if len(cfg.Options.Languages) == 0 {
		return fmt.Errorf("at least one language option is required")
	}
	if len(cfg.Options.Genres) == 0 {
		return fmt.Errorf("at least one genre option is required")
	}
	if len(cfg.Options.YouTubeQualities) == 0 {
		return fmt.Errorf("at least one YouTube quality option is required")
	}
	return nil
}

// CatalogService runs the catalog workflows on top of the store
type CatalogService struct {
	store            interfaces.CatalogStore
	builder          interfaces.SongBuilder
	logger           interfaces.LoggerService
	warningCollector *shared.WarningCollector
}

func NewCatalogService(store interfaces.CatalogStore, songBuilder interfaces.SongBuilder, logger interfaces.LoggerService, warningCollector *shared.WarningCollector) *CatalogService {
	return &CatalogService{
		store:            store,
		builder:          songBuilder,
		logger:           logger,
		warningCollector: warningCollector,
	}
}

// AddSong loads both documents, collects exactly one song, and saves the
// catalog followed by the filter index. Nothing is written when the song
// cannot be collected. The two saves are independent: if the second one
// fails the catalog already holds the song.
func (s *CatalogService) AddSong() (*catalog.Song, error) {
	cat := s.store.LoadCatalog()
	idx := s.store.LoadFilterIndex()

	song, err := s.builder.Build()
	if err != nil {
		return nil, err
	}

	if err := cat.Append(song); err != nil {
		return nil, err
	}
	filters.Update(idx, song)

	data, err := catalog.MarshalIndent(song)
	if err != nil {
		return nil, fmt.Errorf("encode song: %w", err)
	}
	out := s.logger.Writer()
	fmt.Fprintln(out)
	shared.ColorHeader.Fprintln(out, "--- Song Added ---")
	fmt.Fprintln(out, string(data))
	fmt.Fprintln(out)

	if err := s.store.SaveCatalog(cat); err != nil {
		return song, err
	}
	if err := s.store.SaveFilterIndex(idx); err != nil {
		s.logger.Error("The song was saved but the filter index was not, run rebuild-filters to repair it")
		return song, err
	}
	return song, nil
}

// RebuildFilters folds every song of the catalog into the filter index and
// saves it. It returns the number of songs folded.
func (s *CatalogService) RebuildFilters() (int, error) {
	cat := s.store.LoadCatalog()
	idx := s.store.LoadFilterIndex()

	skipped := filters.Rebuild(idx, cat)
	for _, entry := range skipped {
		s.warningCollector.AddMalformedSongWarning(entry.Index, entry.Err.Error())
		s.logger.Debug("Skipping songs[%d]: %v", entry.Index, entry.Err)
	}

	if err := s.store.SaveFilterIndex(idx); err != nil {
		return 0, err
	}
	return cat.Len() - len(skipped), nil
}

// ListSongs writes one line per song and returns the number of songs.
func (s *CatalogService) ListSongs(w io.Writer) int {
	cat := s.store.LoadCatalog()
	for i := 0; i < cat.Len(); i++ {
		song, err := cat.Decode(i)
		if err != nil {
			s.warningCollector.AddMalformedSongWarning(i, err.Error())
			continue
		}
		fmt.Fprintf(w, "%3d. %s - %s (%d)\n", i+1, shared.TruncateString(song.Title, 60), strings.Join(song.Singers, ", "), song.Year)
	}
	return cat.Len()
}

// ConsoleLogger implementation
type ConsoleLogger struct {
	out       io.Writer
	debugMode bool
}

func NewConsoleLogger(out io.Writer) *ConsoleLogger {
	return &ConsoleLogger{out: out, debugMode: shared.IsDebugMode()}
}

func (cl *ConsoleLogger) Info(message string, args ...interface{}) {
	shared.ColorInfo.Fprintf(cl.out, message+"\n", args...)
}

func (cl *ConsoleLogger) Warning(message string, args ...interface{}) {
	shared.ColorWarning.Fprintf(cl.out, "⚠️ "+message+"\n", args...)
}

func (cl *ConsoleLogger) Error(message string, args ...interface{}) {
	shared.ColorError.Fprintf(cl.out, "❌ "+message+"\n", args...)
}

func (cl *ConsoleLogger) Debug(message string, args ...interface{}) {
	if !cl.debugMode {
		return
	}
	fmt.Fprintf(cl.out, "🐛 DEBUG: "+message+"\n", args...)
}

func (cl *ConsoleLogger) Success(message string, args ...interface{}) {
	shared.ColorSuccess.Fprintf(cl.out, "✅ "+message+"\n", args...)
}

func (cl *ConsoleLogger) SetDebugMode(enabled bool) {
	cl.debugMode = enabled || shared.IsDebugMode()
}

func (cl *ConsoleLogger) Writer() io.Writer {
	return cl.out
}
