package interfaces

import (
	"io"

	"song-catalog/internal/catalog"
	"song-catalog/internal/config"
)

// Prompter defines the interface for operator input
type Prompter interface {
	// Required asks until a non-empty answer is given
	Required(label string) (string, error)

	// Optional asks once and may return an empty answer
	Optional(label string) (string, error)

	// List asks for a comma separated answer with at least one item
	List(label string) ([]string, error)

	// Choice shows a numbered menu with 0 for a custom value
	Choice(title string, options []string) (string, error)

	// Year asks for a year, defaulting to def on a blank answer
	Year(label string, def int) (int, error)

	// Println writes a plain line to the operator
	Println(a ...interface{})
}

// URLResolver defines the interface for deriving media URLs
type URLResolver interface {
	AudioURL(baseName string) string
	CoverImage(baseName string) string
	AlbumImage(albumName string) string
}

// CatalogStore defines the interface for the persisted documents
type CatalogStore interface {
	// LoadCatalog returns the catalog, or an empty one when it is missing or invalid
	LoadCatalog() *catalog.Catalog

	// LoadFilterIndex returns the filter index, or an empty one when it is missing or invalid
	LoadFilterIndex() *catalog.FilterIndex

	// SaveCatalog rewrites the catalog document
	SaveCatalog(cat *catalog.Catalog) error

	// SaveFilterIndex deduplicates, sorts and rewrites the filter document
	SaveFilterIndex(idx *catalog.FilterIndex) error
}

// SongBuilder defines the interface for collecting one new song
type SongBuilder interface {
	Build() (*catalog.Song, error)
}

// ConfigService defines the interface for configuration management
type ConfigService interface {
	// GetDefaultConfig returns the built-in configuration
	GetDefaultConfig() *config.Config

	// SaveConfig writes cfg to configFile
	SaveConfig(configFile string, cfg *config.Config) error

	// ValidateConfig validates configuration settings
	ValidateConfig(cfg *config.Config) error
}

// LoggerService defines the interface for logging operations
type LoggerService interface {
	// Info logs an informational message
	Info(message string, args ...interface{})

	// Warning logs a warning message
	Warning(message string, args ...interface{})

	// Error logs an error message
	Error(message string, args ...interface{})

	// Debug logs a debug message
	Debug(message string, args ...interface{})

	// Success logs a success message
	Success(message string, args ...interface{})

	// SetDebugMode enables or disables debug logging
	SetDebugMode(enabled bool)

	// Writer returns the stream the logger prints to
	Writer() io.Writer
}

// WarningCollectorService defines the interface for warning collection
type WarningCollectorService interface {
	HasWarnings() bool
	GetWarningCount() int
	PrintSummary(w io.Writer)
}
