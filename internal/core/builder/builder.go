// Package builder collects one new song from the operator.
package builder

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"song-catalog/internal/catalog"
	"song-catalog/internal/config"
	"song-catalog/internal/interfaces"
)

// Prompt labels, in the order they are asked.
const (
	LabelTitle     = "Title: "
	LabelSingers   = "Singers (comma separated): "
	LabelMusicBy   = "Music by (optional): "
	TitleLanguage  = "Language:"
	LabelYear      = "Year [%d]: "
	LabelBaseName  = "Base name for audio & images (ex: NTCH): "
	LabelAlbumName = "Album name (optional, for file naming): "
	LabelAlbum     = "Album (optional): "
	TitleGenre     = "Genre:"
	LabelYouTube   = "YouTube URL (optional): "
	TitleQuality   = "YouTube Quality:"
)

// Builder assembles a song record from prompted values and derived URLs.
type Builder struct {
	prompter interfaces.Prompter
	urls     interfaces.URLResolver
	options  config.Options
	now      func() time.Time
	newID    func() string
}

// Option customizes a Builder
type Option func(*Builder)

// WithClock replaces the clock used for the default year
func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

// WithIDGenerator replaces the song id generator
func WithIDGenerator(newID func() string) Option {
	return func(b *Builder) { b.newID = newID }
}

// New creates a Builder. Ids default to random UUIDs and the default year
// to the current one.
func New(prompter interfaces.Prompter, urls interfaces.URLResolver, options config.Options, opts ...Option) *Builder {
	b := &Builder{
		prompter: prompter,
		urls:     urls,
		options:  options,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build asks for every field of one song and returns the record.
func (b *Builder) Build() (*catalog.Song, error) {
	p := b.prompter
	p.Println("\n--- NEW SONG ---")

	title, err := p.Required(LabelTitle)
	if err != nil {
		return nil, fmt.Errorf("title: %w", err)
	}
	singers, err := p.List(LabelSingers)
	if err != nil {
		return nil, fmt.Errorf("singers: %w", err)
	}
	musicBy, err := p.Optional(LabelMusicBy)
	if err != nil {
		return nil, fmt.Errorf("music by: %w", err)
	}
	language, err := p.Choice(TitleLanguage, b.options.Languages)
	if err != nil {
		return nil, fmt.Errorf("language: %w", err)
	}
	currentYear := b.now().Year()
	year, err := p.Year(fmt.Sprintf(LabelYear, currentYear), currentYear)
	if err != nil {
		return nil, fmt.Errorf("year: %w", err)
	}
	baseName, err := p.Required(LabelBaseName)
	if err != nil {
		return nil, fmt.Errorf("base name: %w", err)
	}
	albumName, err := p.Optional(LabelAlbumName)
	if err != nil {
		return nil, fmt.Errorf("album name: %w", err)
	}
	album, err := p.Optional(LabelAlbum)
	if err != nil {
		return nil, fmt.Errorf("album: %w", err)
	}
	genre, err := p.Choice(TitleGenre, b.options.Genres)
	if err != nil {
		return nil, fmt.Errorf("genre: %w", err)
	}
	youtubeURL, err := p.Optional(LabelYouTube)
	if err != nil {
		return nil, fmt.Errorf("youtube url: %w", err)
	}

	song := &catalog.Song{
		ID:         b.newID(),
		Title:      title,
		Singers:    singers,
		Language:   language,
		Year:       year,
		AudioURL:   b.urls.AudioURL(baseName),
		CoverImage: b.urls.CoverImage(baseName),
		AlbumImage: b.urls.AlbumImage(albumName),
		Album:      album,
		Genre:      genre,
		MusicBy:    musicBy,
	}

	if youtubeURL != "" {
		quality, err := p.Choice(TitleQuality, b.options.YouTubeQualities)
		if err != nil {
			return nil, fmt.Errorf("youtube quality: %w", err)
		}
		song.YouTube = &catalog.YouTube{URL: youtubeURL, Formats: quality}
	}

	return song, nil
}
