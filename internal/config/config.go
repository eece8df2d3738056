package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	EnvPrefix = "SONGCATALOG"

	DefaultMetadataFile = "metadata.json"
	DefaultFiltersFile  = "filters.json"

	DefaultAudioCDNBase = "https://cdn.jsdelivr.net/gh/luffytaroOnePiece/audio/main/"
	DefaultCoverCDNBase = "https://cdn.jsdelivr.net/gh/luffytaroOnePiece/coverimages/main/"

	DefaultAudioExt    = ".mp3"
	DefaultCoverSuffix = "-C"
	DefaultCoverExt    = ".jpg"
)

// CDNOptions defines the roots and naming conventions used to derive media URLs
type CDNOptions struct {
	AudioBase   string `json:"audio_cdn_base" mapstructure:"audio_cdn_base"`
	CoverBase   string `json:"cover_cdn_base" mapstructure:"cover_cdn_base"`
	AudioExt    string `json:"audio_ext" mapstructure:"audio_ext"`
	CoverSuffix string `json:"cover_suffix" mapstructure:"cover_suffix"`
	CoverExt    string `json:"cover_ext" mapstructure:"cover_ext"`
}

// Options holds the fixed choice lists offered by the numbered menus
type Options struct {
	Languages        []string `json:"languages" mapstructure:"languages"`
	Genres           []string `json:"genres" mapstructure:"genres"`
	YouTubeQualities []string `json:"youtube_qualities" mapstructure:"youtube_qualities"`
}

// Configuration structure
type Config struct {
	MetadataFile string     `json:"metadata_file" mapstructure:"metadata_file"`
	FiltersFile  string     `json:"filters_file" mapstructure:"filters_file"`
	CDN          CDNOptions `json:"cdn" mapstructure:",squash"`
	Options      Options    `json:"options" mapstructure:",squash"`
	Debug        bool       `json:"-" mapstructure:"debug"`
}

// DefaultLanguages returns the language menu of the catalog
func DefaultLanguages() []string {
	return []string{
		"English", "Telugu", "Hindi", "Tamil",
		"Kannada", "Malayalam", "Japanese", "Other",
	}
}

// DefaultGenres returns the genre menu of the catalog
func DefaultGenres() []string {
	return []string{
		"Romance", "Mass", "Melody", "Dance", "Sad",
		"Devotional", "Villain", "Item", "Anime",
	}
}

// DefaultYouTubeQualities returns the YouTube quality menu
func DefaultYouTubeQualities() []string {
	return []string{
		"144p", "240p", "360p", "480p", "720p",
		"1080p", "1440p", "2160p", "4320p",
	}
}

// GetDefaultConfig returns the configuration used when nothing overrides it
func GetDefaultConfig() *Config {
	return &Config{
		MetadataFile: DefaultMetadataFile,
		FiltersFile:  DefaultFiltersFile,
		CDN: CDNOptions{
			AudioBase:   DefaultAudioCDNBase,
			CoverBase:   DefaultCoverCDNBase,
			AudioExt:    DefaultAudioExt,
			CoverSuffix: DefaultCoverSuffix,
			CoverExt:    DefaultCoverExt,
		},
		Options: Options{
			Languages:        DefaultLanguages(),
			Genres:           DefaultGenres(),
			YouTubeQualities: DefaultYouTubeQualities(),
		},
	}
}

func setDefaults(v *viper.Viper) {
	def := GetDefaultConfig()
	v.SetDefault("metadata_file", def.MetadataFile)
	v.SetDefault("filters_file", def.FiltersFile)
	v.SetDefault("audio_cdn_base", def.CDN.AudioBase)
	v.SetDefault("cover_cdn_base", def.CDN.CoverBase)
	v.SetDefault("audio_ext", def.CDN.AudioExt)
	v.SetDefault("cover_suffix", def.CDN.CoverSuffix)
	v.SetDefault("cover_ext", def.CDN.CoverExt)
	v.SetDefault("languages", def.Options.Languages)
	v.SetDefault("genres", def.Options.Genres)
	v.SetDefault("youtube_qualities", def.Options.YouTubeQualities)
	v.SetDefault("debug", false)
}

// New returns a viper instance with defaults and environment overrides applied.
// Flags may be bound to it before Load is called.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// Load reads the optional config file into v and decodes the result.
// An empty path means defaults, environment and bound flags only.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the fields every command depends on
func (cfg *Config) Validate() error {
	if strings.TrimSpace(cfg.MetadataFile) == "" {
		return fmt.Errorf("metadata file path is required")
	}
	if strings.TrimSpace(cfg.FiltersFile) == "" {
		return fmt.Errorf("filters file path is required")
	}
	if filepath.Clean(cfg.MetadataFile) == filepath.Clean(cfg.FiltersFile) {
		return fmt.Errorf("metadata and filters files must differ: %s", cfg.MetadataFile)
	}
	return nil
}

// InDir resolves relative document paths against dir
func (cfg *Config) InDir(dir string) {
	if dir == "" {
		return
	}
	if !filepath.IsAbs(cfg.MetadataFile) {
		cfg.MetadataFile = filepath.Join(dir, cfg.MetadataFile)
	}
	if !filepath.IsAbs(cfg.FiltersFile) {
		cfg.FiltersFile = filepath.Join(dir, cfg.FiltersFile)
	}
}

// flatConfig mirrors the viper key layout so a saved file loads back unchanged
type flatConfig struct {
	MetadataFile     string   `json:"metadata_file"`
	FiltersFile      string   `json:"filters_file"`
	AudioCDNBase     string   `json:"audio_cdn_base"`
	CoverCDNBase     string   `json:"cover_cdn_base"`
	AudioExt         string   `json:"audio_ext"`
	CoverSuffix      string   `json:"cover_suffix"`
	CoverExt         string   `json:"cover_ext"`
	Languages        []string `json:"languages"`
	Genres           []string `json:"genres"`
	YouTubeQualities []string `json:"youtube_qualities"`
}

// SaveConfig saves configuration to a JSON file
func SaveConfig(filePath string, cfg *Config) error {
	flat := flatConfig{
		MetadataFile:     cfg.MetadataFile,
		FiltersFile:      cfg.FiltersFile,
		AudioCDNBase:     cfg.CDN.AudioBase,
		CoverCDNBase:     cfg.CDN.CoverBase,
		AudioExt:         cfg.CDN.AudioExt,
		CoverSuffix:      cfg.CDN.CoverSuffix,
		CoverExt:         cfg.CDN.CoverExt,
		Languages:        cfg.Options.Languages,
		Genres:           cfg.Options.Genres,
		YouTubeQualities: cfg.Options.YouTubeQualities,
	}
	data, err := json.MarshalIndent(flat, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(filePath, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
