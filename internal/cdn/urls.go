package cdn

import "song-catalog/internal/config"

// Resolver derives media URLs by plain concatenation onto the configured
// CDN roots. Nothing is validated or fetched.
type Resolver struct {
	opts config.CDNOptions
}

// NewResolver creates a resolver for the given roots and naming conventions
func NewResolver(opts config.CDNOptions) *Resolver {
	return &Resolver{opts: opts}
}

// AudioURL returns <audio root><base><audio ext>
func (r *Resolver) AudioURL(baseName string) string {
	return r.opts.AudioBase + baseName + r.opts.AudioExt
}

// CoverImage returns <cover root><base><cover suffix><cover ext>
func (r *Resolver) CoverImage(baseName string) string {
	return r.opts.CoverBase + baseName + r.opts.CoverSuffix + r.opts.CoverExt
}

// AlbumImage returns <cover root><album name><cover ext>. An empty album
// name yields the cover root followed by the extension alone.
func (r *Resolver) AlbumImage(albumName string) string {
	return r.opts.CoverBase + albumName + r.opts.CoverExt
}
