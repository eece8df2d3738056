package cdn

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"song-catalog/internal/config"
)

func TestDefaultRoots(t *testing.T) {
	r := NewResolver(config.GetDefaultConfig().CDN)

	audio := r.AudioURL("NTCH")
	cover := r.CoverImage("NTCH")

	assert.True(t, strings.HasSuffix(audio, "NTCH.mp3"), audio)
	assert.True(t, strings.HasSuffix(cover, "NTCH-C.jpg"), cover)
	assert.Equal(t, "https://cdn.jsdelivr.net/gh/luffytaroOnePiece/audio/main/NTCH.mp3", audio)
	assert.Equal(t, "https://cdn.jsdelivr.net/gh/luffytaroOnePiece/coverimages/main/NTCH-C.jpg", cover)
	assert.Equal(t, "https://cdn.jsdelivr.net/gh/luffytaroOnePiece/coverimages/main/RRR.jpg", r.AlbumImage("RRR"))
}

func TestEmptyAlbumName(t *testing.T) {
	r := NewResolver(config.GetDefaultConfig().CDN)

	assert.Equal(t, config.DefaultCoverCDNBase+".jpg", r.AlbumImage(""))
}

func TestCustomRoots(t *testing.T) {
	r := NewResolver(config.CDNOptions{
		AudioBase:   "https://a.test/",
		CoverBase:   "https://c.test/",
		AudioExt:    ".ogg",
		CoverSuffix: "_cover",
		CoverExt:    ".png",
	})

	assert.Equal(t, "https://a.test/x y.ogg", r.AudioURL("x y"))
	assert.Equal(t, "https://c.test/x_cover.png", r.CoverImage("x"))
	assert.Equal(t, "https://c.test/alb.png", r.AlbumImage("alb"))
}
