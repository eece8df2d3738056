// Package filters folds song records into the filter index.
package filters

import "song-catalog/internal/catalog"

// Update appends the categorical values of song to idx. Duplicates are
// left in place until the index is saved. A zero year is not recorded.
func Update(idx *catalog.FilterIndex, song *catalog.Song) {
	if song.Language != "" {
		idx.Languages = append(idx.Languages, song.Language)
	}
	if song.Genre != "" {
		idx.Genres = append(idx.Genres, song.Genre)
	}
	if song.Year != 0 {
		idx.Years = append(idx.Years, song.Year)
	}
	idx.Singers = append(idx.Singers, song.Singers...)
	if song.MusicBy != "" {
		idx.MusicBy = append(idx.MusicBy, song.MusicBy)
	}
	if song.Album != "" {
		idx.Albums = append(idx.Albums, song.Album)
	}
}

// Skipped is a catalog entry Rebuild could not decode.
type Skipped struct {
	Index int
	Err   error
}

// Rebuild folds every decodable song of cat into idx and reports the
// entries that could not be decoded.
func Rebuild(idx *catalog.FilterIndex, cat *catalog.Catalog) []Skipped {
	var skipped []Skipped
	for i := 0; i < cat.Len(); i++ {
		song, err := cat.Decode(i)
		if err != nil {
			skipped = append(skipped, Skipped{Index: i, Err: err})
			continue
		}
		Update(idx, song)
	}
	return skipped
}
