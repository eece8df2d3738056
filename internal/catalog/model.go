package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"song-catalog/internal/shared"
)

// Filter index keys, in the order they are written.
const (
	KeyLanguages = "languages"
	KeyGenres    = "genres"
	KeyYears     = "years"
	KeySingers   = "singers"
	KeyMusicBy   = "musicBy"
	KeyAlbums    = "albums"

	keySongs = "songs"
)

// FilterKeys lists every key of the filter index document.
var FilterKeys = []string{KeyLanguages, KeyGenres, KeyYears, KeySingers, KeyMusicBy, KeyAlbums}

// YouTube links a song to its video.
type YouTube struct {
	URL     string `json:"url"`
	Formats string `json:"formats"`
}

// Song is one catalog record. Optional fields carry omitempty so that an
// empty value leaves the key out of the document entirely.
type Song struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Singers    []string `json:"singers"`
	Language   string   `json:"language"`
	Year       int      `json:"year"`
	AudioURL   string   `json:"audioUrl"`
	CoverImage string   `json:"coverImage"`
	AlbumImage string   `json:"albumImage"`
	Album      string   `json:"album,omitempty"`
	Genre      string   `json:"genre,omitempty"`
	MusicBy    string   `json:"musicBy,omitempty"`
	YouTube    *YouTube `json:"youtube,omitempty"`
}

// Catalog is the metadata.json document. Songs are kept as raw JSON so
// entries written elsewhere survive a rewrite untouched.
type Catalog struct {
	Songs []json.RawMessage
	extra map[string]json.RawMessage
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{Songs: []json.RawMessage{}}
}

// Append adds song to the end of the catalog.
func (c *Catalog) Append(song *Song) error {
	data, err := Marshal(song)
	if err != nil {
		return fmt.Errorf("encode song %s: %w", song.ID, err)
	}
	c.Songs = append(c.Songs, data)
	return nil
}

// Len returns the number of songs.
func (c *Catalog) Len() int {
	return len(c.Songs)
}

// Decode returns song i as a Song. Entries that are not JSON objects are
// kept in the catalog but cannot be decoded.
func (c *Catalog) Decode(i int) (*Song, error) {
	if i < 0 || i >= len(c.Songs) {
		return nil, fmt.Errorf("song index %d out of range", i)
	}
	if !isObject(c.Songs[i]) {
		return nil, fmt.Errorf("entry is not an object: %s", shortRaw(c.Songs[i]))
	}
	var song Song
	if err := json.Unmarshal(c.Songs[i], &song); err != nil {
		return nil, err
	}
	return &song, nil
}

func (c *Catalog) MarshalJSON() ([]byte, error) {
	songs := c.Songs
	if songs == nil {
		songs = []json.RawMessage{}
	}
	fields := []field{{keySongs, songs}}
	return writeObject(append(fields, extraFields(c.extra)...))
}

// UnmarshalJSON accepts any JSON object. A songs value that is missing or
// not a list becomes an empty list; every element of a list is kept as is.
func (c *Catalog) UnmarshalJSON(data []byte) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	if doc == nil {
		return fmt.Errorf("catalog document is not an object")
	}

	c.Songs = []json.RawMessage{}
	if raw, ok := doc[keySongs]; ok {
		var songs []json.RawMessage
		if err := json.Unmarshal(raw, &songs); err == nil && songs != nil {
			c.Songs = songs
		}
		delete(doc, keySongs)
	}
	c.extra = doc
	return nil
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func shortRaw(raw json.RawMessage) string {
	return shared.TruncateString(string(bytes.TrimSpace(raw)), 40)
}

// FilterIndex is the filters.json document.
type FilterIndex struct {
	Languages []string
	Genres    []string
	Years     []int
	Singers   []string
	MusicBy   []string
	Albums    []string

	extra map[string]json.RawMessage
	reset []string
}

// NewFilterIndex returns an index with every key present and empty.
func NewFilterIndex() *FilterIndex {
	return &FilterIndex{
		Languages: []string{},
		Genres:    []string{},
		Years:     []int{},
		Singers:   []string{},
		MusicBy:   []string{},
		Albums:    []string{},
	}
}

// ResetKeys returns the keys that were present but malformed when the index
// was decoded: either not a list, or holding elements of the wrong type.
func (f *FilterIndex) ResetKeys() []string {
	return f.reset
}

func (f *FilterIndex) stringLists() map[string]*[]string {
	return map[string]*[]string{
		KeyLanguages: &f.Languages,
		KeyGenres:    &f.Genres,
		KeySingers:   &f.Singers,
		KeyMusicBy:   &f.MusicBy,
		KeyAlbums:    &f.Albums,
	}
}

// Normalize sorts every list and removes duplicates.
func (f *FilterIndex) Normalize() {
	for _, list := range f.stringLists() {
		*list = uniqueSorted(*list)
	}
	f.Years = uniqueSortedInts(f.Years)
}

func (f *FilterIndex) MarshalJSON() ([]byte, error) {
	fields := []field{
		{KeyLanguages, nonNil(f.Languages)},
		{KeyGenres, nonNil(f.Genres)},
		{KeyYears, nonNilInts(f.Years)},
		{KeySingers, nonNil(f.Singers)},
		{KeyMusicBy, nonNil(f.MusicBy)},
		{KeyAlbums, nonNil(f.Albums)},
	}
	return writeObject(append(fields, extraFields(f.extra)...))
}

// UnmarshalJSON accepts any JSON object. A missing key or one that is not a
// list becomes an empty list; elements of the wrong type are dropped and the
// rest of the list is kept.
func (f *FilterIndex) UnmarshalJSON(data []byte) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	if doc == nil {
		return fmt.Errorf("filter document is not an object")
	}

	*f = *NewFilterIndex()
	for key, list := range f.stringLists() {
		raw, ok := doc[key]
		if !ok {
			continue
		}
		delete(doc, key)
		values, clean := decodeList[string](raw)
		if !clean {
			f.reset = append(f.reset, key)
		}
		*list = values
	}
	if raw, ok := doc[KeyYears]; ok {
		delete(doc, KeyYears)
		years, clean := decodeList[int](raw)
		if !clean {
			f.reset = append(f.reset, KeyYears)
		}
		f.Years = years
	}
	sort.Strings(f.reset)
	f.extra = doc
	return nil
}

// decodeList decodes raw as a list of T, keeping the elements that decode.
// clean is false when raw is not a list or any element was dropped.
func decodeList[T any](raw json.RawMessage) (values []T, clean bool) {
	values = []T{}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return values, false
	}
	clean = true
	for _, item := range items {
		var v T
		if bytes.Equal(bytes.TrimSpace(item), []byte("null")) {
			clean = false
			continue
		}
		if err := json.Unmarshal(item, &v); err != nil {
			clean = false
			continue
		}
		values = append(values, v)
	}
	return values, clean
}

func uniqueSorted(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	sort.Strings(result)
	return result
}

func uniqueSortedInts(values []int) []int {
	seen := make(map[int]struct{}, len(values))
	result := make([]int, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	sort.Ints(result)
	return result
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func nonNilInts(values []int) []int {
	if values == nil {
		return []int{}
	}
	return values
}

type field struct {
	key   string
	value interface{}
}

func extraFields(extra map[string]json.RawMessage) []field {
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fields := make([]field, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, field{k, extra[k]})
	}
	return fields
}

// writeObject encodes fields as a JSON object, keeping their order.
func writeObject(fields []field) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := Marshal(f.key)
		if err != nil {
			return nil, err
		}
		value, err := Marshal(f.value)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", f.key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Marshal encodes v as compact JSON without escaping <, > and &.
func Marshal(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// MarshalIndent is Marshal with two-space indentation.
func MarshalIndent(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
