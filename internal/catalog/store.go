package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"song-catalog/internal/shared"
)

// Reporter receives the diagnostics and confirmations the store emits.
type Reporter interface {
	Warning(message string, args ...interface{})
	Success(message string, args ...interface{})
	Debug(message string, args ...interface{})
}

// Store reads and writes the catalog and filter index documents.
type Store struct {
	metadataPath string
	filtersPath  string
	reporter     Reporter
	warnings     *shared.WarningCollector
}

// NewStore creates a store for the two document paths. warnings may be nil.
func NewStore(metadataPath, filtersPath string, reporter Reporter, warnings *shared.WarningCollector) *Store {
	if warnings == nil {
		warnings = shared.NewWarningCollector(false)
	}
	return &Store{
		metadataPath: metadataPath,
		filtersPath:  filtersPath,
		reporter:     reporter,
		warnings:     warnings,
	}
}

func (s *Store) MetadataPath() string { return s.metadataPath }
func (s *Store) FiltersPath() string  { return s.filtersPath }

// LoadCatalog never fails: a missing document yields an empty catalog, an
// unreadable or unparsable one yields an empty catalog and a warning.
func (s *Store) LoadCatalog() *Catalog {
	cat := NewCatalog()
	if err := s.readDocument(s.metadataPath, cat); err != nil {
		s.invalid(s.metadataPath, err)
		return NewCatalog()
	}
	s.reporter.Debug("Loaded %d songs from %s", cat.Len(), s.metadataPath)
	return cat
}

// LoadFilterIndex never fails; see LoadCatalog. Keys that are missing or not
// lists come back empty; elements of the wrong type are dropped.
func (s *Store) LoadFilterIndex() *FilterIndex {
	idx := NewFilterIndex()
	if err := s.readDocument(s.filtersPath, idx); err != nil {
		s.invalid(s.filtersPath, err)
		return NewFilterIndex()
	}
	for _, key := range idx.ResetKeys() {
		s.warnings.AddMalformedFilterKeyWarning(key, "not a list, or holds values of the wrong type")
		s.reporter.Debug("Filter key %q in %s was malformed, keeping its well-typed values", key, s.filtersPath)
	}
	return idx
}

// SaveCatalog rewrites the catalog document.
func (s *Store) SaveCatalog(cat *Catalog) error {
	if err := writeDocument(s.metadataPath, cat); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	s.reporter.Success("Saved %s", filepath.Base(s.metadataPath))
	return nil
}

// SaveFilterIndex deduplicates and sorts every key, then rewrites the
// filter document.
func (s *Store) SaveFilterIndex(idx *FilterIndex) error {
	idx.Normalize()
	if err := writeDocument(s.filtersPath, idx); err != nil {
		return fmt.Errorf("save filters: %w", err)
	}
	s.reporter.Success("Saved %s", filepath.Base(s.filtersPath))
	return nil
}

// readDocument returns nil when the file does not exist and leaves v as is.
func (s *Store) readDocument(path string, v json.Unmarshaler) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		s.reporter.Debug("%s not found, starting empty", path)
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func (s *Store) invalid(path string, err error) {
	s.warnings.AddInvalidDocumentWarning(path, err.Error())
	s.reporter.Warning("%s invalid. Creating new.", filepath.Base(path))
	s.reporter.Debug("%s: %v", path, err)
}

// documentMode returns the permissions of the existing document at path, or
// 0644 for a new one.
func documentMode(path string) fs.FileMode {
	if info, err := os.Stat(path); err == nil {
		return info.Mode().Perm()
	}
	return 0644
}

// writeDocument replaces path atomically: the data goes to a temporary file
// in the same directory which is then renamed over the target.
func writeDocument(path string, v interface{}) error {
	data, err := MarshalIndent(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if err := shared.CreateDirIfNotExists(dir); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, documentMode(path)); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
