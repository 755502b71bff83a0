package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bimax-pro/bimax-admin/internal/domain"
)

// CatalogStore reads and writes the catalog document (catalog-data.json).
//
// Load never fails: a missing file is created with the empty default
// document, and an unreadable or corrupt file degrades to the same default
// so the site stays operational. Save overwrites the whole file; concurrent
// saves race and the last write wins. The mutex only guarantees that a
// single in-process writer never exposes a torn file to readers.
type CatalogStore struct {
	path   string
	mu     sync.Mutex
	logger zerolog.Logger
}

// NewCatalogStore creates a CatalogStore backed by the given file.
func NewCatalogStore(path string, logger zerolog.Logger) *CatalogStore {
	return &CatalogStore{
		path:   path,
		logger: logger.With().Str("store", "catalog").Logger(),
	}
}

// Load returns the catalog document, or the empty default when the file is
// absent, unreadable or corrupt.
func (s *CatalogStore) Load(ctx context.Context) *domain.CatalogDocument {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			doc := domain.NewCatalogDocument()
			if werr := s.writeLocked(doc); werr != nil {
				s.logger.Error().Err(werr).Msg("failed to create catalog file")
			} else {
				s.logger.Info().Str("path", s.path).Msg("created empty catalog file")
			}
			return doc
		}
		s.logger.Error().Err(err).Str("path", s.path).Msg("failed to read catalog file")
		return domain.NewCatalogDocument()
	}

	var doc domain.CatalogDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Error().Err(err).Str("path", s.path).Msg("failed to parse catalog file")
		return domain.NewCatalogDocument()
	}
	return &doc
}

// Save serializes the document and overwrites the backing file.
func (s *CatalogStore) Save(ctx context.Context, doc *domain.CatalogDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(doc)
}

func (s *CatalogStore) writeLocked(doc *domain.CatalogDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write catalog file: %w", err)
	}
	return nil
}
