package service

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/bimax-pro/bimax-admin/internal/domain"
)

// CatalogRepository is the part of the catalog store the service needs.
type CatalogRepository interface {
	Load(ctx context.Context) *domain.CatalogDocument
	Save(ctx context.Context, doc *domain.CatalogDocument) error
}

// CatalogService exposes whole-document read and replace of the catalog.
type CatalogService struct {
	repo   CatalogRepository
	logger zerolog.Logger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo CatalogRepository, logger zerolog.Logger) *CatalogService {
	return &CatalogService{
		repo:   repo,
		logger: logger.With().Str("service", "catalog").Logger(),
	}
}

// Load returns the current catalog document. It never fails; storage
// problems degrade to the empty default document.
func (s *CatalogService) Load(ctx context.Context) *domain.CatalogDocument {
	return s.repo.Load(ctx)
}

// Save parses the client-supplied document and replaces the stored one.
// Malformed JSON yields domain.ErrMalformedRequest; nothing is written
// in that case. There is no merge and no concurrency check: the last
// save wins.
func (s *CatalogService) Save(ctx context.Context, raw json.RawMessage) error {
	var doc domain.CatalogDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domain.ErrMalformedRequest
	}

	// Absent sections are normalized to their empty defaults so a partial
	// client payload never writes JSON nulls into the document.
	if doc.Brands == nil {
		doc.Brands = json.RawMessage("[]")
	}
	if doc.Products == nil {
		doc.Products = json.RawMessage("[]")
	}
	if doc.Settings == nil {
		doc.Settings = json.RawMessage("{}")
	}

	if err := s.repo.Save(ctx, &doc); err != nil {
		s.logger.Error().Err(err).Msg("failed to save catalog")
		return err
	}

	s.logger.Info().Msg("catalog saved")
	return nil
}
