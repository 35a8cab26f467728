package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/devyanip/sarathi/internal/models"
	"github.com/devyanip/sarathi/internal/persona"
)

// PersonaService resolves personas, masking store failures with the
// built-in fallback record on read paths.
type PersonaService struct {
	store  Store // nil when no store is configured
	logger *slog.Logger
}

// NewPersonaService creates a persona service. store may be nil.
func NewPersonaService(store Store, logger *slog.Logger) *PersonaService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PersonaService{store: store, logger: logger}
}

// GetPersona resolves a persona by slug with the degraded-mode read policy:
// any store failure, and a missing record, yield the built-in fallback
// persona. This method never fails. An empty slug means the built-in one.
func (s *PersonaService) GetPersona(ctx context.Context, slug string) models.Persona {
	if slug == "" {
		slug = persona.FallbackSlug
	}

	p, err := s.Lookup(ctx, slug)
	if err != nil {
		s.logger.Warn("persona lookup failed, using fallback", "slug", slug, "error", err)
		return persona.Fallback()
	}
	return *p
}

// Lookup resolves a persona strictly: ErrStoreUnavailable when no store is
// reachable, ErrPersonaNotFound when a reachable store has no such active
// persona. Used by paths that must not substitute the fallback.
func (s *PersonaService) Lookup(ctx context.Context, slug string) (*models.Persona, error) {
	if s.store == nil {
		return nil, ErrStoreUnavailable
	}

	p, err := s.store.GetPersonaBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %s", ErrPersonaNotFound, slug)
	}
	return p, nil
}
