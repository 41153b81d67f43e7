package service

import (
	"context"
	"log"

	"travelhealth/internal/cache"
)

type translateBackend interface {
	Translate(ctx context.Context, text, from, to string) (string, error)
}

// TranslationService translates display strings through the backend, with a
// Redis cache in front so repeated lookups are free. Used ad hoc by the
// client for localized display; not part of interview or trip state.
type TranslationService struct {
	backend translateBackend
	cache   cache.TranslationCache
}

// NewTranslationService creates a new translation service
func NewTranslationService(backend translateBackend, c cache.TranslationCache) *TranslationService {
	return &TranslationService{backend: backend, cache: c}
}

// Translate returns text in the target language. From defaults to English.
func (s *TranslationService) Translate(ctx context.Context, text, from, to string) (string, error) {
	if from == "" {
		from = "en"
	}

	cached, err := s.cache.Get(ctx, text, to)
	if err != nil {
		log.Printf("[Translate] cache read failed: %v", err)
	} else if cached != "" {
		return cached, nil
	}

	translated, err := s.backend.Translate(ctx, text, from, to)
	if err != nil {
		return "", err
	}

	if err := s.cache.Set(ctx, text, to, translated); err != nil {
		log.Printf("[Translate] cache write failed: %v", err)
	}
	return translated, nil
}
