package financedb

import (
	"context"
	"fmt"
	"sort"

	"github.com/timshannon/badgerhold/v4"

	"github.com/arolsen/finboard/internal/models"
)

// --- Analyses ---

func (s *Store) SaveAnalysis(_ context.Context, a *models.Analysis) error {
	if err := s.db.Upsert(a.ID, a); err != nil {
		return fmt.Errorf("failed to save analysis '%s': %w", a.ID, err)
	}
	return nil
}

func (s *Store) GetAnalysis(_ context.Context, analysisID string) (*models.Analysis, error) {
	var a models.Analysis
	if err := s.db.Get(analysisID, &a); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("analysis '%s': %w", analysisID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get analysis '%s': %w", analysisID, err)
	}
	return &a, nil
}

// ListAnalyses returns a user's analyses, newest first.
func (s *Store) ListAnalyses(_ context.Context, userID string) ([]*models.Analysis, error) {
	var analyses []models.Analysis
	if err := s.db.Find(&analyses, badgerhold.Where("UserID").Eq(userID).Index("UserID")); err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	sort.Slice(analyses, func(i, j int) bool {
		return analyses[i].CreatedAt.After(analyses[j].CreatedAt)
	})
	out := make([]*models.Analysis, len(analyses))
	for i := range analyses {
		out[i] = &analyses[i]
	}
	return out, nil
}

func (s *Store) DeleteAnalysis(_ context.Context, analysisID string) error {
	if err := s.db.Delete(analysisID, models.Analysis{}); err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete analysis '%s': %w", analysisID, err)
	}
	return nil
}
