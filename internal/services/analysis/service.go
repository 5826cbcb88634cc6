// Package analysis requests AI analyses and trading suggestions from the
// workflow engine and serves the stored results.
package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/arolsen/finboard/internal/common"
	"github.com/arolsen/finboard/internal/interfaces"
	"github.com/arolsen/finboard/internal/models"
)

// Service implements AnalysisService
type Service struct {
	storage  interfaces.StorageManager
	workflow interfaces.WorkflowClient
	logger   *common.Logger
}

// NewService creates a new analysis service
func NewService(storage interfaces.StorageManager, workflow interfaces.WorkflowClient, logger *common.Logger) *Service {
	return &Service{
		storage:  storage,
		workflow: workflow,
		logger:   logger,
	}
}

// Request triggers the engine and stores its response verbatim. The payload
// is opaque JSON; never parsed here. Engine failures surface as errors
// since the user explicitly asked for a side-effecting run.
func (s *Service) Request(ctx context.Context, userID string, kind models.AnalysisKind, scope, targetID string) (*models.Analysis, error) {
	if kind != models.AnalysisKindAnalysis && kind != models.AnalysisKindSuggestion {
		return nil, fmt.Errorf("unknown analysis kind '%s': %w", kind, models.ErrInvalidArgument)
	}
	if scope != models.AnalysisScopeAsset && scope != models.AnalysisScopePortfolio {
		return nil, fmt.Errorf("scope must be 'asset' or 'portfolio': %w", models.ErrInvalidArgument)
	}
	if targetID == "" {
		return nil, fmt.Errorf("target_id is required: %w", models.ErrInvalidArgument)
	}
	if s.workflow == nil {
		return nil, fmt.Errorf("workflow engine is not configured")
	}

	// Verify the target exists before paying for a workflow run.
	switch scope {
	case models.AnalysisScopeAsset:
		if _, err := s.storage.AssetStore().GetAsset(ctx, targetID); err != nil {
			return nil, fmt.Errorf("asset '%s': %w", targetID, models.ErrNotFound)
		}
	case models.AnalysisScopePortfolio:
		p, err := s.storage.PortfolioStore().GetPortfolio(ctx, targetID)
		if err != nil || p.UserID != userID {
			return nil, fmt.Errorf("portfolio '%s': %w", targetID, models.ErrNotFound)
		}
	}

	req := interfaces.WorkflowRequest{
		UserID:   userID,
		Scope:    scope,
		TargetID: targetID,
	}

	var payload []byte
	var err error
	if kind == models.AnalysisKindSuggestion {
		payload, err = s.workflow.TriggerSuggestion(ctx, req)
	} else {
		payload, err = s.workflow.TriggerAnalysis(ctx, req)
	}
	if err != nil {
		return nil, fmt.Errorf("workflow engine request failed: %w", err)
	}

	a := &models.Analysis{
		ID:        uuid.New().String(),
		UserID:    userID,
		Kind:      kind,
		Scope:     scope,
		TargetID:  targetID,
		Payload:   payload,
		CreatedAt: time.Now(),
	}

	if err := s.storage.AnalysisStore().SaveAnalysis(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to store analysis: %w", err)
	}

	s.logger.Info().
		Str("analysis_id", a.ID).
		Str("kind", string(kind)).
		Str("scope", scope).
		Str("target_id", targetID).
		Int("payload_bytes", len(payload)).
		Msg("Analysis stored")

	return a, nil
}

// Get retrieves one stored analysis, enforcing ownership.
func (s *Service) Get(ctx context.Context, userID, analysisID string) (*models.Analysis, error) {
	a, err := s.storage.AnalysisStore().GetAnalysis(ctx, analysisID)
	if err != nil || a.UserID != userID {
		return nil, fmt.Errorf("analysis '%s': %w", analysisID, models.ErrNotFound)
	}
	return a, nil
}

// List returns all stored analyses for a user.
func (s *Service) List(ctx context.Context, userID string) ([]*models.Analysis, error) {
	return s.storage.AnalysisStore().ListAnalyses(ctx, userID)
}

// Delete removes a stored analysis.
func (s *Service) Delete(ctx context.Context, userID, analysisID string) error {
	if _, err := s.Get(ctx, userID, analysisID); err != nil {
		return err
	}
	if err := s.storage.AnalysisStore().DeleteAnalysis(ctx, analysisID); err != nil {
		return fmt.Errorf("failed to delete analysis: %w", err)
	}
	return nil
}

// Ensure Service implements AnalysisService
var _ interfaces.AnalysisService = (*Service)(nil)
