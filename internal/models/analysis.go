package models

import (
	"encoding/json"
	"time"
)

// AnalysisKind distinguishes AI analyses from trading suggestions.
type AnalysisKind string

const (
	AnalysisKindAnalysis   AnalysisKind = "analysis"
	AnalysisKindSuggestion AnalysisKind = "suggestion"
)

// Analysis scopes.
const (
	AnalysisScopeAsset     = "asset"
	AnalysisScopePortfolio = "portfolio"
)

// Analysis stores a workflow-engine response verbatim. The payload is opaque
// JSON; finboard never parses it, only stores and serves it.
type Analysis struct {
	ID        string          `json:"id" badgerhold:"key"`
	UserID    string          `json:"user_id" badgerhold:"index"`
	Kind      AnalysisKind    `json:"kind"`
	Scope     string          `json:"scope"`     // "asset" or "portfolio"
	TargetID  string          `json:"target_id"` // asset or portfolio ID
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}
