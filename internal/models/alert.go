package models

import "time"

// AlertKind distinguishes simple price alerts from technical-indicator
// alerts evaluated by the workflow engine.
type AlertKind string

const (
	AlertKindPrice     AlertKind = "price"
	AlertKindTechnical AlertKind = "technical"
)

// Alert directions.
const (
	AlertDirectionAbove = "above"
	AlertDirectionBelow = "below"
)

// Alert is a user-configured trigger on an asset. Evaluation runs in the
// external workflow engine; this record is configuration state only.
type Alert struct {
	ID              string     `json:"id" badgerhold:"key"`
	UserID          string     `json:"user_id" badgerhold:"index"`
	AssetID         string     `json:"asset_id"`
	Kind            AlertKind  `json:"kind"`
	Indicator       string     `json:"indicator,omitempty"` // technical alerts: "rsi", "macd", "bollinger"
	Direction       string     `json:"direction"`           // "above" or "below"
	Threshold       float64    `json:"threshold"`
	Active          bool       `json:"active"`
	LastTriggeredAt *time.Time `json:"last_triggered_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
