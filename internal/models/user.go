package models

import "time"

// Roles for User.Role.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is a registered account.
type User struct {
	UserID       string    `json:"user_id" badgerhold:"key"`
	Email        string    `json:"email" badgerhold:"index"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	DisplayName  string    `json:"display_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	ModifiedAt   time.Time `json:"modified_at"`
}

// UserSettings holds per-user valuation preferences, including the EUR
// calibration state. EurAdjustmentFactor defaults to 1.0 (uncalibrated).
type UserSettings struct {
	UserID                  string     `json:"user_id" badgerhold:"key"`
	EurAdjustmentFactor     float64    `json:"eur_adjustment_factor"`
	ReferencePortfolioValue *float64   `json:"reference_portfolio_value,omitempty"`
	LastCalibrationAt       *time.Time `json:"last_calibration_at,omitempty"`
	UpdatedAt               time.Time  `json:"updated_at"`
}

// DefaultUserSettings returns the uncalibrated settings for a user.
func DefaultUserSettings(userID string) *UserSettings {
	return &UserSettings{
		UserID:              userID,
		EurAdjustmentFactor: 1.0,
	}
}

// AssetCalibration is a per-asset price correction factor. Persisted as an
// extension point; it does not feed into the portfolio valuation path.
type AssetCalibration struct {
	ID               string    `json:"id" badgerhold:"key"` // userID + assetID composite
	UserID           string    `json:"user_id" badgerhold:"index"`
	AssetID          string    `json:"asset_id"`
	AdjustmentFactor float64   `json:"adjustment_factor"`
	ReferencePrice   float64   `json:"reference_price"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
