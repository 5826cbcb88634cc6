package models

import "time"

// AssetType classifies an asset in the catalog.
type AssetType string

const (
	AssetTypeStock     AssetType = "stock"
	AssetTypeCrypto    AssetType = "crypto"
	AssetTypeETF       AssetType = "etf"
	AssetTypeBond      AssetType = "bond"
	AssetTypeCommodity AssetType = "commodity"
)

// ValidAssetType reports whether t is a known asset type.
func ValidAssetType(t AssetType) bool {
	switch t {
	case AssetTypeStock, AssetTypeCrypto, AssetTypeETF, AssetTypeBond, AssetTypeCommodity:
		return true
	}
	return false
}

// Asset is a tradeable instrument in the catalog. Prices are in the asset's
// native currency; nil means no live price has been ingested yet.
type Asset struct {
	ID             string     `json:"id" badgerhold:"key"`
	Symbol         string     `json:"symbol"`
	Name           string     `json:"name"`
	Type           AssetType  `json:"type"`
	Currency       string     `json:"currency"`
	CurrentPrice   *float64   `json:"current_price"`
	PreviousClose  *float64   `json:"previous_close"`
	PriceUpdatedAt *time.Time `json:"price_updated_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
