package domain

import "encoding/json"

// CatalogDocument is the single JSON document holding all brands, products
// and site settings. Brand and product shapes are owned by the frontend;
// the backend treats them as opaque JSON and only guarantees a lossless
// serialize/deserialize round trip.
type CatalogDocument struct {
	Brands   json.RawMessage `json:"brands"`
	Products json.RawMessage `json:"products"`
	Settings json.RawMessage `json:"settings"`
}

// NewCatalogDocument returns the empty default document written on first
// boot and used as the fail-open fallback when the backing file cannot
// be read or parsed.
func NewCatalogDocument() *CatalogDocument {
	return &CatalogDocument{
		Brands:   json.RawMessage("[]"),
		Products: json.RawMessage("[]"),
		Settings: json.RawMessage("{}"),
	}
}
