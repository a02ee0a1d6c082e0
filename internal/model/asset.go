package model

// Asset represents a tradable instrument identified by its ticker.
// Assets are created on demand the first time a transaction references them.
type Asset struct {
	ID        string `json:"id"`
	Ticker    string `json:"ticker"`
	Name      string `json:"name"`
	AssetType string `json:"assetType"`
}
