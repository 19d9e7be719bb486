// This file should be generated from an openapi specification and be named
// types.gen.go.
package rest

type Purchase struct {
	ID             int64  `json:"id"`
	AssetID        int64  `json:"assetId"`
	MarketHashName string `json:"marketHashName"`
	PriceEmpire    int64  `json:"priceEmpire"`
	PriceFloat     int64  `json:"priceFloat"`
	SellerID       int64  `json:"sellerId"`
	TradeID        int64  `json:"tradeId"`
	PurchasedAt    string `json:"purchasedAt"`
}

type Seller struct {
	SteamID    int64  `json:"steamId,string"`
	Name       string `json:"name"`
	ProfileURL string `json:"profileUrl"`
}

type Item struct {
	ID             int64  `json:"id"`
	MarketHashName string `json:"marketHashName"`
}

type NewItem struct {
	MarketHashName string `json:"marketHashName" validate:"required,min=1,max=255"`
}

type ItemPrice struct {
	ItemID         int64  `json:"itemId"`
	MarketHashName string `json:"marketHashName"`
	PriceEmpire    int64  `json:"priceEmpire"`
	PriceFloat     int64  `json:"priceFloat"`
	UpdatedAt      string `json:"updatedAt"`
}

// Error is the error model.
type Error struct {
	// Code is the error code.
	Code ErrorCode `json:"code"`

	// Message is the error message (for future UI display).
	Message string `json:"message"`
}

// ErrorCode is the error code.
type ErrorCode string
