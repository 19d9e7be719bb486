package entity

import "time"

// Purchase is the persisted record of one accepted withdrawal match.
type Purchase struct {
	ID             int64
	AssetID        int64
	MarketHashName string
	PriceEmpire    int64 // what the buyer paid, platform coins
	PriceFloat     int64 // the same value in float-market currency
	SellerID       int64 // counterparty steam id64
	TradeID        int64
	PurchasedAt    time.Time
}

// Seller is a counterparty identity, upserted on every accepted match.
type Seller struct {
	SteamID64  int64
	Name       string
	ProfileURL string
}

// Item is a tracked skin whose price is periodically refreshed.
type Item struct {
	ID             int64
	MarketHashName string
}

// ItemPrice is the latest stored quote for a tracked item.
type ItemPrice struct {
	ItemID         int64
	MarketHashName string
	Quote          Quote
	UpdatedAt      time.Time
}
