package persistence

import (
	"time"

	"cs_market/internal/domain/entity"
)

type itemSchema struct {
	ID             int64  `db:"id"`
	MarketHashName string `db:"market_hash_name"`
}

func (s itemSchema) toDomain() entity.Item {
	return entity.Item{
		ID:             s.ID,
		MarketHashName: s.MarketHashName,
	}
}

type itemPriceSchema struct {
	ItemID         int64     `db:"item_id"`
	MarketHashName string    `db:"market_hash_name"`
	PriceEmpire    int64     `db:"price_empire"`
	PriceFloat     int64     `db:"price_float"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func (s itemPriceSchema) toDomain() entity.ItemPrice {
	return entity.ItemPrice{
		ItemID:         s.ItemID,
		MarketHashName: s.MarketHashName,
		Quote: entity.Quote{
			EmpirePrice: s.PriceEmpire,
			FloatPrice:  s.PriceFloat,
		},
		UpdatedAt: s.UpdatedAt,
	}
}

type sellerSchema struct {
	SteamID    int64  `db:"steam_id"`
	Name       string `db:"name"`
	ProfileURL string `db:"profile_url"`
}

func fromSeller(e entity.Seller) sellerSchema {
	return sellerSchema{
		SteamID:    e.SteamID64,
		Name:       e.Name,
		ProfileURL: e.ProfileURL,
	}
}

func (s sellerSchema) toDomain() entity.Seller {
	return entity.Seller{
		SteamID64:  s.SteamID,
		Name:       s.Name,
		ProfileURL: s.ProfileURL,
	}
}

type purchaseSchema struct {
	ID             int64     `db:"id"`
	AssetID        int64     `db:"asset_id"`
	MarketHashName string    `db:"market_hash_name"`
	PriceEmpire    int64     `db:"price_empire"`
	PriceFloat     int64     `db:"price_float"`
	SellerID       int64     `db:"seller_id"`
	TradeID        int64     `db:"trade_id"`
	PurchasedAt    time.Time `db:"purchased_at"`
}

func fromPurchase(e *entity.Purchase) purchaseSchema {
	return purchaseSchema{
		ID:             e.ID,
		AssetID:        e.AssetID,
		MarketHashName: e.MarketHashName,
		PriceEmpire:    e.PriceEmpire,
		PriceFloat:     e.PriceFloat,
		SellerID:       e.SellerID,
		TradeID:        e.TradeID,
		PurchasedAt:    e.PurchasedAt,
	}
}

func (s purchaseSchema) toDomain() entity.Purchase {
	return entity.Purchase{
		ID:             s.ID,
		AssetID:        s.AssetID,
		MarketHashName: s.MarketHashName,
		PriceEmpire:    s.PriceEmpire,
		PriceFloat:     s.PriceFloat,
		SellerID:       s.SellerID,
		TradeID:        s.TradeID,
		PurchasedAt:    s.PurchasedAt,
	}
}
