package server

import (
	"time"

	"cs_market/internal/domain/entity"
	"cs_market/pkg/rest"
)

func newRESTPurchase(p entity.Purchase) rest.Purchase {
	return rest.Purchase{
		ID:             p.ID,
		AssetID:        p.AssetID,
		MarketHashName: p.MarketHashName,
		PriceEmpire:    p.PriceEmpire,
		PriceFloat:     p.PriceFloat,
		SellerID:       p.SellerID,
		TradeID:        p.TradeID,
		PurchasedAt:    p.PurchasedAt.Format(time.RFC3339),
	}
}

func newRESTSeller(s entity.Seller) rest.Seller {
	return rest.Seller{
		SteamID:    s.SteamID64,
		Name:       s.Name,
		ProfileURL: s.ProfileURL,
	}
}

func newRESTItemPrice(p entity.ItemPrice) rest.ItemPrice {
	return rest.ItemPrice{
		ItemID:         p.ItemID,
		MarketHashName: p.MarketHashName,
		PriceEmpire:    p.Quote.EmpirePrice,
		PriceFloat:     p.Quote.FloatPrice,
		UpdatedAt:      p.UpdatedAt.Format(time.RFC3339),
	}
}
