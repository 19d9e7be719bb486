package csfloat

import (
	jsoniter "github.com/json-iterator/go"

	"cs_market/internal/domain/entity"
)

type listingsResponse struct {
	Data []listingSchema `json:"data"`
}

type listingSchema struct {
	ID    string `json:"id"`
	Price int64  `json:"price"`
}

func (s listingSchema) toDomain() entity.Listing {
	return entity.Listing{
		ID:    s.ID,
		Price: s.Price,
	}
}

type buyOrderSchema struct {
	Price int64 `json:"price"`
	// Expression-based orders carry a filter instead of a concrete item and
	// are not comparable with plain orders.
	Expression jsoniter.RawMessage `json:"expression"`
}

func (s buyOrderSchema) toDomain() entity.BuyOrder {
	return entity.BuyOrder{
		Price:         s.Price,
		HasExpression: len(s.Expression) > 0 && string(s.Expression) != "null",
	}
}
