// Package handler implements the admin bot commands.
package handler

import (
	"context"
	"time"

	"cs_market/internal/domain/entity"
)

type purchaseReader interface {
	ListRecent(ctx context.Context, limit int) ([]entity.Purchase, error)
}

type priceReader interface {
	GetPriceByName(ctx context.Context, marketHashName string) (*entity.ItemPrice, error)
}

type Handler struct {
	purchases purchaseReader
	prices    priceReader
	startedAt time.Time
}

func New(purchases purchaseReader, prices priceReader) *Handler {
	return &Handler{
		purchases: purchases,
		prices:    prices,
		startedAt: time.Now(),
	}
}
