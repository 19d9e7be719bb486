package tasks

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"cs_market/internal/domain"
	"cs_market/internal/domain/entity"
	"cs_market/pkg/application/modules"
	"cs_market/pkg/contextx"
	"cs_market/pkg/errcodes"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type purchaseWriter interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
}

type sellerWriter interface {
	Upsert(ctx context.Context, seller entity.Seller) error
}

type itemWriter interface {
	Create(ctx context.Context, marketHashName string) (int64, error)
}

type Handler struct {
	purchases purchaseWriter
	sellers   sellerWriter
	items     itemWriter
}

func NewHandler(purchases purchaseWriter, sellers sellerWriter, items itemWriter) *Handler {
	return &Handler{
		purchases: purchases,
		sellers:   sellers,
		items:     items,
	}
}

// Handlers returns the mux registrations for the asynq server.
func (h *Handler) Handlers() []modules.AsynqHandler {
	return []modules.AsynqHandler{
		{Pattern: TypeRecordPurchase, Handle: h.HandleRecordPurchase},
		{Pattern: TypeTrackItem, Handle: h.HandleTrackItem},
	}
}

// HandleRecordPurchase upserts the counterparty and writes the purchase row.
// A duplicate purchase means an earlier attempt already landed, so the task
// completes instead of retrying.
func (h *Handler) HandleRecordPurchase(ctx context.Context, t *asynq.Task) error {
	var payload RecordPurchasePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("json.Unmarshal: %v: %w", err, asynq.SkipRetry)
	}

	if err := h.sellers.Upsert(ctx, payload.Seller); err != nil {
		return fmt.Errorf("sellers.Upsert: %w", err)
	}

	if err := h.purchases.Create(ctx, &payload.Purchase); err != nil {
		if domain.HasCode(err, errcodes.DuplicatePurchase) {
			logger(ctx).Info("purchase already recorded",
				"trade_id", payload.Purchase.TradeID,
			)
			return nil
		}

		return fmt.Errorf("purchases.Create: %w", err)
	}

	logger(ctx).Info("purchase recorded",
		"trade_id", payload.Purchase.TradeID,
		"market_hash_name", payload.Purchase.MarketHashName,
	)

	return nil
}

// HandleTrackItem registers the item for periodic price refresh.
func (h *Handler) HandleTrackItem(ctx context.Context, t *asynq.Task) error {
	var payload TrackItemPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("json.Unmarshal: %v: %w", err, asynq.SkipRetry)
	}

	if _, err := h.items.Create(ctx, payload.MarketHashName); err != nil {
		return fmt.Errorf("items.Create: %w", err)
	}

	return nil
}
