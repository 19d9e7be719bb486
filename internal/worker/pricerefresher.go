package worker

import (
	"context"
	"time"

	cache "github.com/patrickmn/go-cache"

	"cs_market/internal/domain/entity"
	"cs_market/internal/domain/service/pricing"
	"cs_market/pkg/logx"
	"cs_market/pkg/retryx"
)

type itemStore interface {
	ListNeedingRefresh(ctx context.Context, updatedBefore time.Time) ([]entity.Item, error)
	UpdatePrice(ctx context.Context, itemID int64, quote entity.Quote) error
}

type quoteSource interface {
	Listings(ctx context.Context, marketHashName string) ([]entity.Listing, error)
	BuyOrders(ctx context.Context, listingID string) ([]entity.BuyOrder, error)
}

// PriceRefresher recomputes stored quotes for tracked items. The marketplace
// rate-limits aggressively, so items are walked in batches with a pause
// between them.
type PriceRefresher struct {
	items  itemStore
	market quoteSource
	calc   *pricing.Calculator
	quotes *cache.Cache

	interval   time.Duration
	batchSize  int
	batchPause time.Duration
}

func NewPriceRefresher(items itemStore, market quoteSource, calc *pricing.Calculator) *PriceRefresher {
	return &PriceRefresher{
		items:      items,
		market:     market,
		calc:       calc,
		quotes:     cache.New(30*time.Minute, 10*time.Minute),
		interval:   time.Hour,
		batchSize:  20,
		batchPause: 61 * time.Second,
	}
}

func (r *PriceRefresher) WithSchedule(interval time.Duration, batchSize int, batchPause time.Duration) *PriceRefresher {
	r.interval = interval
	r.batchSize = batchSize
	r.batchPause = batchPause
	return r
}

func (r *PriceRefresher) Run(ctx context.Context) error {
	logger(ctx).Info("price refresher started",
		"interval", r.interval,
		"batch_size", r.batchSize,
	)

	for {
		r.pass(ctx)

		select {
		case <-ctx.Done():
			logger(ctx).Info("price refresher stopped")
			return ctx.Err()
		case <-time.After(r.interval):
		}
	}
}

func (r *PriceRefresher) pass(ctx context.Context) {
	items, err := r.items.ListNeedingRefresh(ctx, time.Now().Add(-r.interval))
	if err != nil {
		logger(ctx).Error("listing items for refresh", logx.Error(err))
		return
	}

	if len(items) == 0 {
		return
	}

	for i, item := range items {
		if i > 0 && i%r.batchSize == 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(r.batchPause):
			}
		}

		if err := r.refresh(ctx, item); err != nil {
			priceRefreshErrors.Inc()
			logger(ctx).Error("refreshing item price",
				"market_hash_name", item.MarketHashName,
				logx.Error(err),
			)
		}
	}

	logger(ctx).Info("price refresh pass complete", "items", len(items))
}

func (r *PriceRefresher) refresh(ctx context.Context, item entity.Item) error {
	quote, ok := r.cachedQuote(item.MarketHashName)
	if !ok {
		var err error

		quote, err = r.fetchQuote(ctx, item.MarketHashName)
		if err != nil {
			return err
		}

		r.quotes.SetDefault(item.MarketHashName, quote)
	}

	if quote.IsZero() {
		logger(ctx).Warn("no quote available", "market_hash_name", item.MarketHashName)
		return nil
	}

	err := retryx.Do(ctx, retryx.DefaultMaxAttempts, retryx.DefaultInitialInterval, func() error {
		return r.items.UpdatePrice(ctx, item.ID, quote)
	})
	if err != nil {
		return err
	}

	pricesRefreshed.Inc()

	return nil
}

func (r *PriceRefresher) fetchQuote(ctx context.Context, marketHashName string) (entity.Quote, error) {
	listings, err := r.market.Listings(ctx, marketHashName)
	if err != nil {
		return entity.Quote{}, err
	}

	if len(listings) == 0 {
		return entity.Quote{}, nil
	}

	buyOrders, err := r.market.BuyOrders(ctx, listings[0].ID)
	if err != nil {
		return entity.Quote{}, err
	}

	return r.calc.Compute(listings, buyOrders), nil
}

func (r *PriceRefresher) cachedQuote(marketHashName string) (entity.Quote, bool) {
	v, ok := r.quotes.Get(marketHashName)
	if !ok {
		return entity.Quote{}, false
	}

	quote, ok := v.(entity.Quote)

	return quote, ok
}
