// Package worker holds the long-running loops: trade reconciliation against
// the trading platform and periodic price refresh from the float marketplace.
package worker

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"cs_market/internal/domain"
	"cs_market/internal/domain/entity"
	"cs_market/internal/domain/service/matching"
	"cs_market/internal/domain/service/pricing"
	"cs_market/pkg/errcodes"
	"cs_market/pkg/logx"
	"cs_market/pkg/retryx"
)

type tradingPlatform interface {
	ActiveTrades(ctx context.Context) ([]entity.Withdrawal, error)
	Dispute(ctx context.Context, depositID int64) error
	MarkReceived(ctx context.Context, depositID int64) error
}

type steamBackend interface {
	IncomingOffers(ctx context.Context) ([]entity.TradeOffer, error)
	AcceptOffer(ctx context.Context, offerID int64) (bool, error)
	DeclineOffer(ctx context.Context, offerID int64) error
}

type persistQueue interface {
	RecordPurchase(ctx context.Context, purchase entity.Purchase, seller entity.Seller) error
	TrackItem(ctx context.Context, marketHashName string) error
}

type deduper interface {
	Once(ctx context.Context, key string) (bool, error)
}

// Reconciler drives the poll-match-act loop. One pass fetches the platform
// withdrawals and the incoming Steam offers, runs the pure matcher and
// executes every decision concurrently; the next tick never starts while
// side effects of the previous one are still in flight.
type Reconciler struct {
	platform tradingPlatform
	steam    steamBackend
	queue    persistQueue
	dedup    deduper
	calc     *pricing.Calculator
	alerts   chan<- entity.Alert

	pollInterval time.Duration
	pollJitter   time.Duration
}

func NewReconciler(
	platform tradingPlatform,
	steam steamBackend,
	queue persistQueue,
	dedup deduper,
	calc *pricing.Calculator,
	alerts chan<- entity.Alert,
) *Reconciler {
	return &Reconciler{
		platform:     platform,
		steam:        steam,
		queue:        queue,
		dedup:        dedup,
		calc:         calc,
		alerts:       alerts,
		pollInterval: time.Minute,
		pollJitter:   2 * time.Minute,
	}
}

func (r *Reconciler) WithPollInterval(interval, jitter time.Duration) *Reconciler {
	r.pollInterval = interval
	r.pollJitter = jitter
	return r
}

func (r *Reconciler) Run(ctx context.Context) error {
	logger(ctx).Info("reconciler started",
		"poll_interval", r.pollInterval,
		"poll_jitter", r.pollJitter,
	)

	for {
		r.pass(ctx)

		select {
		case <-ctx.Done():
			logger(ctx).Info("reconciler stopped")
			return ctx.Err()
		case <-time.After(r.nextDelay()):
		}
	}
}

// nextDelay spreads passes out so the poll never aligns with other API
// consumers of the same account.
func (r *Reconciler) nextDelay() time.Duration {
	if r.pollJitter <= 0 {
		return r.pollInterval
	}

	return r.pollInterval + rand.N(r.pollJitter)
}

func (r *Reconciler) pass(ctx context.Context) {
	defer reconcilerPasses.Inc()

	withdrawals, err := r.platform.ActiveTrades(ctx)
	if err != nil {
		logger(ctx).Error("fetching active trades", logx.Error(err))
		return
	}

	// No pending withdrawals means nothing can match; skip the Steam fetch.
	if len(withdrawals) == 0 {
		return
	}

	offers, err := r.steam.IncomingOffers(ctx)
	if err != nil {
		logger(ctx).Error("fetching trade offers", logx.Error(err))
		return
	}

	decisions, unmatched := matching.Match(withdrawals, offers, time.Now())

	for _, o := range unmatched {
		logger(ctx).Debug("offer left pending",
			"tradeoffer_id", o.ID,
			"partner_steam_id", o.PartnerSteamID64(),
		)
	}

	var wg sync.WaitGroup
	for _, d := range decisions {
		wg.Add(1)

		go func() {
			defer wg.Done()
			r.execute(ctx, d)
		}()
	}
	wg.Wait()
}

func (r *Reconciler) execute(ctx context.Context, d matching.Decision) {
	switch d.Kind {
	case matching.KindAccept:
		r.accept(ctx, d)
	case matching.KindDispute:
		r.dispute(ctx, d.Withdrawal)
	case matching.KindDeclineUnsolicited:
		r.decline(ctx, d.Offer)
	}
}

func (r *Reconciler) accept(ctx context.Context, d matching.Decision) {
	w := d.Withdrawal

	var accepted bool
	err := retryx.Do(ctx, retryx.DefaultMaxAttempts, retryx.DefaultInitialInterval, func() error {
		var err error
		accepted, err = r.steam.AcceptOffer(ctx, d.Offer.ID)
		return err
	})
	if err != nil {
		r.deadLetter(ctx, w, fmt.Sprintf("accept offer %d: %v", d.Offer.ID, err))
		return
	}

	if !accepted {
		logger(ctx).Warn("offer not accepted", "tradeoffer_id", d.Offer.ID)
		return
	}

	tradesAccepted.Inc()
	logger(ctx).Info("offer accepted",
		"tradeoffer_id", d.Offer.ID,
		"market_name", w.MarketName,
		"partner_steam_id", w.PartnerSteamID64,
	)

	r.markReceived(ctx, w)
	r.recordPurchase(ctx, w, d.Offer)
	r.notify(ctx, entity.Alert{Kind: entity.AlertPurchased, Withdrawal: w})
}

// markReceived confirms delivery on the platform. A 404 means the platform
// already closed the trade on its side and counts as done.
func (r *Reconciler) markReceived(ctx context.Context, w entity.Withdrawal) {
	err := retryx.Do(ctx, retryx.DefaultMaxAttempts, retryx.DefaultInitialInterval, func() error {
		err := r.platform.MarkReceived(ctx, w.DepositID)
		if domain.HasCode(err, errcodes.TradeNotFound) {
			logger(ctx).Info("trade already closed on platform", "deposit_id", w.DepositID)
			return nil
		}
		return err
	})
	if err != nil {
		r.deadLetter(ctx, w, fmt.Sprintf("mark received %d: %v", w.DepositID, err))
	}
}

func (r *Reconciler) recordPurchase(ctx context.Context, w entity.Withdrawal, offer entity.TradeOffer) {
	purchase := entity.Purchase{
		AssetID:        offer.ItemsToReceive[0].AssetID,
		MarketHashName: w.MarketName,
		PriceEmpire:    w.TotalValue,
		PriceFloat:     r.calc.FloatFromEmpire(w.TotalValue),
		SellerID:       w.PartnerSteamID64,
		TradeID:        w.TradeOfferID,
		PurchasedAt:    time.Now(),
	}

	seller := entity.Seller{
		SteamID64:  w.PartnerSteamID64,
		Name:       w.PartnerName,
		ProfileURL: w.PartnerProfileURL,
	}

	if err := r.queue.RecordPurchase(ctx, purchase, seller); err != nil {
		logger(ctx).Error("enqueueing purchase record",
			"trade_id", w.TradeOfferID,
			logx.Error(err),
		)
	}

	if err := r.queue.TrackItem(ctx, w.MarketName); err != nil {
		logger(ctx).Error("enqueueing item tracking",
			"market_name", w.MarketName,
			logx.Error(err),
		)
	}
}

func (r *Reconciler) dispute(ctx context.Context, w entity.Withdrawal) {
	first, err := r.dedup.Once(ctx, fmt.Sprintf("dispute:%d", w.DepositID))
	if err != nil {
		// Better a duplicate dispute than a missed one.
		logger(ctx).Error("dispute dedup check", logx.Error(err))
	} else if !first {
		return
	}

	err = retryx.Do(ctx, retryx.DefaultMaxAttempts, retryx.DefaultInitialInterval, func() error {
		return r.platform.Dispute(ctx, w.DepositID)
	})
	if err != nil {
		r.deadLetter(ctx, w, fmt.Sprintf("dispute %d: %v", w.DepositID, err))
		return
	}

	tradesDisputed.Inc()
	logger(ctx).Warn("withdrawal disputed",
		"deposit_id", w.DepositID,
		"market_name", w.MarketName,
		"expires_at", w.ExpiresAt,
	)

	r.notify(ctx, entity.Alert{Kind: entity.AlertDisputed, Withdrawal: w})
}

func (r *Reconciler) decline(ctx context.Context, offer entity.TradeOffer) {
	err := retryx.Do(ctx, retryx.DefaultMaxAttempts, retryx.DefaultInitialInterval, func() error {
		return r.steam.DeclineOffer(ctx, offer.ID)
	})
	if err != nil {
		deadLetters.Inc()
		logger(ctx).Error("declining offer",
			"tradeoffer_id", offer.ID,
			logx.Error(err),
		)
		return
	}

	offersDeclined.Inc()
	logger(ctx).Info("unsolicited offer declined",
		"tradeoffer_id", offer.ID,
		"partner_steam_id", offer.PartnerSteamID64(),
	)
}

func (r *Reconciler) deadLetter(ctx context.Context, w entity.Withdrawal, detail string) {
	deadLetters.Inc()
	logger(ctx).Error("action abandoned", "detail", detail)
	r.notify(ctx, entity.Alert{Kind: entity.AlertDeadLetter, Withdrawal: w, Detail: detail})
}

// notify never blocks a pass on a slow notifier.
func (r *Reconciler) notify(ctx context.Context, alert entity.Alert) {
	select {
	case r.alerts <- alert:
	default:
		logger(ctx).Warn("alerts channel full, dropping alert", "kind", alert.Kind)
	}
}
