package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"cs_market/internal/domain/entity"
	"cs_market/internal/domain/service/pricing"
)

type fakePlatform struct {
	mu          sync.Mutex
	withdrawals []entity.Withdrawal
	disputed    []int64
	received    []int64
}

func (f *fakePlatform) ActiveTrades(context.Context) ([]entity.Withdrawal, error) {
	return f.withdrawals, nil
}

func (f *fakePlatform) Dispute(_ context.Context, depositID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.disputed = append(f.disputed, depositID)
	return nil
}

func (f *fakePlatform) MarkReceived(_ context.Context, depositID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.received = append(f.received, depositID)
	return nil
}

type fakeSteam struct {
	mu       sync.Mutex
	offers   []entity.TradeOffer
	fetched  bool
	accepted []int64
	declined []int64
}

func (f *fakeSteam) IncomingOffers(context.Context) ([]entity.TradeOffer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetched = true
	return f.offers, nil
}

func (f *fakeSteam) AcceptOffer(_ context.Context, offerID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accepted = append(f.accepted, offerID)
	return true, nil
}

func (f *fakeSteam) DeclineOffer(_ context.Context, offerID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.declined = append(f.declined, offerID)
	return nil
}

type fakeQueue struct {
	mu        sync.Mutex
	purchases []entity.Purchase
	sellers   []entity.Seller
	tracked   []string
}

func (f *fakeQueue) RecordPurchase(_ context.Context, p entity.Purchase, s entity.Seller) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.purchases = append(f.purchases, p)
	f.sellers = append(f.sellers, s)
	return nil
}

func (f *fakeQueue) TrackItem(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tracked = append(f.tracked, name)
	return nil
}

type fakeDedup struct {
	mu   sync.Mutex
	seen map[string]bool
}

func (f *fakeDedup) Once(_ context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.seen == nil {
		f.seen = map[string]bool{}
	}
	if f.seen[key] {
		return false, nil
	}
	f.seen[key] = true
	return true, nil
}

func newTestReconciler(t *testing.T, platform *fakePlatform, steam *fakeSteam) (*Reconciler, *fakeQueue, chan entity.Alert) {
	t.Helper()

	calc, err := pricing.NewCalculator(2.5)
	require.NoError(t, err)

	queue := &fakeQueue{}
	alerts := make(chan entity.Alert, 16)

	return NewReconciler(platform, steam, queue, &fakeDedup{}, calc, alerts), queue, alerts
}

func TestPassAcceptsMatchingOffer(t *testing.T) {
	rq := require.New(t)

	partnerSteamID := entity.SteamID64FromAccountID(111222333)

	platform := &fakePlatform{
		withdrawals: []entity.Withdrawal{{
			DepositID:        101,
			MarketName:       "AK-47 | Redline (Field-Tested)",
			TotalValue:       4200,
			Status:           entity.WithdrawalStatusProcessing,
			TradeOfferID:     9001,
			ExpiresAt:        time.Now().Add(time.Hour),
			PartnerSteamID64: partnerSteamID,
			PartnerName:      "seller",
		}},
	}

	steam := &fakeSteam{
		offers: []entity.TradeOffer{{
			ID:               7450001,
			PartnerAccountID: 111222333,
			ItemsToReceive: []entity.TradeItem{{
				AssetID:        900100,
				MarketHashName: "AK-47 | Redline (Field-Tested)",
			}},
		}},
	}

	r, queue, alerts := newTestReconciler(t, platform, steam)
	r.pass(context.Background())

	rq.Equal([]int64{7450001}, steam.accepted)
	rq.Equal([]int64{101}, platform.received)

	rq.Len(queue.purchases, 1)
	p := queue.purchases[0]
	rq.Equal(int64(900100), p.AssetID)
	rq.Equal(int64(4200), p.PriceEmpire)
	rq.Equal(r.calc.FloatFromEmpire(4200), p.PriceFloat)
	rq.Equal(partnerSteamID, p.SellerID)
	rq.Equal(int64(9001), p.TradeID)

	rq.Equal([]string{"AK-47 | Redline (Field-Tested)"}, queue.tracked)

	alert := <-alerts
	rq.Equal(entity.AlertPurchased, alert.Kind)
}

func TestPassSkipsSteamWithoutWithdrawals(t *testing.T) {
	rq := require.New(t)

	steam := &fakeSteam{}
	r, _, _ := newTestReconciler(t, &fakePlatform{}, steam)

	r.pass(context.Background())

	rq.False(steam.fetched)
}

func TestPassDeclinesGiveaway(t *testing.T) {
	rq := require.New(t)

	platform := &fakePlatform{
		withdrawals: []entity.Withdrawal{{
			DepositID:  101,
			MarketName: "AK-47 | Redline (Field-Tested)",
			ExpiresAt:  time.Now().Add(time.Hour),
		}},
	}

	steam := &fakeSteam{
		offers: []entity.TradeOffer{{
			ID:          7450002,
			ItemsToGive: []entity.TradeItem{{AssetID: 1, MarketHashName: "our item"}},
		}},
	}

	r, _, _ := newTestReconciler(t, platform, steam)
	r.pass(context.Background())

	rq.Equal([]int64{7450002}, steam.declined)
	rq.Empty(steam.accepted)
}

func TestDisputeFiredOncePerWithdrawal(t *testing.T) {
	rq := require.New(t)

	platform := &fakePlatform{
		withdrawals: []entity.Withdrawal{{
			DepositID:  101,
			MarketName: "AK-47 | Redline (Field-Tested)",
			Status:     entity.WithdrawalStatusProcessing,
			ExpiresAt:  time.Now().Add(time.Minute), // inside the dispute window
		}},
	}

	r, _, alerts := newTestReconciler(t, platform, &fakeSteam{})

	r.pass(context.Background())
	r.pass(context.Background())

	rq.Equal([]int64{101}, platform.disputed)

	alert := <-alerts
	rq.Equal(entity.AlertDisputed, alert.Kind)
	rq.Empty(alerts)
}
