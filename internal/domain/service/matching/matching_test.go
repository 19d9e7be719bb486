package matching_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"cs_market/internal/domain/entity"
	"cs_market/internal/domain/service/matching"
)

const (
	partnerAccountID = int64(111222333)
	otherAccountID   = int64(444555666)
)

func withdrawal(name string, accountID int64) entity.Withdrawal {
	return entity.Withdrawal{
		DepositID:        1,
		MarketName:       name,
		Status:           entity.WithdrawalStatusProcessing,
		ExpiresAt:        time.Now().Add(time.Hour),
		PartnerSteamID64: entity.SteamID64FromAccountID(accountID),
	}
}

func receiveOffer(id int64, accountID int64, names ...string) entity.TradeOffer {
	items := make([]entity.TradeItem, 0, len(names))
	for i, n := range names {
		items = append(items, entity.TradeItem{AssetID: id*100 + int64(i), MarketHashName: n})
	}

	return entity.TradeOffer{
		ID:               id,
		PartnerAccountID: accountID,
		ItemsToReceive:   items,
	}
}

func decisionsOfKind(decisions []matching.Decision, kind matching.Kind) []matching.Decision {
	var out []matching.Decision
	for _, d := range decisions {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}

func TestMatchAccept(t *testing.T) {
	rq := require.New(t)
	now := time.Now()

	w := withdrawal("AK-47 | Redline (Field-Tested)", partnerAccountID)
	o := receiveOffer(10, partnerAccountID, "AK-47 | Redline (Field-Tested)")

	decisions, unmatched := matching.Match(
		[]entity.Withdrawal{w},
		[]entity.TradeOffer{o},
		now,
	)

	rq.Len(decisions, 1)
	rq.Equal(matching.KindAccept, decisions[0].Kind)
	rq.Equal(w.PartnerSteamID64, decisions[0].Offer.PartnerSteamID64())
	rq.Empty(unmatched)
}

func TestMatchOfferConsumedOnce(t *testing.T) {
	rq := require.New(t)
	now := time.Now()

	// Two identical withdrawals compete for a single offer.
	w1 := withdrawal("AWP | Asiimov (Field-Tested)", partnerAccountID)
	w2 := withdrawal("AWP | Asiimov (Field-Tested)", partnerAccountID)
	o := receiveOffer(10, partnerAccountID, "AWP | Asiimov (Field-Tested)")

	decisions, unmatched := matching.Match(
		[]entity.Withdrawal{w1, w2},
		[]entity.TradeOffer{o},
		now,
	)

	accepts := decisionsOfKind(decisions, matching.KindAccept)
	rq.Len(accepts, 1)
	rq.Empty(unmatched)
}

func TestMatchFirstFitWins(t *testing.T) {
	rq := require.New(t)
	now := time.Now()

	w := withdrawal("Glock-18 | Fade (Factory New)", partnerAccountID)
	first := receiveOffer(10, partnerAccountID, "Glock-18 | Fade (Factory New)")
	second := receiveOffer(20, partnerAccountID, "Glock-18 | Fade (Factory New)")

	decisions, unmatched := matching.Match(
		[]entity.Withdrawal{w},
		[]entity.TradeOffer{first, second},
		now,
	)

	accepts := decisionsOfKind(decisions, matching.KindAccept)
	rq.Len(accepts, 1)
	rq.Equal(int64(10), accepts[0].Offer.ID)

	rq.Len(unmatched, 1)
	rq.Equal(int64(20), unmatched[0].ID)
}

func TestMatchDeclinesGiveaways(t *testing.T) {
	rq := require.New(t)
	now := time.Now()

	w := withdrawal("M4A4 | Howl (Minimal Wear)", partnerAccountID)

	// The offer would match on partner and name, but it asks for one of our
	// items in return.
	trap := receiveOffer(10, partnerAccountID, "M4A4 | Howl (Minimal Wear)")
	trap.ItemsToGive = []entity.TradeItem{{AssetID: 99, MarketHashName: "Karambit | Doppler"}}

	legit := receiveOffer(20, partnerAccountID, "M4A4 | Howl (Minimal Wear)")

	decisions, unmatched := matching.Match(
		[]entity.Withdrawal{w},
		[]entity.TradeOffer{trap, legit},
		now,
	)

	declines := decisionsOfKind(decisions, matching.KindDeclineUnsolicited)
	rq.Len(declines, 1)
	rq.Equal(int64(10), declines[0].Offer.ID)

	accepts := decisionsOfKind(decisions, matching.KindAccept)
	rq.Len(accepts, 1)
	rq.Equal(int64(20), accepts[0].Offer.ID)

	rq.Empty(unmatched)
}

func TestMatchRequiresExactlyOneItem(t *testing.T) {
	rq := require.New(t)
	now := time.Now()

	w := withdrawal("USP-S | Kill Confirmed (Minimal Wear)", partnerAccountID)
	bundled := receiveOffer(10, partnerAccountID,
		"USP-S | Kill Confirmed (Minimal Wear)",
		"P250 | Sand Dune (Battle-Scarred)",
	)

	decisions, unmatched := matching.Match(
		[]entity.Withdrawal{w},
		[]entity.TradeOffer{bundled},
		now,
	)

	rq.Empty(decisionsOfKind(decisions, matching.KindAccept))
	rq.Len(unmatched, 1)
}

func TestMatchWrongPartnerOrName(t *testing.T) {
	rq := require.New(t)
	now := time.Now()

	w := withdrawal("AK-47 | Vulcan (Factory New)", partnerAccountID)

	decisions, unmatched := matching.Match(
		[]entity.Withdrawal{w},
		[]entity.TradeOffer{
			receiveOffer(10, otherAccountID, "AK-47 | Vulcan (Factory New)"),
			receiveOffer(20, partnerAccountID, "AK-47 | Vulcan (Minimal Wear)"),
		},
		now,
	)

	rq.Empty(decisionsOfKind(decisions, matching.KindAccept))
	rq.Len(unmatched, 2)
}

func TestMatchDisputesExpiringUnsent(t *testing.T) {
	rq := require.New(t)
	now := time.Now()

	testCases := []struct {
		name        string
		status      entity.WithdrawalStatus
		expiresIn   time.Duration
		wantDispute bool
	}{
		{"expiring and unsent", entity.WithdrawalStatusProcessing, 5 * time.Minute, true},
		{"expiring but already sent", entity.WithdrawalStatusSent, 5 * time.Minute, false},
		{"not expiring", entity.WithdrawalStatusProcessing, time.Hour, false},
		{"just inside the window", entity.WithdrawalStatusProcessing, matching.DisputeWindow - time.Second, true},
		{"exactly at the window", entity.WithdrawalStatusProcessing, matching.DisputeWindow, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			w := withdrawal("Desert Eagle | Blaze (Factory New)", partnerAccountID)
			w.Status = tc.status
			w.ExpiresAt = now.Add(tc.expiresIn)

			decisions, _ := matching.Match([]entity.Withdrawal{w}, nil, now)

			disputes := decisionsOfKind(decisions, matching.KindDispute)
			if tc.wantDispute {
				rq.Len(disputes, 1)
			} else {
				rq.Empty(disputes)
			}
		})
	}
}

// A dispute never suppresses the match attempt for the same withdrawal.
func TestMatchDisputeAndAcceptBothFire(t *testing.T) {
	rq := require.New(t)
	now := time.Now()

	w := withdrawal("AK-47 | Case Hardened (Well-Worn)", partnerAccountID)
	w.ExpiresAt = now.Add(2 * time.Minute)
	o := receiveOffer(10, partnerAccountID, "AK-47 | Case Hardened (Well-Worn)")

	decisions, unmatched := matching.Match(
		[]entity.Withdrawal{w},
		[]entity.TradeOffer{o},
		now,
	)

	rq.Len(decisionsOfKind(decisions, matching.KindDispute), 1)
	rq.Len(decisionsOfKind(decisions, matching.KindAccept), 1)
	rq.Empty(unmatched)
}

func TestSteamIDConversion(t *testing.T) {
	rq := require.New(t)

	// The fixed Steam64 base offset; matching breaks if this drifts.
	rq.Equal(int64(76561197960265728+111222333), entity.SteamID64FromAccountID(111222333))
}
