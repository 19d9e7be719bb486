// Package matching reconciles pending platform withdrawals against incoming
// Steam trade offers. The matcher is pure: it produces decisions and leaves
// every side effect to the caller.
package matching

import (
	"time"

	"cs_market/internal/domain/entity"
)

// DisputeWindow: a withdrawal whose acceptance window closes in less than
// this without being marked sent is flagged for dispute.
const DisputeWindow = 540 * time.Second

// Kind discriminates match decisions.
type Kind int

const (
	// KindAccept — the offer hands over exactly the item the withdrawal's
	// counterparty owes us.
	KindAccept Kind = iota + 1
	// KindDeclineUnsolicited — the offer asks for items from our inventory;
	// the bot never gives items away.
	KindDeclineUnsolicited
	// KindDispute — the withdrawal is about to expire unsent.
	KindDispute
)

// Decision is one pure output of a matching pass.
type Decision struct {
	Kind       Kind
	Withdrawal entity.Withdrawal // set for Accept and Dispute
	Offer      entity.TradeOffer // set for Accept and DeclineUnsolicited
}

// Match walks withdrawals in input order and pairs each with at most one
// incoming offer. Offers are never reused: consumed ids are tracked in a set
// over the immutable input snapshot. First fit wins; there is no scoring.
//
// A dispute and an accept may both fire for the same withdrawal in one pass.
// Offers left unconsumed are returned for reporting only; no decision is
// taken on them.
func Match(withdrawals []entity.Withdrawal, offers []entity.TradeOffer, now time.Time) ([]Decision, []entity.TradeOffer) {
	decisions := make([]Decision, 0, len(withdrawals))
	consumed := make(map[int64]struct{}, len(offers))

	for _, w := range withdrawals {
		if w.ExpiringWithin(now, DisputeWindow) && w.Status != entity.WithdrawalStatusSent {
			decisions = append(decisions, Decision{Kind: KindDispute, Withdrawal: w})
		}

		for _, o := range offers {
			if _, ok := consumed[o.ID]; ok {
				continue
			}

			// Unsolicited proposals are drained out of consideration as soon
			// as any scan encounters them.
			if o.IsGiveaway() {
				decisions = append(decisions, Decision{Kind: KindDeclineUnsolicited, Offer: o})
				consumed[o.ID] = struct{}{}
				continue
			}

			if !matches(w, o) {
				continue
			}

			decisions = append(decisions, Decision{Kind: KindAccept, Withdrawal: w, Offer: o})
			consumed[o.ID] = struct{}{}
			break
		}
	}

	var unmatched []entity.TradeOffer
	for _, o := range offers {
		if _, ok := consumed[o.ID]; !ok {
			unmatched = append(unmatched, o)
		}
	}

	return decisions, unmatched
}

// matches reports whether a pure-receive offer settles the withdrawal: one
// single incoming item, same counterparty, same market hash name.
func matches(w entity.Withdrawal, o entity.TradeOffer) bool {
	if len(o.ItemsToReceive) != 1 {
		return false
	}

	return o.PartnerSteamID64() == w.PartnerSteamID64 &&
		o.ItemsToReceive[0].MarketHashName == w.MarketName
}
