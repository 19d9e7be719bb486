package entity

import "time"

// WithdrawalStatus is the trading platform's numeric trade status. The codes
// are the platform API's, not ours; only the two we act on are named.
type WithdrawalStatus int

const (
	// WithdrawalStatusProcessing — the purchase is paid and the item awaits
	// delivery.
	WithdrawalStatusProcessing WithdrawalStatus = 5
	// WithdrawalStatusSent — the seller's trade offer is marked sent / in
	// transit.
	WithdrawalStatusSent WithdrawalStatus = 11
)

// Withdrawal is a pending transfer-in on the trading platform: an item the
// bot bought there that the seller still has to deliver over Steam.
type Withdrawal struct {
	DepositID         int64
	MarketName        string
	TotalValue        int64 // platform coins, minor units
	Status            WithdrawalStatus
	TradeOfferID      int64
	CreatedAt         time.Time
	ExpiresAt         time.Time
	PartnerSteamID64  int64
	PartnerName       string
	PartnerProfileURL string
}

// ExpiringWithin reports whether the withdrawal's acceptance window closes in
// less than d from now.
func (w Withdrawal) ExpiringWithin(now time.Time, d time.Duration) bool {
	return w.ExpiresAt.Sub(now) < d
}
