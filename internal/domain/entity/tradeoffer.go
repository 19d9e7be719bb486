package entity

// steamID64Base is the fixed offset between a Steam account id and its 64-bit
// community id. Matching against platform withdrawals depends on this exact
// value.
const steamID64Base int64 = 76561197960265728

// SteamID64FromAccountID converts a Steam account id to a community id.
func SteamID64FromAccountID(accountID int64) int64 {
	return steamID64Base + accountID
}

// TradeItem is one asset inside a trade offer.
type TradeItem struct {
	AssetID        int64
	MarketHashName string
}

// TradeOffer is an immutable snapshot of an incoming Steam trade offer.
type TradeOffer struct {
	ID               int64
	PartnerAccountID int64
	ItemsToGive      []TradeItem
	ItemsToReceive   []TradeItem
}

// PartnerSteamID64 returns the counterparty's 64-bit Steam id.
func (o TradeOffer) PartnerSteamID64() int64 {
	return SteamID64FromAccountID(o.PartnerAccountID)
}

// IsGiveaway reports whether accepting the offer would hand out any of the
// bot's items. Such offers are never valid trade proposals.
func (o TradeOffer) IsGiveaway() bool {
	return len(o.ItemsToGive) > 0
}
