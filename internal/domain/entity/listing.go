package entity

// Listing is one sell offer on the float marketplace order book. Prices are
// integer minor currency units (cents). Immutable once fetched.
type Listing struct {
	ID    string `json:"id"`
	Price int64  `json:"price"`
}

// BuyOrder is a standing offer to purchase an item. Orders created from a
// market expression (bulk/algorithmic orders) are excluded from pricing.
type BuyOrder struct {
	Price         int64 `json:"price"`
	HasExpression bool  `json:"has_expression"`
}

// Quote is the pair of computed prices for an item: the normalized platform
// price and the fee-adjusted floor price on the float marketplace before
// currency conversion. The zero Quote means "no quote available" by
// convention, not an error.
type Quote struct {
	EmpirePrice int64
	FloatPrice  int64
}

// IsZero reports whether no quote could be computed.
func (q Quote) IsZero() bool {
	return q.EmpirePrice == 0 && q.FloatPrice == 0
}
