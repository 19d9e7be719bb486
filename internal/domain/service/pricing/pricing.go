package pricing

import (
	"fmt"
	"math"

	"github.com/samber/lo"

	"cs_market/internal/domain"
	"cs_market/internal/domain/entity"
	"cs_market/pkg/errcodes"
)

const (
	// DefaultFeeFactor is what remains of a sale after the float marketplace
	// takes its fixed 2% cut.
	DefaultFeeFactor = 0.98

	// lowVolumeThreshold: below this listing price (minor units) the sell side
	// is too thin to trust, so the buy order alone sets the floor. At or above
	// it, sell and buy signals are averaged.
	lowVolumeThreshold = 100
)

// Calculator converts float-marketplace order book quotes into normalized
// platform prices. Pure; safe for concurrent use.
type Calculator struct {
	feeFactor float64
	divider   float64
}

// NewCalculator creates a Calculator for the given currency divider. A zero
// divider is a configuration fault and refuses to construct.
func NewCalculator(divider float64) (*Calculator, error) {
	if divider == 0 {
		return nil, domain.NewError(errcodes.InvalidDivider, "currency divider must be non-zero")
	}

	return &Calculator{
		feeFactor: DefaultFeeFactor,
		divider:   divider,
	}, nil
}

// WithFeeFactor overrides the marketplace fee factor.
func (c *Calculator) WithFeeFactor(feeFactor float64) *Calculator {
	c.feeFactor = feeFactor
	return c
}

// Compute derives a Quote from the order book: the lowest listing plus the
// first buy order not generated from a market expression. Listings must
// already be sorted by ascending price, the order both sources return them in.
//
// The zero Quote means no quote is available: empty listings, no qualifying
// buy order, or non-positive prices (bad upstream data is not propagated).
func (c *Calculator) Compute(listings []entity.Listing, buyOrders []entity.BuyOrder) entity.Quote {
	if len(listings) == 0 {
		return entity.Quote{}
	}

	price := listings[0].Price

	qualified := lo.Filter(buyOrders, func(bo entity.BuyOrder, _ int) bool {
		return !bo.HasExpression
	})
	if len(qualified) == 0 {
		return entity.Quote{}
	}

	buyOrderPrice := qualified[0].Price

	if price <= 0 || buyOrderPrice <= 0 {
		return entity.Quote{}
	}

	var floorPrice int64
	if price < lowVolumeThreshold {
		floorPrice = buyOrderPrice
	} else {
		floorPrice = int64(math.Floor(float64(price+buyOrderPrice) / 2))
	}

	afterFee := int64(math.Floor(float64(floorPrice) * c.feeFactor))

	return entity.Quote{
		EmpirePrice: int64(math.Floor(float64(afterFee) / c.divider)),
		FloatPrice:  afterFee,
	}
}

// FloatFromEmpire converts a platform coin amount back into float-market
// currency. Used to price an accepted purchase in both currencies.
func (c *Calculator) FloatFromEmpire(empirePrice int64) int64 {
	return int64(math.Round(float64(empirePrice) * c.divider / c.feeFactor))
}

// Divider exposes the configured divider for diagnostics.
func (c *Calculator) Divider() float64 {
	return c.divider
}

// String implements fmt.Stringer for config logging.
func (c *Calculator) String() string {
	return fmt.Sprintf("pricing.Calculator{fee=%.2f divider=%.2f}", c.feeFactor, c.divider)
}
