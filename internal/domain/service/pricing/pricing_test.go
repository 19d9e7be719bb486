package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cs_market/internal/domain/entity"
	"cs_market/internal/domain/service/pricing"
	"cs_market/pkg/tests"
)

func TestNewCalculator(t *testing.T) {
	rq := require.New(t)

	_, err := pricing.NewCalculator(0)
	rq.Error(err)

	calc, err := pricing.NewCalculator(2.5)
	rq.NoError(err)
	rq.InEpsilon(2.5, calc.Divider(), 1e-9)
}

func TestCompute(t *testing.T) {
	rq := require.New(t)

	calc, err := pricing.NewCalculator(2.5)
	rq.NoError(err)

	testCases := []struct {
		name      string
		listings  []entity.Listing
		buyOrders []entity.BuyOrder
		want      entity.Quote
	}{
		{
			name:      "blended above threshold",
			listings:  []entity.Listing{{ID: "a", Price: 150}},
			buyOrders: []entity.BuyOrder{{Price: 140}},
			// floor((150+140)/2)=145, fee -> 142, /2.5 -> 56
			want: entity.Quote{EmpirePrice: 56, FloatPrice: 142},
		},
		{
			name:      "buy order wins below threshold",
			listings:  []entity.Listing{{ID: "b", Price: 80}},
			buyOrders: []entity.BuyOrder{{Price: 70}},
			// floor 70, fee -> 68, /2.5 -> 27
			want: entity.Quote{EmpirePrice: 27, FloatPrice: 68},
		},
		{
			name:      "no listings",
			listings:  nil,
			buyOrders: []entity.BuyOrder{{Price: 140}},
			want:      entity.Quote{},
		},
		{
			name:      "no buy orders",
			listings:  []entity.Listing{{ID: "c", Price: 150}},
			buyOrders: nil,
			want:      entity.Quote{},
		},
		{
			name:     "all buy orders filtered out",
			listings: []entity.Listing{{ID: "d", Price: 150}},
			buyOrders: []entity.BuyOrder{
				{Price: 160, HasExpression: true},
				{Price: 150, HasExpression: true},
			},
			want: entity.Quote{},
		},
		{
			name:     "expression orders are skipped, not consumed",
			listings: []entity.Listing{{ID: "e", Price: 150}},
			buyOrders: []entity.BuyOrder{
				{Price: 160, HasExpression: true},
				{Price: 140},
			},
			want: entity.Quote{EmpirePrice: 56, FloatPrice: 142},
		},
		{
			name:      "non-positive listing price yields no quote",
			listings:  []entity.Listing{{ID: "f", Price: -5}},
			buyOrders: []entity.BuyOrder{{Price: 140}},
			want:      entity.Quote{},
		},
		{
			name:      "non-positive buy order price yields no quote",
			listings:  []entity.Listing{{ID: "g", Price: 150}},
			buyOrders: []entity.BuyOrder{{Price: 0}},
			want:      entity.Quote{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			got := calc.Compute(tc.listings, tc.buyOrders)
			rq.Equal(tc.want, got)

			// Pure function: a second call sees the same result.
			rq.Equal(got, calc.Compute(tc.listings, tc.buyOrders))
		})
	}
}

// Below the low-volume threshold the listing price must not influence the
// floor at all.
func TestComputeBelowThresholdIgnoresListingPrice(t *testing.T) {
	rq := require.New(t)
	random := tests.NewRandomizer()

	calc, err := pricing.NewCalculator(2.5)
	rq.NoError(err)

	buyOrders := []entity.BuyOrder{{Price: 70}}
	want := calc.Compute([]entity.Listing{{Price: 1}}, buyOrders)

	for range 50 {
		price := 1 + int64(random.Float64()*99) // [1, 99]

		got := calc.Compute([]entity.Listing{{Price: price}}, buyOrders)
		rq.Equal(want, got, "listing price %d leaked into the quote", price)
	}
}

func TestFloatFromEmpire(t *testing.T) {
	rq := require.New(t)

	calc, err := pricing.NewCalculator(2.5)
	rq.NoError(err)

	// Inverse of the fee+divider conversion: 56 coins -> round(56*2.5/0.98).
	rq.Equal(int64(143), calc.FloatFromEmpire(56))
	rq.Equal(int64(0), calc.FloatFromEmpire(0))
}
