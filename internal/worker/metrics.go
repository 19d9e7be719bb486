package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals
var (
	reconcilerPasses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "cs_market",
		Name:      "reconciler_passes_total",
		Help:      "Completed reconciliation passes.",
	})

	tradesAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "cs_market",
		Name:      "trades_accepted_total",
		Help:      "Steam trade offers accepted.",
	})

	tradesDisputed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "cs_market",
		Name:      "trades_disputed_total",
		Help:      "Withdrawals disputed on the trading platform.",
	})

	offersDeclined = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "cs_market",
		Name:      "offers_declined_total",
		Help:      "Unsolicited trade offers declined.",
	})

	deadLetters = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "cs_market",
		Name:      "dead_letters_total",
		Help:      "Actions abandoned after exhausting retries.",
	})

	pricesRefreshed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "cs_market",
		Name:      "prices_refreshed_total",
		Help:      "Item quotes recomputed and stored.",
	})

	priceRefreshErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "cs_market",
		Name:      "price_refresh_errors_total",
		Help:      "Item quote refreshes that failed.",
	})
)
