package csfloat_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"cs_market/internal/config"
	"cs_market/internal/domain"
	"cs_market/internal/infrastructure/csfloat"
	"cs_market/pkg/errcodes"
)

func newClient(t *testing.T, handler http.HandlerFunc) *csfloat.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return csfloat.NewClient(config.CSFloat{
		BaseURL: srv.URL,
		APIKey:  "test-key",
	}, 0)
}

func TestListings(t *testing.T) {
	rq := require.New(t)

	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		rq.Equal("/api/v1/listings", r.URL.Path)
		rq.Equal("test-key", r.Header.Get("Authorization"))
		rq.Equal("lowest_price", r.URL.Query().Get("sort_by"))
		rq.Equal("buy_now", r.URL.Query().Get("type"))
		rq.Equal("AK-47 | Redline (Field-Tested)", r.URL.Query().Get("market_hash_name"))

		w.Write([]byte(`{"data": [
			{"id": "324599940", "price": 14000},
			{"id": "324599941", "price": 14100}
		]}`))
	})

	listings, err := client.Listings(context.Background(), "AK-47 | Redline (Field-Tested)")
	rq.NoError(err)
	rq.Len(listings, 2)
	rq.Equal("324599940", listings[0].ID)
	rq.Equal(int64(14000), listings[0].Price)
}

func TestListingsEscapesAmpersand(t *testing.T) {
	rq := require.New(t)

	var rawQuery string

	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery

		// The ampersand must not split the query parameter.
		rq.Equal("M4A1-S | Welcome to the Jungle & Back", r.URL.Query().Get("market_hash_name"))

		w.Write([]byte(`{"data": []}`))
	})

	_, err := client.Listings(context.Background(), "M4A1-S | Welcome to the Jungle & Back")
	rq.NoError(err)
	rq.Contains(rawQuery, "%26")
}

func TestBuyOrders(t *testing.T) {
	rq := require.New(t)

	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		rq.True(strings.HasSuffix(r.URL.Path, "/api/v1/listings/324599940/buy-orders"))

		w.Write([]byte(`[
			{"price": 13900},
			{"price": 15000, "expression": {"type": "FloatRange"}}
		]`))
	})

	orders, err := client.BuyOrders(context.Background(), "324599940")
	rq.NoError(err)
	rq.Len(orders, 2)

	rq.Equal(int64(13900), orders[0].Price)
	rq.False(orders[0].HasExpression)
	rq.True(orders[1].HasExpression)
}

func TestListingsUpstreamFailure(t *testing.T) {
	rq := require.New(t)

	client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.Listings(context.Background(), "AK-47 | Redline (Field-Tested)")
	rq.True(domain.HasCode(err, errcodes.MarketUnavailable))
}
