package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"cs_market/internal/domain"
	"cs_market/internal/domain/entity"
	"cs_market/internal/server"
	"cs_market/pkg/errcodes"
	"cs_market/pkg/rest"
	"cs_market/pkg/tests"
)

type fakePurchases struct {
	recent []entity.Purchase
}

func (f *fakePurchases) ListRecent(_ context.Context, limit int) ([]entity.Purchase, error) {
	if limit < len(f.recent) {
		return f.recent[:limit], nil
	}
	return f.recent, nil
}

type fakeSellers struct {
	sellers map[int64]entity.Seller
}

func (f *fakeSellers) GetBySteamID(_ context.Context, steamID int64) (*entity.Seller, error) {
	s, ok := f.sellers[steamID]
	if !ok {
		return nil, domain.NewError(errcodes.SellerNotFound, "seller not found")
	}
	return &s, nil
}

type fakeItems struct {
	prices map[string]entity.ItemPrice
	names  []string
}

func (f *fakeItems) Create(_ context.Context, name string) (int64, error) {
	f.names = append(f.names, name)
	return int64(len(f.names)), nil
}

func (f *fakeItems) GetPriceByName(_ context.Context, name string) (*entity.ItemPrice, error) {
	p, ok := f.prices[name]
	if !ok {
		return nil, domain.NewError(errcodes.ItemNotFound, "item not found")
	}
	return &p, nil
}

func newTestAPI(t *testing.T, purchases *fakePurchases, sellers *fakeSellers, items *fakeItems) tests.APIClient {
	t.Helper()

	router := chi.NewRouter()
	server.NewServer(server.NewMarketServer(purchases, sellers, items)).RegisterRoutes(router)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return tests.NewAPIClient(srv.URL, nil)
}

func TestGetPurchases(t *testing.T) {
	rq := require.New(t)

	purchases := &fakePurchases{
		recent: []entity.Purchase{{
			ID:             1,
			AssetID:        900100,
			MarketHashName: "AK-47 | Redline (Field-Tested)",
			PriceEmpire:    4200,
			PriceFloat:     10714,
			SellerID:       76561198071488061,
			TradeID:        9001,
			PurchasedAt:    time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
		}},
	}

	api := newTestAPI(t, purchases, &fakeSellers{}, &fakeItems{})

	var got []rest.Purchase
	resp, err := api.Get(context.Background(), "/v1/purchases", nil, &got, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)

	rq.Len(got, 1)
	rq.Equal("AK-47 | Redline (Field-Tested)", got[0].MarketHashName)
	rq.Equal(int64(4200), got[0].PriceEmpire)
	rq.Equal("2026-08-30T10:00:00Z", got[0].PurchasedAt)
}

func TestGetPurchasesInvalidLimit(t *testing.T) {
	rq := require.New(t)

	api := newTestAPI(t, &fakePurchases{}, &fakeSellers{}, &fakeItems{})

	var errResp rest.Error
	resp, err := api.Get(context.Background(), "/v1/purchases?limit=abc", nil, nil, &errResp)
	rq.NoError(err)
	rq.Equal(http.StatusBadRequest, resp.StatusCode)
}

func TestGetSeller(t *testing.T) {
	rq := require.New(t)

	sellers := &fakeSellers{
		sellers: map[int64]entity.Seller{
			76561198071488061: {
				SteamID64:  76561198071488061,
				Name:       "seller",
				ProfileURL: "https://steamcommunity.com/id/seller",
			},
		},
	}

	api := newTestAPI(t, &fakePurchases{}, sellers, &fakeItems{})

	var got rest.Seller
	resp, err := api.Get(context.Background(), "/v1/sellers/76561198071488061", nil, &got, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal(int64(76561198071488061), got.SteamID)
	rq.Equal("seller", got.Name)
}

func TestGetSellerNotFound(t *testing.T) {
	rq := require.New(t)

	api := newTestAPI(t, &fakePurchases{}, &fakeSellers{}, &fakeItems{})

	resp, err := api.Get(context.Background(), "/v1/sellers/1", nil, nil, nil)
	rq.NoError(err)
	rq.Equal(http.StatusNotFound, resp.StatusCode)
}

func TestPostItems(t *testing.T) {
	rq := require.New(t)

	items := &fakeItems{}
	api := newTestAPI(t, &fakePurchases{}, &fakeSellers{}, items)

	var got rest.Item
	resp, err := api.Post(context.Background(), "/v1/items/", nil,
		rest.NewItem{MarketHashName: "AWP | Asiimov (Field-Tested)"}, &got, nil)
	rq.NoError(err)
	rq.Equal(http.StatusCreated, resp.StatusCode)
	rq.Equal([]string{"AWP | Asiimov (Field-Tested)"}, items.names)
	rq.Equal(int64(1), got.ID)
}

func TestPostItemsValidation(t *testing.T) {
	rq := require.New(t)

	api := newTestAPI(t, &fakePurchases{}, &fakeSellers{}, &fakeItems{})

	resp, err := api.PostJSON(context.Background(), "/v1/items/", nil,
		`{"marketHashName": ""}`, nil, nil)
	rq.NoError(err)
	rq.Equal(http.StatusBadRequest, resp.StatusCode)
}

func TestGetItemPrice(t *testing.T) {
	rq := require.New(t)

	items := &fakeItems{
		prices: map[string]entity.ItemPrice{
			"AK-47 | Redline (Field-Tested)": {
				ItemID:         1,
				MarketHashName: "AK-47 | Redline (Field-Tested)",
				Quote:          entity.Quote{EmpirePrice: 56, FloatPrice: 142},
				UpdatedAt:      time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
			},
		},
	}

	api := newTestAPI(t, &fakePurchases{}, &fakeSellers{}, items)

	var got rest.ItemPrice
	resp, err := api.Get(context.Background(),
		"/v1/items/price?name=AK-47+%7C+Redline+%28Field-Tested%29", nil, &got, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal(int64(56), got.PriceEmpire)
	rq.Equal(int64(142), got.PriceFloat)
}
