// Package csfloat is the HTTP client for the reference marketplace the price
// calculator reads quotes from.
package csfloat

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"

	"cs_market/internal/config"
	"cs_market/internal/domain"
	"cs_market/internal/domain/entity"
	"cs_market/pkg/errcodes"
	"cs_market/pkg/httpx"
	"cs_market/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const (
	requestTimeout = 15 * time.Second

	listingsLimit  = 30
	buyOrdersLimit = 10
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewClient(cfg config.CSFloat, logFieldMaxLen int) *Client {
	transport := httpx.NewLoggingRoundTripper(
		http.DefaultTransport,
		httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
		httpx.WithLogFieldMaxLen(logFieldMaxLen),
	)

	return &Client{
		httpClient: &http.Client{Transport: transport},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
	}
}

// Listings returns the cheapest buy-now listings for a market hash name,
// lowest price first. Names containing "&" are safe: the query is
// percent-encoded before it hits the wire.
func (c *Client) Listings(ctx context.Context, marketHashName string) ([]entity.Listing, error) {
	query := url.Values{
		"limit":            {strconv.Itoa(listingsLimit)},
		"sort_by":          {"lowest_price"},
		"type":             {"buy_now"},
		"market_hash_name": {marketHashName},
	}

	endpoint := c.baseURL + "/api/v1/listings?" + query.Encode()

	var payload listingsResponse
	if err := c.get(ctx, endpoint, &payload); err != nil {
		return nil, err
	}

	listings := make([]entity.Listing, 0, len(payload.Data))
	for _, schema := range payload.Data {
		listings = append(listings, schema.toDomain())
	}

	return listings, nil
}

// BuyOrders returns the highest standing buy orders for a listing.
func (c *Client) BuyOrders(ctx context.Context, listingID string) ([]entity.BuyOrder, error) {
	endpoint := fmt.Sprintf("%s/api/v1/listings/%s/buy-orders?limit=%d",
		c.baseURL, url.PathEscape(listingID), buyOrdersLimit)

	var payload []buyOrderSchema
	if err := c.get(ctx, endpoint, &payload); err != nil {
		return nil, err
	}

	orders := make([]entity.BuyOrder, 0, len(payload))
	for _, schema := range payload {
		orders = append(orders, schema.toDomain())
	}

	return orders, nil
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return fmt.Errorf("http.NewRequest: %w", err)
	}

	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.WrapError(err, errcodes.MarketUnavailable, "marketplace request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.NewError(errcodes.MarketUnavailable,
			fmt.Sprintf("marketplace request: status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.WrapError(err, errcodes.MalformedPayload, "decode marketplace response")
	}

	return nil
}
