// Package empire is the HTTP client for the trading platform: pending
// withdrawals and the dispute/sent/received deposit transitions.
package empire

import (
	"context"
	"fmt"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"

	"cs_market/internal/config"
	"cs_market/internal/domain"
	"cs_market/internal/domain/entity"
	"cs_market/pkg/contextx"
	"cs_market/pkg/errcodes"
	"cs_market/pkg/httpx"
	"cs_market/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const requestTimeout = 15 * time.Second

type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(cfg config.Empire, logFieldMaxLen int) *Client {
	transport := httpx.NewAuthBearerRoundTripper(
		httpx.NewLoggingRoundTripper(
			http.DefaultTransport,
			httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
			httpx.WithLogFieldMaxLen(logFieldMaxLen),
		),
		cfg.BearerToken,
	)

	return &Client{
		httpClient: &http.Client{Transport: transport},
		baseURL:    cfg.BaseURL,
	}
}

// ActiveTrades returns pending withdrawals filtered to the two statuses the
// bot acts on: awaiting send and sent. Malformed entries are logged and
// skipped; the rest of the payload is still used.
func (c *Client) ActiveTrades(ctx context.Context) ([]entity.Withdrawal, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/trading/user/trades", http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequest: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.WrapError(err, errcodes.MarketUnavailable, "fetch trades")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewError(errcodes.MarketUnavailable,
			fmt.Sprintf("fetch trades: status %d", resp.StatusCode))
	}

	var payload tradesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, domain.WrapError(err, errcodes.MalformedPayload, "decode trades")
	}

	withdrawals := make([]entity.Withdrawal, 0, len(payload.Data.Withdrawals))

	for _, schema := range payload.Data.Withdrawals {
		status := entity.WithdrawalStatus(schema.Status)
		if status != entity.WithdrawalStatusProcessing && status != entity.WithdrawalStatusSent {
			continue
		}

		w, err := schema.toDomain()
		if err != nil {
			logger(ctx).Error("skipping malformed withdrawal",
				"deposit_id", schema.ItemID,
				logx.Error(err),
			)
			continue
		}

		withdrawals = append(withdrawals, *w)
	}

	return withdrawals, nil
}

// Dispute flags a deposit for dispute on the platform.
func (c *Client) Dispute(ctx context.Context, depositID int64) error {
	return c.postDeposit(ctx, depositID, "dispute")
}

// MarkSent marks a deposit's trade offer as sent.
func (c *Client) MarkSent(ctx context.Context, depositID int64) error {
	return c.postDeposit(ctx, depositID, "sent")
}

// MarkReceived marks a deposit as received by the buyer. A 404 means the
// deposit was already resolved upstream and maps to a TradeNotFound error the
// caller treats as terminal success.
func (c *Client) MarkReceived(ctx context.Context, depositID int64) error {
	return c.postDeposit(ctx, depositID, "received")
}

func (c *Client) postDeposit(ctx context.Context, depositID int64, action string) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/trading/deposit/%d/%s", c.baseURL, depositID, action)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("http.NewRequest: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.WrapError(err, errcodes.MarketUnavailable, action)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.NewError(errcodes.TradeNotFound,
			fmt.Sprintf("%s: deposit %d not found", action, depositID))
	case resp.StatusCode >= http.StatusBadRequest:
		return domain.NewError(errcodes.MarketUnavailable,
			fmt.Sprintf("%s: status %d", action, resp.StatusCode))
	}

	return nil
}
