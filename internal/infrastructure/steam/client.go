// Package steam is the HTTP client for the Steam trading backend: incoming
// trade offers and the accept/decline actions.
package steam

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
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
	httpClient   *http.Client
	apiBaseURL   string
	communityURL string
	session      Session
}

func NewClient(cfg config.Steam, logFieldMaxLen int) *Client {
	transport := httpx.NewLoggingRoundTripper(
		http.DefaultTransport,
		httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
		httpx.WithLogFieldMaxLen(logFieldMaxLen),
	)

	return &Client{
		httpClient:   &http.Client{Transport: transport},
		apiBaseURL:   cfg.APIBaseURL,
		communityURL: cfg.CommunityURL,
		session: Session{
			APIKey:      cfg.APIKey,
			AccessToken: cfg.AccessToken,
			SessionID:   cfg.SessionID,
		},
	}
}

// IncomingOffers returns the active received trade offers as an immutable
// snapshot. Offers whose items cannot be resolved against the description
// block are skipped with a log line rather than failing the poll.
func (c *Client) IncomingOffers(ctx context.Context) ([]entity.TradeOffer, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	query := url.Values{
		"access_token":        {c.session.AccessToken},
		"get_received_offers": {"1"},
		"active_only":         {"1"},
		"get_descriptions":    {"1"},
	}

	endpoint := c.apiBaseURL + "/IEconService/GetTradeOffers/v1/?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequest: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.WrapError(err, errcodes.MarketUnavailable, "fetch trade offers")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewError(errcodes.MarketUnavailable,
			fmt.Sprintf("fetch trade offers: status %d", resp.StatusCode))
	}

	var payload tradeOffersResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, domain.WrapError(err, errcodes.MalformedPayload, "decode trade offers")
	}

	descriptions := payload.Response.descriptionIndex()
	offers := make([]entity.TradeOffer, 0, len(payload.Response.TradeOffersReceived))

	for _, schema := range payload.Response.TradeOffersReceived {
		offer, err := schema.toDomain(descriptions)
		if err != nil {
			logger(ctx).Error("skipping malformed trade offer",
				"tradeoffer_id", schema.TradeOfferID,
				logx.Error(err),
			)
			continue
		}

		offers = append(offers, *offer)
	}

	return offers, nil
}

// AcceptOffer accepts a received trade offer through the community endpoint.
// Returns false when Steam refuses the acceptance without a transport error.
func (c *Client) AcceptOffer(ctx context.Context, offerID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/tradeoffer/%d/accept", c.communityURL, offerID)

	form := url.Values{
		"sessionid":    {c.session.SessionID},
		"serverid":     {"1"},
		"tradeofferid": {fmt.Sprint(offerID)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return false, fmt.Errorf("http.NewRequest: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Referer", fmt.Sprintf("%s/tradeoffer/%d/", c.communityURL, offerID))

	for _, cookie := range c.session.Cookies() {
		req.AddCookie(cookie)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, domain.WrapError(err, errcodes.MarketUnavailable, "accept offer")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return true, nil
	case resp.StatusCode == http.StatusNotFound:
		return false, domain.NewError(errcodes.TradeNotFound,
			fmt.Sprintf("accept: offer %d not found", offerID))
	default:
		return false, domain.NewError(errcodes.TradeOfferRejected,
			fmt.Sprintf("accept: status %d", resp.StatusCode))
	}
}

// DeclineOffer declines a received trade offer via the web API.
func (c *Client) DeclineOffer(ctx context.Context, offerID int64) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	form := url.Values{
		"key":          {c.session.APIKey},
		"tradeofferid": {fmt.Sprint(offerID)},
	}

	endpoint := c.apiBaseURL + "/IEconService/DeclineTradeOffer/v1/"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("http.NewRequest: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.WrapError(err, errcodes.MarketUnavailable, "decline offer")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return domain.NewError(errcodes.MarketUnavailable,
			fmt.Sprintf("decline: status %d", resp.StatusCode))
	}

	return nil
}
