package empire

import (
	"strconv"
	"time"

	"cs_market/internal/domain"
	"cs_market/internal/domain/entity"
	"cs_market/pkg/errcodes"
)

// createdAtLayout is the platform's non-RFC timestamp format.
const createdAtLayout = "2006-01-02 15:04:05"

type tradesResponse struct {
	Data struct {
		Withdrawals []withdrawalSchema `json:"withdrawals"`
	} `json:"data"`
}

type withdrawalSchema struct {
	ItemID       int64 `json:"item_id"`
	TradeOfferID int64 `json:"tradeoffer_id"`
	TotalValue   int64 `json:"total_value"`
	Status       int   `json:"status"`
	Item         struct {
		MarketName string `json:"market_name"`
	} `json:"item"`
	CreatedAt string `json:"created_at"`
	Metadata  struct {
		ExpiresAt int64 `json:"expires_at"`
		Partner   struct {
			SteamID    string `json:"steam_id"`
			SteamName  string `json:"steam_name"`
			ProfileURL string `json:"profile_url"`
		} `json:"partner"`
	} `json:"metadata"`
}

func (s withdrawalSchema) toDomain() (*entity.Withdrawal, error) {
	if s.Item.MarketName == "" {
		return nil, domain.NewError(errcodes.MalformedPayload, "withdrawal without market name")
	}

	steamID, err := strconv.ParseInt(s.Metadata.Partner.SteamID, 10, 64)
	if err != nil {
		return nil, domain.WrapError(err, errcodes.MalformedPayload, "partner steam id")
	}

	createdAt, err := time.Parse(createdAtLayout, s.CreatedAt)
	if err != nil {
		return nil, domain.WrapError(err, errcodes.MalformedPayload, "created_at")
	}

	return &entity.Withdrawal{
		DepositID:         s.ItemID,
		MarketName:        s.Item.MarketName,
		TotalValue:        s.TotalValue,
		Status:            entity.WithdrawalStatus(s.Status),
		TradeOfferID:      s.TradeOfferID,
		CreatedAt:         createdAt,
		ExpiresAt:         time.Unix(s.Metadata.ExpiresAt, 0),
		PartnerSteamID64:  steamID,
		PartnerName:       s.Metadata.Partner.SteamName,
		PartnerProfileURL: s.Metadata.Partner.ProfileURL,
	}, nil
}
