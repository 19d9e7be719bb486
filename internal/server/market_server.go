package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"git.appkode.ru/pub/go/failure"
	"github.com/samber/lo"

	"cs_market/internal/domain"
	"cs_market/internal/domain/entity"
	"cs_market/pkg/errcodes"
	"cs_market/pkg/httpx/reply"
	"cs_market/pkg/httpx/req"
	"cs_market/pkg/rest"
)

const (
	defaultPurchaseLimit = 50
	maxPurchaseLimit     = 500
)

type purchaseReader interface {
	ListRecent(ctx context.Context, limit int) ([]entity.Purchase, error)
}

type sellerReader interface {
	GetBySteamID(ctx context.Context, steamID int64) (*entity.Seller, error)
}

type itemService interface {
	Create(ctx context.Context, marketHashName string) (int64, error)
	GetPriceByName(ctx context.Context, marketHashName string) (*entity.ItemPrice, error)
}

type MarketServer struct {
	purchases purchaseReader
	sellers   sellerReader
	items     itemService
}

func NewMarketServer(purchases purchaseReader, sellers sellerReader, items itemService) MarketServer {
	return MarketServer{
		purchases: purchases,
		sellers:   sellers,
		items:     items,
	}
}

func (s MarketServer) getV1Purchases(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	limit := defaultPurchaseLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return failure.NewInvalidArgumentError(
				"invalid limit",
				failure.WithCode(errcodes.ValidationError),
			)
		}
		limit = min(parsed, maxPurchaseLimit)
	}

	purchases, err := s.purchases.ListRecent(ctx, limit)
	if err != nil {
		return fmt.Errorf("purchases.ListRecent: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, lo.Map(purchases, func(p entity.Purchase, _ int) rest.Purchase {
		return newRESTPurchase(p)
	}))

	return nil
}

func (s MarketServer) getV1Seller(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	steamID, err := strconv.ParseInt(r.PathValue("steamID"), 10, 64)
	if err != nil {
		return failure.NewInvalidArgumentError(
			"invalid steam id",
			failure.WithCode(errcodes.ValidationError),
		)
	}

	seller, err := s.sellers.GetBySteamID(ctx, steamID)
	if err != nil {
		if domain.HasCode(err, errcodes.SellerNotFound) {
			return failure.NewNotFoundErrorFromError(err, failure.WithCode(errcodes.SellerNotFound))
		}
		return fmt.Errorf("sellers.GetBySteamID: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTSeller(*seller))

	return nil
}

func (s MarketServer) postV1Items(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.NewItem
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	id, err := s.items.Create(ctx, request.MarketHashName)
	if err != nil {
		return fmt.Errorf("items.Create: %w", err)
	}

	reply.JSON(ctx, w, http.StatusCreated, rest.Item{
		ID:             id,
		MarketHashName: request.MarketHashName,
	})

	return nil
}

func (s MarketServer) getV1ItemPrice(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	// Names carry slashes and pipes, so they travel as a query parameter.
	name := r.URL.Query().Get("name")
	if name == "" {
		return failure.NewInvalidArgumentError(
			"name is required",
			failure.WithCode(errcodes.InvalidMarketName),
		)
	}

	price, err := s.items.GetPriceByName(ctx, name)
	if err != nil {
		if domain.HasCode(err, errcodes.ItemNotFound) {
			return failure.NewNotFoundErrorFromError(err, failure.WithCode(errcodes.ItemNotFound))
		}
		return fmt.Errorf("items.GetPriceByName: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTItemPrice(*price))

	return nil
}
