package persistence

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"cs_market/internal/domain"
	"cs_market/internal/domain/entity"
	"cs_market/pkg/errcodes"
)

type SellerRepository struct {
	db *sqlx.DB
}

func NewSellerRepository(db *sqlx.DB) *SellerRepository {
	return &SellerRepository{db: db}
}

// Upsert inserts the counterparty or refreshes its name and profile url.
func (r *SellerRepository) Upsert(ctx context.Context, seller entity.Seller) error {
	query := `
		INSERT INTO sellers (steam_id, name, profile_url)
		VALUES (:steam_id, :name, :profile_url)
		ON CONFLICT (steam_id) DO UPDATE SET
			name = EXCLUDED.name,
			profile_url = EXCLUDED.profile_url`

	if _, err := r.db.NamedExecContext(ctx, query, fromSeller(seller)); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to upsert seller")
	}

	return nil
}

func (r *SellerRepository) GetBySteamID(ctx context.Context, steamID int64) (*entity.Seller, error) {
	query := `SELECT steam_id, name, profile_url FROM sellers WHERE steam_id = $1`

	var schema sellerSchema
	if err := r.db.GetContext(ctx, &schema, query, steamID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(errcodes.SellerNotFound, "seller not found")
		}
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get seller")
	}

	seller := schema.toDomain()

	return &seller, nil
}
