package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"cs_market/internal/domain"
	"cs_market/internal/domain/entity"
	"cs_market/pkg/errcodes"
	"cs_market/pkg/lox"
)

const uniqueViolation = "23505"

type PurchaseRepository struct {
	db *sqlx.DB
}

func NewPurchaseRepository(db *sqlx.DB) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

// Create persists an accepted match and fills in the generated id. A second
// record for the same trade is rejected, which keeps retried handlers from
// double-writing.
func (r *PurchaseRepository) Create(ctx context.Context, purchase *entity.Purchase) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		schema := fromPurchase(purchase)
		if schema.PurchasedAt.IsZero() {
			schema.PurchasedAt = time.Now()
		}

		query := `
			INSERT INTO purchases (
				asset_id, market_hash_name, price_empire, price_float,
				seller_id, trade_id, purchased_at
			) VALUES (
				:asset_id, :market_hash_name, :price_empire, :price_float,
				:seller_id, :trade_id, :purchased_at
			)
			RETURNING id`

		stmt, err := tx.PrepareNamedContext(ctx, query)
		if err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to prepare insert")
		}
		defer stmt.Close()

		if err := stmt.GetContext(ctx, &purchase.ID, schema); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return domain.NewError(errcodes.DuplicatePurchase, "purchase already recorded")
			}
			return domain.WrapError(err, errcodes.InternalServerError, "failed to insert purchase")
		}

		return nil
	})
}

// ListRecent returns the newest purchases first.
func (r *PurchaseRepository) ListRecent(ctx context.Context, limit int) ([]entity.Purchase, error) {
	query := `
		SELECT id, asset_id, market_hash_name, price_empire, price_float,
		       seller_id, trade_id, purchased_at
		FROM purchases
		ORDER BY purchased_at DESC, id DESC
		LIMIT $1`

	var schemas []purchaseSchema
	if err := r.db.SelectContext(ctx, &schemas, query, limit); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list purchases")
	}

	return lox.Map(schemas, func(s purchaseSchema) entity.Purchase {
		return s.toDomain()
	}), nil
}
