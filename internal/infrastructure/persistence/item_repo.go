// Package persistence holds the sqlx repositories over Postgres.
package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"cs_market/internal/domain"
	"cs_market/internal/domain/entity"
	"cs_market/pkg/errcodes"
)

type ItemRepository struct {
	db *sqlx.DB
}

func NewItemRepository(db *sqlx.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// Create registers an item for price tracking and returns its id. Creating an
// already-tracked name is idempotent.
func (r *ItemRepository) Create(ctx context.Context, marketHashName string) (int64, error) {
	query := `
		INSERT INTO items (market_hash_name)
		VALUES ($1)
		ON CONFLICT (market_hash_name) DO UPDATE SET market_hash_name = EXCLUDED.market_hash_name
		RETURNING id`

	var id int64
	if err := r.db.GetContext(ctx, &id, query, marketHashName); err != nil {
		return 0, domain.WrapError(err, errcodes.InternalServerError, "failed to create item")
	}

	return id, nil
}

// ListNeedingRefresh returns items whose stored quote is older than the
// cutoff, never-priced items first.
func (r *ItemRepository) ListNeedingRefresh(ctx context.Context, updatedBefore time.Time) ([]entity.Item, error) {
	query := `
		SELECT i.id, i.market_hash_name
		FROM items i
		LEFT JOIN item_prices p ON p.item_id = i.id
		WHERE p.item_id IS NULL OR p.updated_at < $1
		ORDER BY p.updated_at ASC NULLS FIRST, i.id ASC`

	var schemas []itemSchema
	if err := r.db.SelectContext(ctx, &schemas, query, updatedBefore); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list items")
	}

	items := make([]entity.Item, 0, len(schemas))
	for _, s := range schemas {
		items = append(items, s.toDomain())
	}

	return items, nil
}

// UpdatePrice stores a freshly computed quote for the item.
func (r *ItemRepository) UpdatePrice(ctx context.Context, itemID int64, quote entity.Quote) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO item_prices (item_id, price_empire, price_float, updated_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (item_id) DO UPDATE SET
				price_empire = EXCLUDED.price_empire,
				price_float = EXCLUDED.price_float,
				updated_at = EXCLUDED.updated_at`

		res, err := tx.ExecContext(ctx, query, itemID, quote.EmpirePrice, quote.FloatPrice, time.Now())
		if err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to update price")
		}

		if rows, _ := res.RowsAffected(); rows == 0 {
			return domain.NewError(errcodes.ItemNotFound, "item not found")
		}

		return nil
	})
}

// GetPriceByName returns the stored quote for a market hash name.
func (r *ItemRepository) GetPriceByName(ctx context.Context, marketHashName string) (*entity.ItemPrice, error) {
	query := `
		SELECT p.item_id, i.market_hash_name, p.price_empire, p.price_float, p.updated_at
		FROM item_prices p
		JOIN items i ON i.id = p.item_id
		WHERE i.market_hash_name = $1`

	var schema itemPriceSchema
	if err := r.db.GetContext(ctx, &schema, query, marketHashName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(errcodes.ItemNotFound, "item not found")
		}
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get price")
	}

	price := schema.toDomain()

	return &price, nil
}
