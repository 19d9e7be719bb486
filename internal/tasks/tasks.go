// Package tasks defines the asynq jobs that persist reconciliation outcomes.
// Writes go through the queue so a flaky database never blocks a trade pass:
// failed jobs are retried with backoff and archived once retries run out.
package tasks

import (
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"

	"cs_market/internal/domain/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const (
	TypeRecordPurchase = "purchase:record"
	TypeTrackItem      = "item:track"

	QueuePersist = "persist"

	maxRetry  = 5
	retention = 24 * time.Hour
)

type RecordPurchasePayload struct {
	Purchase entity.Purchase `json:"purchase"`
	Seller   entity.Seller   `json:"seller"`
}

type TrackItemPayload struct {
	MarketHashName string `json:"market_hash_name"`
}

func NewRecordPurchaseTask(purchase entity.Purchase, seller entity.Seller) (*asynq.Task, error) {
	payload, err := json.Marshal(RecordPurchasePayload{
		Purchase: purchase,
		Seller:   seller,
	})
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	return asynq.NewTask(TypeRecordPurchase, payload,
		asynq.Queue(QueuePersist),
		asynq.MaxRetry(maxRetry),
		asynq.Retention(retention),
	), nil
}

func NewTrackItemTask(marketHashName string) (*asynq.Task, error) {
	payload, err := json.Marshal(TrackItemPayload{MarketHashName: marketHashName})
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	return asynq.NewTask(TypeTrackItem, payload,
		asynq.Queue(QueuePersist),
		asynq.MaxRetry(maxRetry),
		asynq.Retention(retention),
	), nil
}
