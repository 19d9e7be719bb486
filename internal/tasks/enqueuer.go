package tasks

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"cs_market/internal/domain/entity"
)

// Enqueuer is the producer side of the persistence queue.
type Enqueuer struct {
	client *asynq.Client
}

func NewEnqueuer(client *asynq.Client) *Enqueuer {
	return &Enqueuer{client: client}
}

func (e *Enqueuer) RecordPurchase(ctx context.Context, purchase entity.Purchase, seller entity.Seller) error {
	task, err := NewRecordPurchaseTask(purchase, seller)
	if err != nil {
		return err
	}

	if _, err := e.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("client.EnqueueContext: %w", err)
	}

	return nil
}

func (e *Enqueuer) TrackItem(ctx context.Context, marketHashName string) error {
	task, err := NewTrackItemTask(marketHashName)
	if err != nil {
		return err
	}

	if _, err := e.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("client.EnqueueContext: %w", err)
	}

	return nil
}
