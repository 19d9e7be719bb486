package tasks_test

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"

	"cs_market/internal/domain"
	"cs_market/internal/domain/entity"
	"cs_market/internal/tasks"
	"cs_market/pkg/errcodes"
)

type fakePurchases struct {
	created []entity.Purchase
	err     error
}

func (f *fakePurchases) Create(_ context.Context, p *entity.Purchase) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, *p)
	return nil
}

type fakeSellers struct {
	upserted []entity.Seller
}

func (f *fakeSellers) Upsert(_ context.Context, s entity.Seller) error {
	f.upserted = append(f.upserted, s)
	return nil
}

type fakeItems struct {
	names []string
}

func (f *fakeItems) Create(_ context.Context, name string) (int64, error) {
	f.names = append(f.names, name)
	return int64(len(f.names)), nil
}

func TestHandleRecordPurchase(t *testing.T) {
	rq := require.New(t)

	purchases := &fakePurchases{}
	sellers := &fakeSellers{}
	handler := tasks.NewHandler(purchases, sellers, &fakeItems{})

	task, err := tasks.NewRecordPurchaseTask(
		entity.Purchase{
			AssetID:        900100,
			MarketHashName: "AK-47 | Redline (Field-Tested)",
			PriceEmpire:    4200,
			TradeID:        101,
			SellerID:       76561198071488061,
		},
		entity.Seller{SteamID64: 76561198071488061, Name: "buyer"},
	)
	rq.NoError(err)

	rq.NoError(handler.HandleRecordPurchase(context.Background(), task))

	rq.Len(sellers.upserted, 1)
	rq.Equal(int64(76561198071488061), sellers.upserted[0].SteamID64)

	rq.Len(purchases.created, 1)
	rq.Equal(int64(101), purchases.created[0].TradeID)
}

func TestHandleRecordPurchaseDuplicateCompletes(t *testing.T) {
	rq := require.New(t)

	purchases := &fakePurchases{
		err: domain.NewError(errcodes.DuplicatePurchase, "purchase already recorded"),
	}
	handler := tasks.NewHandler(purchases, &fakeSellers{}, &fakeItems{})

	task, err := tasks.NewRecordPurchaseTask(entity.Purchase{TradeID: 101}, entity.Seller{})
	rq.NoError(err)

	// Duplicate means a previous attempt landed; no retry wanted.
	rq.NoError(handler.HandleRecordPurchase(context.Background(), task))
}

func TestHandleRecordPurchaseMalformedPayloadSkipsRetry(t *testing.T) {
	rq := require.New(t)

	handler := tasks.NewHandler(&fakePurchases{}, &fakeSellers{}, &fakeItems{})

	err := handler.HandleRecordPurchase(context.Background(),
		asynq.NewTask(tasks.TypeRecordPurchase, []byte("{broken")))

	rq.True(errors.Is(err, asynq.SkipRetry))
}

func TestHandleTrackItem(t *testing.T) {
	rq := require.New(t)

	items := &fakeItems{}
	handler := tasks.NewHandler(&fakePurchases{}, &fakeSellers{}, items)

	task, err := tasks.NewTrackItemTask("AWP | Asiimov (Field-Tested)")
	rq.NoError(err)

	rq.NoError(handler.HandleTrackItem(context.Background(), task))
	rq.Equal([]string{"AWP | Asiimov (Field-Tested)"}, items.names)
}
