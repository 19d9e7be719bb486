package steam

import (
	"strconv"

	"cs_market/internal/domain"
	"cs_market/internal/domain/entity"
	"cs_market/pkg/errcodes"
	"cs_market/pkg/lox"
)

type tradeOffersResponse struct {
	Response tradeOffersBody `json:"response"`
}

type tradeOffersBody struct {
	TradeOffersReceived []tradeOfferSchema  `json:"trade_offers_received"`
	Descriptions        []descriptionSchema `json:"descriptions"`
}

type tradeOfferSchema struct {
	TradeOfferID   string        `json:"tradeofferid"`
	AccountIDOther int64         `json:"accountid_other"`
	ItemsToGive    []assetSchema `json:"items_to_give"`
	ItemsToReceive []assetSchema `json:"items_to_receive"`
}

type assetSchema struct {
	AssetID    string `json:"assetid"`
	ClassID    string `json:"classid"`
	InstanceID string `json:"instanceid"`
}

// descriptionSchema carries the item metadata the offer assets reference by
// class/instance pair.
type descriptionSchema struct {
	ClassID        string `json:"classid"`
	InstanceID     string `json:"instanceid"`
	MarketHashName string `json:"market_hash_name"`
}

type descriptionKey struct {
	classID    string
	instanceID string
}

func (r tradeOffersBody) descriptionIndex() map[descriptionKey]string {
	index := make(map[descriptionKey]string, len(r.Descriptions))
	for _, d := range r.Descriptions {
		index[descriptionKey{classID: d.ClassID, instanceID: d.InstanceID}] = d.MarketHashName
	}
	return index
}

func (s tradeOfferSchema) toDomain(descriptions map[descriptionKey]string) (*entity.TradeOffer, error) {
	id, err := strconv.ParseInt(s.TradeOfferID, 10, 64)
	if err != nil {
		return nil, domain.WrapError(err, errcodes.MalformedPayload, "tradeofferid")
	}

	give, err := toTradeItems(s.ItemsToGive, descriptions)
	if err != nil {
		return nil, err
	}

	receive, err := toTradeItems(s.ItemsToReceive, descriptions)
	if err != nil {
		return nil, err
	}

	return &entity.TradeOffer{
		ID:               id,
		PartnerAccountID: s.AccountIDOther,
		ItemsToGive:      give,
		ItemsToReceive:   receive,
	}, nil
}

func toTradeItems(assets []assetSchema, descriptions map[descriptionKey]string) ([]entity.TradeItem, error) {
	if len(assets) == 0 {
		return nil, nil
	}

	return lox.MapErr(assets, func(a assetSchema) (entity.TradeItem, error) {
		assetID, err := strconv.ParseInt(a.AssetID, 10, 64)
		if err != nil {
			return entity.TradeItem{}, domain.WrapError(err, errcodes.MalformedPayload, "assetid")
		}

		name, ok := descriptions[descriptionKey{classID: a.ClassID, instanceID: a.InstanceID}]
		if !ok {
			return entity.TradeItem{}, domain.NewError(errcodes.MalformedPayload, "asset without description")
		}

		return entity.TradeItem{
			AssetID:        assetID,
			MarketHashName: name,
		}, nil
	})
}
