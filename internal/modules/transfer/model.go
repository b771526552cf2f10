// README: Transfer quote request, rate configuration and computed quote.
package transfer

import (
	"github.com/shopspring/decimal"

	"carhire/internal/types"
)

type Category string

const (
	CategoryStandard Category = "standard"
	CategoryPremium  Category = "premium"
	CategoryVan      Category = "van"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryStandard, CategoryPremium, CategoryVan:
		return true
	}
	return false
}

type PricingSource string

const (
	SourceFixed    PricingSource = "fixed"
	SourceDistance PricingSource = "distance"
)

// Range is a per-km price band.
type Range struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// Config is one snapshot of the transfer rate tables. It is passed explicitly
// to every quote and never held between requests.
type Config struct {
	FixedPrices    map[Category]decimal.Decimal `json:"fixedPrices"`
	PricePerKm     map[Category]Range           `json:"pricePerKm"`
	ChildSeatPrice decimal.Decimal              `json:"childSeatPrice"`
	Currency       string                       `json:"currency"`
}

// Location is either a coordinate pair or a free-text address. Lat and Lng
// must be given together.
type Location struct {
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
	Address string   `json:"address,omitempty"`
}

func (l Location) point() (*types.Point, bool) {
	if l.Lat == nil && l.Lng == nil {
		return nil, true
	}
	if l.Lat == nil || l.Lng == nil {
		return nil, false
	}
	p := types.Point{Lat: *l.Lat, Lng: *l.Lng}
	return &p, p.Valid()
}

type QuoteRequest struct {
	Pickup   *Location
	Dropoff  *Location
	Category Category
}

// Quote is a non-binding estimate. Fixed quotes carry Price; distance quotes
// carry Min, Max, DistanceKm and DurationText.
type Quote struct {
	IsSingle      bool
	Price         *decimal.Decimal
	Min           *decimal.Decimal
	Max           *decimal.Decimal
	DistanceKm    *float64
	DurationText  *string
	PricingSource PricingSource
	Category      Category
	Currency      string
	// Stages is the pipeline path this quote took.
	Stages []Stage
}

// ChildSeatSurcharge is applied by the caller on top of a quote; seat count
// is not part of the quote itself.
func ChildSeatSurcharge(cfg Config, seats int) types.Money {
	if seats < 0 {
		seats = 0
	}
	return types.Money{
		Amount:   cfg.ChildSeatPrice.Mul(decimal.NewFromInt(int64(seats))),
		Currency: cfg.Currency,
	}
}
