// README: Transfer price engine: validate, geocode, classify by zone, then price fixed or by distance.
package transfer

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"carhire/internal/apperr"
	"carhire/internal/modules/location"
	"carhire/internal/types"
)

// Geocoder resolves addresses and driving routes. Implementations report an
// unresolvable address with apperr.ErrNoResults.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (types.Point, error)
	Route(ctx context.Context, origin, dest types.Point) (types.Route, error)
}

type Engine struct {
	zone location.Zone
	geo  Geocoder
}

// NewEngine builds an engine. geo may be nil, in which case address-only legs
// are classified by keyword and intercity transfers cannot be priced.
func NewEngine(zone location.Zone, geo Geocoder) *Engine {
	return &Engine{zone: zone, geo: geo}
}

type leg struct {
	field string
	location.Leg
}

// Quote runs one independent pass of the pipeline against cfg.
func (e *Engine) Quote(ctx context.Context, req QuoteRequest, cfg *Config) (Quote, error) {
	p := newPipeline()
	if err := p.advance(StageReceived); err != nil {
		return Quote{}, err
	}

	pickup, dropoff, err := validate(req)
	if err != nil {
		return Quote{}, err
	}
	if cfg == nil {
		return Quote{}, fmt.Errorf("%w: no transfer pricing config", apperr.ErrConfigurationMissing)
	}

	if e.geo != nil && (pickup.Point == nil || dropoff.Point == nil) {
		if err := p.advance(StageGeocoding); err != nil {
			return Quote{}, err
		}
		for _, l := range []*leg{&pickup, &dropoff} {
			if l.Point != nil {
				continue
			}
			pt, err := e.geocode(ctx, *l)
			if err != nil {
				return Quote{}, err
			}
			l.Point = &pt
		}
	}

	if err := p.advance(StageClassified); err != nil {
		return Quote{}, err
	}
	var q Quote
	if e.zone.BothLocal(pickup.Leg, dropoff.Leg) {
		q, err = fixedQuote(req.Category, cfg)
	} else {
		q, err = e.distanceQuote(ctx, req.Category, cfg, pickup, dropoff)
	}
	if err != nil {
		return Quote{}, err
	}

	if err := p.advance(StagePriced); err != nil {
		return Quote{}, err
	}
	q.Category = req.Category
	q.Currency = cfg.Currency
	q.Stages = p.trace
	return q, nil
}

func validate(req QuoteRequest) (leg, leg, error) {
	pickup, err := validateLocation("pickup", req.Pickup)
	if err != nil {
		return leg{}, leg{}, err
	}
	dropoff, err := validateLocation("dropoff", req.Dropoff)
	if err != nil {
		return leg{}, leg{}, err
	}
	if req.Category == "" {
		return leg{}, leg{}, apperr.ValidationError{Field: "category", Msg: "is required"}
	}
	if !req.Category.Valid() {
		return leg{}, leg{}, apperr.ValidationError{Field: "category", Msg: fmt.Sprintf("unknown category %q", req.Category)}
	}
	return pickup, dropoff, nil
}

func validateLocation(field string, loc *Location) (leg, error) {
	if loc == nil {
		return leg{}, apperr.ValidationError{Field: field, Msg: "is required"}
	}
	pt, ok := loc.point()
	if !ok {
		return leg{}, apperr.ValidationError{Field: field, Msg: "lat and lng must both be valid coordinates"}
	}
	if pt == nil && loc.Address == "" {
		return leg{}, apperr.ValidationError{Field: field, Msg: "needs coordinates or an address"}
	}
	return leg{field: field, Leg: location.Leg{Point: pt, Address: loc.Address}}, nil
}

func (e *Engine) geocode(ctx context.Context, l leg) (types.Point, error) {
	pt, err := e.geo.Geocode(ctx, l.Address)
	if err == nil {
		return pt, nil
	}
	if errors.Is(err, apperr.ErrNoResults) {
		return types.Point{}, apperr.GeocodingMiss{Field: l.field, Address: l.Address, Err: err}
	}
	if apperr.IsRoutingFailure(err) {
		return types.Point{}, err
	}
	return types.Point{}, apperr.RoutingFailure{Msg: "geocoding provider failed", Err: err}
}

func fixedQuote(cat Category, cfg *Config) (Quote, error) {
	price, ok := cfg.FixedPrices[cat]
	if !ok {
		return Quote{}, fmt.Errorf("%w: no fixed price for %s", apperr.ErrConfigurationMissing, cat)
	}
	return Quote{IsSingle: true, Price: &price, PricingSource: SourceFixed}, nil
}

func (e *Engine) distanceQuote(ctx context.Context, cat Category, cfg *Config, pickup, dropoff leg) (Quote, error) {
	rate, ok := cfg.PricePerKm[cat]
	if !ok {
		return Quote{}, fmt.Errorf("%w: no per-km rate for %s", apperr.ErrConfigurationMissing, cat)
	}
	if e.geo == nil || pickup.Point == nil || dropoff.Point == nil {
		return Quote{}, apperr.RoutingFailure{Msg: "intercity transfer needs geocoded locations"}
	}

	route, err := e.geo.Route(ctx, *pickup.Point, *dropoff.Point)
	if err != nil {
		if apperr.IsRoutingFailure(err) {
			return Quote{}, err
		}
		return Quote{}, apperr.RoutingFailure{Msg: "route lookup failed", Err: err}
	}

	km := decimal.NewFromFloat(route.DistanceKm)
	lo := km.Mul(rate.Min).Round(2)
	hi := km.Mul(rate.Max).Round(2)
	dist := route.DistanceKm
	dur := route.DurationText
	return Quote{
		Min:           &lo,
		Max:           &hi,
		DistanceKm:    &dist,
		DurationText:  &dur,
		PricingSource: SourceDistance,
	}, nil
}
