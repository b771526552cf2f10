package transfer

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carhire/internal/apperr"
	"carhire/internal/modules/location"
	"carhire/internal/types"
)

type fakeGeo struct {
	points       map[string]types.Point
	route        types.Route
	geocodeErr   error
	routeErr     error
	geocodeCalls int
	routeCalls   int
}

func (f *fakeGeo) Geocode(_ context.Context, address string) (types.Point, error) {
	f.geocodeCalls++
	if f.geocodeErr != nil {
		return types.Point{}, f.geocodeErr
	}
	p, ok := f.points[address]
	if !ok {
		return types.Point{}, fmt.Errorf("geocode %q: %w", address, apperr.ErrNoResults)
	}
	return p, nil
}

func (f *fakeGeo) Route(_ context.Context, _, _ types.Point) (types.Route, error) {
	f.routeCalls++
	if f.routeErr != nil {
		return types.Route{}, f.routeErr
	}
	return f.route, nil
}

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func fptr(v float64) *float64 { return &v }

func at(lat, lng float64) *Location { return &Location{Lat: fptr(lat), Lng: fptr(lng)} }

func testConfig() *Config {
	return &Config{
		FixedPrices: map[Category]decimal.Decimal{
			CategoryStandard: dec("30"),
			CategoryPremium:  dec("45"),
			CategoryVan:      dec("60"),
		},
		PricePerKm: map[Category]Range{
			CategoryStandard: {Min: dec("2"), Max: dec("3")},
			CategoryPremium:  {Min: dec("3"), Max: dec("4")},
			CategoryVan:      {Min: dec("3.5"), Max: dec("5")},
		},
		ChildSeatPrice: dec("10"),
		Currency:       "EUR",
	}
}

func clujZone() location.Zone {
	return location.Zone{
		Center:   types.Point{Lat: 46.7712, Lng: 23.6236},
		RadiusKm: 7,
		Keywords: []string{"cluj"},
	}
}

func sibiuGeo() *fakeGeo {
	return &fakeGeo{
		points: map[string]types.Point{
			"Sibiu":              {Lat: 45.7983, Lng: 24.1256},
			"Piata Unirii, Cluj": {Lat: 46.7694, Lng: 23.5899},
		},
		route: types.Route{DistanceKm: 150, DurationText: "2 hours 5 mins"},
	}
}

func TestEngine_FixedPriceInsideZone(t *testing.T) {
	geo := sibiuGeo()
	e := NewEngine(clujZone(), geo)

	q, err := e.Quote(context.Background(), QuoteRequest{
		Pickup:   at(46.77, 23.60),
		Dropoff:  at(46.78, 23.61),
		Category: CategoryStandard,
	}, testConfig())

	require.NoError(t, err)
	assert.True(t, q.IsSingle)
	assert.Equal(t, SourceFixed, q.PricingSource)
	require.NotNil(t, q.Price)
	assert.True(t, q.Price.Equal(dec("30")))
	assert.Nil(t, q.DistanceKm)
	assert.Nil(t, q.Min)
	assert.Nil(t, q.Max)
	assert.Equal(t, "EUR", q.Currency)
	assert.Equal(t, 0, geo.geocodeCalls)
	assert.Equal(t, 0, geo.routeCalls)
	assert.Equal(t, []Stage{StageReceived, StageClassified, StagePriced}, q.Stages)
}

func TestEngine_DistancePriceOutsideZone(t *testing.T) {
	geo := sibiuGeo()
	e := NewEngine(clujZone(), geo)

	q, err := e.Quote(context.Background(), QuoteRequest{
		Pickup:   at(46.7712, 23.6236),
		Dropoff:  &Location{Address: "Sibiu"},
		Category: CategoryStandard,
	}, testConfig())

	require.NoError(t, err)
	assert.False(t, q.IsSingle)
	assert.Equal(t, SourceDistance, q.PricingSource)
	assert.Nil(t, q.Price)
	require.NotNil(t, q.DistanceKm)
	assert.Equal(t, 150.0, *q.DistanceKm)
	assert.True(t, q.Min.Equal(dec("300")), "min = %s", q.Min)
	assert.True(t, q.Max.Equal(dec("450")), "max = %s", q.Max)
	assert.Equal(t, "2 hours 5 mins", *q.DurationText)
	assert.Equal(t, 1, geo.geocodeCalls)
	assert.Equal(t, []Stage{StageReceived, StageGeocoding, StageClassified, StagePriced}, q.Stages)
}

func TestEngine_GeocodedAddressInsideZoneIsFixed(t *testing.T) {
	geo := sibiuGeo()
	e := NewEngine(clujZone(), geo)

	q, err := e.Quote(context.Background(), QuoteRequest{
		Pickup:   &Location{Address: "Piata Unirii, Cluj"},
		Dropoff:  at(46.77, 23.60),
		Category: CategoryVan,
	}, testConfig())

	require.NoError(t, err)
	assert.Equal(t, SourceFixed, q.PricingSource)
	assert.True(t, q.Price.Equal(dec("60")))
	assert.Equal(t, 0, geo.routeCalls)
}

func TestEngine_DistanceRoundsToCents(t *testing.T) {
	geo := sibiuGeo()
	geo.route.DistanceKm = 123.456
	e := NewEngine(clujZone(), geo)

	q, err := e.Quote(context.Background(), QuoteRequest{
		Pickup:   at(46.7712, 23.6236),
		Dropoff:  at(45.7983, 24.1256),
		Category: CategoryStandard,
	}, testConfig())

	require.NoError(t, err)
	assert.Equal(t, "246.91", q.Min.StringFixed(2))
	assert.Equal(t, "370.37", q.Max.StringFixed(2))
}

func TestEngine_GeocodingMissOnDropoff(t *testing.T) {
	geo := sibiuGeo()
	e := NewEngine(clujZone(), geo)

	q, err := e.Quote(context.Background(), QuoteRequest{
		Pickup:   at(46.7712, 23.6236),
		Dropoff:  &Location{Address: "Nowhere 123"},
		Category: CategoryStandard,
	}, testConfig())

	var miss apperr.GeocodingMiss
	require.ErrorAs(t, err, &miss)
	assert.Equal(t, "dropoff", miss.Field)
	assert.Equal(t, "Nowhere 123", miss.Address)
	assert.ErrorIs(t, err, apperr.ErrNoResults)
	assert.Nil(t, q.Price)
	assert.Nil(t, q.Min)
	assert.Nil(t, q.Max)
	assert.Equal(t, 0, geo.routeCalls)
}

func TestEngine_GeocodingProviderOutageIsRoutingFailure(t *testing.T) {
	geo := sibiuGeo()
	geo.geocodeErr = errors.New("OVER_QUERY_LIMIT")
	e := NewEngine(clujZone(), geo)

	_, err := e.Quote(context.Background(), QuoteRequest{
		Pickup:   &Location{Address: "Sibiu"},
		Dropoff:  at(46.77, 23.60),
		Category: CategoryStandard,
	}, testConfig())

	assert.True(t, apperr.IsRoutingFailure(err))
	assert.False(t, apperr.IsGeocodingMiss(err))
}

func TestEngine_RouteFailure(t *testing.T) {
	geo := sibiuGeo()
	geo.routeErr = errors.New("connection refused")
	e := NewEngine(clujZone(), geo)

	q, err := e.Quote(context.Background(), QuoteRequest{
		Pickup:   at(46.7712, 23.6236),
		Dropoff:  at(45.7983, 24.1256),
		Category: CategoryPremium,
	}, testConfig())

	assert.True(t, apperr.IsRoutingFailure(err))
	assert.Nil(t, q.Min)
}

func TestEngine_Validation(t *testing.T) {
	e := NewEngine(clujZone(), sibiuGeo())
	tests := []struct {
		name      string
		req       QuoteRequest
		wantField string
	}{
		{"missing pickup", QuoteRequest{Dropoff: at(46.77, 23.60), Category: CategoryStandard}, "pickup"},
		{"missing dropoff", QuoteRequest{Pickup: at(46.77, 23.60), Category: CategoryStandard}, "dropoff"},
		{"empty pickup", QuoteRequest{Pickup: &Location{}, Dropoff: at(46.77, 23.60), Category: CategoryStandard}, "pickup"},
		{"lat without lng", QuoteRequest{Pickup: &Location{Lat: fptr(46.7)}, Dropoff: at(46.77, 23.60), Category: CategoryStandard}, "pickup"},
		{"lat out of range", QuoteRequest{Pickup: at(46.77, 23.60), Dropoff: at(123, 23.60), Category: CategoryStandard}, "dropoff"},
		{"missing category", QuoteRequest{Pickup: at(46.77, 23.60), Dropoff: at(46.77, 23.60)}, "category"},
		{"unknown category", QuoteRequest{Pickup: at(46.77, 23.60), Dropoff: at(46.77, 23.60), Category: "limo"}, "category"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Quote(context.Background(), tt.req, testConfig())
			var verr apperr.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestEngine_ConfigurationMissing(t *testing.T) {
	e := NewEngine(clujZone(), sibiuGeo())
	local := QuoteRequest{Pickup: at(46.77, 23.60), Dropoff: at(46.78, 23.61), Category: CategoryStandard}
	far := QuoteRequest{Pickup: at(46.77, 23.60), Dropoff: at(45.7983, 24.1256), Category: CategoryStandard}

	_, err := e.Quote(context.Background(), local, nil)
	assert.ErrorIs(t, err, apperr.ErrConfigurationMissing)

	_, err = e.Quote(context.Background(), local, &Config{})
	assert.ErrorIs(t, err, apperr.ErrConfigurationMissing)

	_, err = e.Quote(context.Background(), far, &Config{FixedPrices: testConfig().FixedPrices})
	assert.ErrorIs(t, err, apperr.ErrConfigurationMissing)
}

func TestEngine_WithoutGeocoderUsesKeywords(t *testing.T) {
	e := NewEngine(clujZone(), nil)

	q, err := e.Quote(context.Background(), QuoteRequest{
		Pickup:   &Location{Address: "Aeroportul International Cluj"},
		Dropoff:  &Location{Address: "Str. Horea 1, Cluj-Napoca"},
		Category: CategoryPremium,
	}, testConfig())
	require.NoError(t, err)
	assert.Equal(t, SourceFixed, q.PricingSource)
	assert.True(t, q.Price.Equal(dec("45")))

	_, err = e.Quote(context.Background(), QuoteRequest{
		Pickup:   &Location{Address: "Cluj-Napoca"},
		Dropoff:  &Location{Address: "Oradea"},
		Category: CategoryPremium,
	}, testConfig())
	assert.True(t, apperr.IsRoutingFailure(err))
}

func TestChildSeatSurcharge(t *testing.T) {
	cfg := *testConfig()
	assert.True(t, ChildSeatSurcharge(cfg, 2).Amount.Equal(dec("20")))
	assert.Equal(t, "EUR", ChildSeatSurcharge(cfg, 2).Currency)
	assert.True(t, ChildSeatSurcharge(cfg, -1).Amount.IsZero())
}
