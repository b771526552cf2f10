package maps

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"googlemaps.github.io/maps"

	"carhire/internal/apperr"
	"carhire/internal/types"
)

// GeocodingService handles interactions with the Google Geocoding and Directions APIs.
type GeocodingService struct {
	client   *maps.Client
	language string
	region   string
}

type Options struct {
	APIKey   string
	Language string
	Region   string
	// BaseURL overrides the Google endpoint, used by tests.
	BaseURL string
}

// NewGeocodingService creates a new GeocodingService from opts.
func NewGeocodingService(opts Options) (*GeocodingService, error) {
	clientOpts := []maps.ClientOption{maps.WithAPIKey(opts.APIKey)}
	if opts.BaseURL != "" {
		clientOpts = append(clientOpts, maps.WithBaseURL(opts.BaseURL))
	}
	client, err := maps.NewClient(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GeocodingService{client: client, language: opts.Language, region: opts.Region}, nil
}

// Geocode resolves a free-text address to its first result. An address with no
// result yields apperr.ErrNoResults; any other failure is a provider error.
func (s *GeocodingService) Geocode(ctx context.Context, address string) (types.Point, error) {
	results, err := s.client.Geocode(ctx, &maps.GeocodingRequest{
		Address:  address,
		Language: s.language,
		Region:   s.region,
	})
	if err != nil {
		if strings.Contains(err.Error(), "ZERO_RESULTS") {
			return types.Point{}, fmt.Errorf("geocode %q: %w", address, apperr.ErrNoResults)
		}
		return types.Point{}, fmt.Errorf("maps api error: %w", err)
	}
	if len(results) == 0 {
		return types.Point{}, fmt.Errorf("geocode %q: %w", address, apperr.ErrNoResults)
	}
	loc := results[0].Geometry.Location
	return types.Point{Lat: loc.Lat, Lng: loc.Lng}, nil
}

// Route returns the driving distance and duration from origin to dest.
func (s *GeocodingService) Route(ctx context.Context, origin, dest types.Point) (types.Route, error) {
	r := &maps.DirectionsRequest{
		Origin:      latLng(origin),
		Destination: latLng(dest),
		Mode:        maps.TravelModeDriving,
		Language:    s.language,
		Region:      s.region,
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return types.Route{}, apperr.RoutingFailure{Msg: "maps api error", Err: err}
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return types.Route{}, apperr.RoutingFailure{Msg: "no route found", Err: apperr.ErrNoResults}
	}

	var meters int
	var dur time.Duration
	for _, leg := range routes[0].Legs {
		meters += leg.Distance.Meters
		dur += leg.Duration
	}
	if meters <= 0 {
		return types.Route{}, apperr.RoutingFailure{Msg: "route has no distance", Err: errors.New("zero-length route")}
	}
	return types.Route{
		DistanceKm:   float64(meters) / 1000,
		DurationText: FormatDuration(dur),
	}, nil
}

func latLng(p types.Point) string {
	return fmt.Sprintf("%.6f,%.6f", p.Lat, p.Lng)
}

// FormatDuration renders a driving time the way the Directions API text does,
// e.g. "45 mins", "2 hours 5 mins", "1 day 3 hours".
func FormatDuration(d time.Duration) string {
	mins := int(d.Round(time.Minute) / time.Minute)
	if mins < 1 {
		mins = 1
	}
	days, hours := mins/(24*60), (mins/60)%24
	mins %= 60

	switch {
	case days > 0:
		if hours == 0 {
			return plural(days, "day")
		}
		return plural(days, "day") + " " + plural(hours, "hour")
	case hours > 0:
		if mins == 0 {
			return plural(hours, "hour")
		}
		return plural(hours, "hour") + " " + plural(mins, "min")
	default:
		return plural(mins, "min")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
