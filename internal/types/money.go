// README: Common value objects shared across pricing modules.
package types

import "github.com/shopspring/decimal"

type ID string

type Money struct {
	Amount   decimal.Decimal
	Currency string
}

// Point is a WGS84 coordinate in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// Route is a driving distance/duration estimate between two points.
type Route struct {
	DistanceKm   float64
	DurationText string
}
