// README: Vehicle rental rate definitions (duration tiers, location fees) and computed price details.
package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"carhire/internal/types"
)

// DurationTier is the daily rate for rentals of MinDays..MaxDays days.
type DurationTier struct {
	MinDays     int
	MaxDays     int
	PricePerDay decimal.Decimal
}

type Vehicle struct {
	ID   types.ID
	Name string
	// PricePerDay is the flat rate used when the vehicle has no tiers.
	PricePerDay decimal.NullDecimal
	Tiers       []DurationTier
}

// LocationFees maps a pickup/return location name to its fee. Lookup is
// case-sensitive and exact.
type LocationFees map[string]decimal.Decimal

func (f LocationFees) Fee(location string) decimal.Decimal {
	if location == "" {
		return decimal.Zero
	}
	if fee, ok := f[location]; ok {
		return fee
	}
	return decimal.Zero
}

type TotalInput struct {
	PickupDate     *time.Time
	ReturnDate     *time.Time
	PickupLocation string
	ReturnLocation string
}

// PriceDetails is derived on every request and never stored. BasePrice,
// TotalPrice and Days are nil until both dates are known.
type PriceDetails struct {
	BasePrice         *decimal.Decimal
	TotalPrice        *decimal.Decimal
	Days              *int
	PricePerDay       *decimal.Decimal
	DeliveryFee       decimal.Decimal
	ReturnFee         decimal.Decimal
	TotalLocationFees decimal.Decimal
	Multiplier        decimal.Decimal
	SeasonID          string
	SeasonName        string
}

type VehicleQuoteRequest struct {
	VehicleID types.ID
	TotalInput
}
