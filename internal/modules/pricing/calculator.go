// README: Vehicle rental total: days x tier rate x season multiplier, plus location fees.
package pricing

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"carhire/internal/apperr"
)

const day = 24 * time.Hour

// RentalDays counts started days between pickup and return, minimum 1.
func RentalDays(pickup, ret time.Time) (int, error) {
	if ret.Before(pickup) {
		return 0, apperr.ValidationError{Field: "returnDate", Msg: "must not be before pickupDate"}
	}
	days := int(math.Ceil(float64(ret.Sub(pickup)) / float64(day)))
	if days < 1 {
		days = 1
	}
	return days, nil
}

// CalculateTotal prices a rental. The base price is rounded to whole currency
// units; location fees are added unrounded. A missing date is not an error:
// the result then carries fees only.
func CalculateTotal(v Vehicle, multiplier decimal.Decimal, in TotalInput, fees LocationFees) (PriceDetails, error) {
	out := PriceDetails{
		DeliveryFee: fees.Fee(in.PickupLocation),
		ReturnFee:   fees.Fee(in.ReturnLocation),
		Multiplier:  multiplier,
	}
	out.TotalLocationFees = out.DeliveryFee.Add(out.ReturnFee)

	if in.PickupDate == nil || in.ReturnDate == nil {
		return out, nil
	}

	days, err := RentalDays(*in.PickupDate, *in.ReturnDate)
	if err != nil {
		return PriceDetails{}, err
	}
	rate, err := PriceForDuration(v.Tiers, days, v.PricePerDay)
	if err != nil {
		return PriceDetails{}, err
	}

	base := rate.Mul(multiplier).Mul(decimal.NewFromInt(int64(days))).Round(0)
	total := base.Add(out.TotalLocationFees)
	out.Days = &days
	out.PricePerDay = &rate
	out.BasePrice = &base
	out.TotalPrice = &total
	return out, nil
}
