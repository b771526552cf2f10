// README: Tiered duration pricing: picks the daily rate for a rental length.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"carhire/internal/apperr"
)

// PriceForDuration returns the daily rate for a rental of days days.
//
// The first tier with MinDays <= days <= MaxDays wins. Past the last band the
// tier with the highest MinDays <= days applies, so the top tier is open-ended.
// Below every band the tier with the lowest MinDays is the base rate. Without
// tiers the flat rate is used; without either the vehicle cannot be priced.
func PriceForDuration(tiers []DurationTier, days int, flat decimal.NullDecimal) (decimal.Decimal, error) {
	if len(tiers) == 0 {
		if !flat.Valid {
			return decimal.Zero, fmt.Errorf("no duration tiers and no flat rate: %w", apperr.ErrConfigurationMissing)
		}
		return flat.Decimal, nil
	}

	for _, t := range tiers {
		if t.MinDays <= days && days <= t.MaxDays {
			return t.PricePerDay, nil
		}
	}

	var open, base *DurationTier
	for i := range tiers {
		t := &tiers[i]
		if t.MinDays <= days && (open == nil || t.MinDays > open.MinDays) {
			open = t
		}
		if base == nil || t.MinDays < base.MinDays {
			base = t
		}
	}
	if open != nil {
		return open.PricePerDay, nil
	}
	return base.PricePerDay, nil
}
