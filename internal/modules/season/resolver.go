// README: Seasonal multiplier resolution over overlapping date periods.
package season

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

const day = 24 * time.Hour

// Resolve picks the multiplier for the stay [start, end]. Every period of every
// active season is scored by its inclusive overlap in days and the largest
// overlap wins. Ties keep the first period found in iteration order. With no
// overlap the fallback season applies, else 1.0.
func Resolve(start, end time.Time, seasons []Season, fallback *Season) Resolution {
	best := 0
	var winner *Season
	for i := range seasons {
		s := &seasons[i]
		if !s.IsActive || !s.Multiplier.IsPositive() {
			continue
		}
		for _, p := range s.Periods {
			for _, occ := range p.occurrences(start, end) {
				if n := overlapDays(start, end, occ.Start, occ.End); n > best {
					best = n
					winner = s
				}
			}
		}
	}
	if winner != nil {
		return Resolution{Multiplier: winner.Multiplier, SeasonID: winner.ID, SeasonName: winner.Name}
	}
	if fallback != nil && fallback.Multiplier.IsPositive() {
		return Resolution{Multiplier: fallback.Multiplier, SeasonID: fallback.ID, SeasonName: fallback.Name}
	}
	return Resolution{Multiplier: decimal.NewFromInt(1)}
}

// overlapDays = max(0, ceil((min(end, periodEnd) - max(start, periodStart)) / 1 day) + 1)
func overlapDays(start, end, periodStart, periodEnd time.Time) int {
	lo := start
	if periodStart.After(lo) {
		lo = periodStart
	}
	hi := end
	if periodEnd.Before(hi) {
		hi = periodEnd
	}
	n := int(math.Ceil(float64(hi.Sub(lo))/float64(day))) + 1
	if n < 0 {
		return 0
	}
	return n
}

// occurrences expands a recurring period into the yearly copies that can touch
// [start, end]; a one-off period is returned as is.
func (p Period) occurrences(start, end time.Time) []Period {
	if !p.Recurring {
		return []Period{p}
	}
	wrap := p.End.Year() - p.Start.Year()
	if wrap < 0 {
		wrap = 0
	}
	out := make([]Period, 0, end.Year()-start.Year()+2)
	for y := start.Year() - wrap; y <= end.Year(); y++ {
		out = append(out, Period{
			Start: time.Date(y, p.Start.Month(), p.Start.Day(), 0, 0, 0, 0, p.Start.Location()),
			End:   time.Date(y+wrap, p.End.Month(), p.End.Day(), 0, 0, 0, 0, p.End.Location()),
		})
	}
	return out
}
