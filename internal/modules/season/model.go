// README: Season catalog definitions used to derive the seasonal price multiplier.
package season

import (
	"time"

	"github.com/shopspring/decimal"
)

// Period is an inclusive date range. A recurring period repeats every year on
// the same month/day span; its stored year only anchors a span that wraps
// past December 31st.
type Period struct {
	Start     time.Time
	End       time.Time
	Recurring bool
}

type Season struct {
	ID         string
	Name       string
	Multiplier decimal.Decimal
	Periods    []Period
	IsActive   bool
}

// Resolution is the outcome of Resolve. SeasonID and SeasonName are empty
// when neither a period nor a fallback season applied.
type Resolution struct {
	Multiplier decimal.Decimal
	SeasonID   string
	SeasonName string
}

const dateLayout = "2006-01-02"

func ParseDate(v string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, v, time.UTC)
}
