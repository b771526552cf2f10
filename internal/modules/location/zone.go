// README: Zone classifier decides whether a transfer leg is inside the local flat-price radius.
package location

import (
	"strings"

	"carhire/internal/types"
)

// Zone is a circle around a reference city center. Keywords are lower-confidence
// city-name tokens used only when a leg has no coordinates.
type Zone struct {
	Center   types.Point
	RadiusKm float64
	Keywords []string
}

// Leg is one end of a transfer: coordinates when known, otherwise a free-text address.
type Leg struct {
	Point   *types.Point
	Address string
}

func (z Zone) IsLocal(l Leg) bool {
	if l.Point != nil {
		return z.Contains(*l.Point)
	}
	return z.MatchesAddress(l.Address)
}

// Contains reports whether p is within RadiusKm of the center, boundary included.
func (z Zone) Contains(p types.Point) bool {
	return DistanceKm(z.Center, p) <= z.RadiusKm
}

// MatchesAddress is a case-insensitive substring match against Keywords.
func (z Zone) MatchesAddress(address string) bool {
	addr := strings.ToLower(strings.TrimSpace(address))
	if addr == "" {
		return false
	}
	for _, kw := range z.Keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" && strings.Contains(addr, kw) {
			return true
		}
	}
	return false
}

// BothLocal is true only when pickup and dropoff are both local.
func (z Zone) BothLocal(pickup, dropoff Leg) bool {
	return z.IsLocal(pickup) && z.IsLocal(dropoff)
}
