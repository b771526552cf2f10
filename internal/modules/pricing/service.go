// README: Pricing service computes vehicle rental quotes from a configuration snapshot.
package pricing

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"carhire/internal/modules/season"
	"carhire/internal/types"
)

type VehicleStore interface {
	GetVehicle(ctx context.Context, id types.ID) (*Vehicle, error)
	LocationFees(ctx context.Context) (LocationFees, error)
}

type SeasonCatalog interface {
	List(ctx context.Context) ([]season.Season, error)
	Current(ctx context.Context) (*season.Season, error)
}

type Service struct {
	vehicles VehicleStore
	seasons  SeasonCatalog
	log      *slog.Logger
}

func NewService(vehicles VehicleStore, seasons SeasonCatalog, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{vehicles: vehicles, seasons: seasons, log: log}
}

// Quote reads the vehicle, fee table and season catalog once, then prices the
// request against that snapshot.
func (s *Service) Quote(ctx context.Context, req VehicleQuoteRequest) (PriceDetails, error) {
	v, err := s.vehicles.GetVehicle(ctx, req.VehicleID)
	if err != nil {
		return PriceDetails{}, fmt.Errorf("load vehicle %s: %w", req.VehicleID, err)
	}
	fees, err := s.vehicles.LocationFees(ctx)
	if err != nil {
		return PriceDetails{}, fmt.Errorf("load location fees: %w", err)
	}

	res := season.Resolution{Multiplier: decimal.NewFromInt(1)}
	if req.PickupDate != nil && req.ReturnDate != nil {
		if _, err := RentalDays(*req.PickupDate, *req.ReturnDate); err != nil {
			return PriceDetails{}, err
		}
		catalog, err := s.seasons.List(ctx)
		if err != nil {
			return PriceDetails{}, fmt.Errorf("load seasons: %w", err)
		}
		current, err := s.seasons.Current(ctx)
		if err != nil {
			return PriceDetails{}, fmt.Errorf("load current season: %w", err)
		}
		res = season.Resolve(*req.PickupDate, *req.ReturnDate, catalog, current)
	}

	details, err := CalculateTotal(*v, res.Multiplier, req.TotalInput, fees)
	if err != nil {
		return PriceDetails{}, err
	}
	details.SeasonID = res.SeasonID
	details.SeasonName = res.SeasonName

	if details.TotalPrice != nil {
		s.log.Debug("vehicle quote",
			"vehicle_id", string(v.ID),
			"days", *details.Days,
			"multiplier", res.Multiplier.String(),
			"total", details.TotalPrice.String(),
		)
	}
	return details, nil
}
