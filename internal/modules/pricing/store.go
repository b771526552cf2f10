// README: Vehicle rate store backed by PostgreSQL (read-only).
package pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"carhire/internal/apperr"
	"carhire/internal/infra"
	"carhire/internal/types"
)

type Store struct {
	db infra.Querier
}

func NewStore(db infra.Querier) *Store {
	return &Store{db: db}
}

func (s *Store) GetVehicle(ctx context.Context, id types.ID) (*Vehicle, error) {
	var v Vehicle
	var vid, flat string
	err := s.db.QueryRow(ctx, `
		SELECT id, name, COALESCE(price_per_day::text, '')
		FROM vehicles
		WHERE id = $1`, string(id),
	).Scan(&vid, &v.Name, &flat)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	v.ID = types.ID(vid)
	if flat != "" {
		d, err := decimal.NewFromString(flat)
		if err != nil {
			return nil, fmt.Errorf("vehicle %s price_per_day %q: %w", id, flat, err)
		}
		v.PricePerDay = decimal.NewNullDecimal(d)
	}

	rows, err := s.db.Query(ctx, `
		SELECT min_days, max_days, price_per_day::text
		FROM vehicle_duration_tiers
		WHERE vehicle_id = $1
		ORDER BY min_days`, string(id),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var t DurationTier
		var rate string
		if err := rows.Scan(&t.MinDays, &t.MaxDays, &rate); err != nil {
			return nil, err
		}
		if t.PricePerDay, err = decimal.NewFromString(rate); err != nil {
			return nil, fmt.Errorf("vehicle %s tier %d-%d rate %q: %w", id, t.MinDays, t.MaxDays, rate, err)
		}
		v.Tiers = append(v.Tiers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *Store) LocationFees(ctx context.Context) (LocationFees, error) {
	rows, err := s.db.Query(ctx, `SELECT name, fee::text FROM location_fees`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fees := LocationFees{}
	for rows.Next() {
		var name, fee string
		if err := rows.Scan(&name, &fee); err != nil {
			return nil, err
		}
		d, err := decimal.NewFromString(fee)
		if err != nil {
			return nil, fmt.Errorf("location fee %q: %w", name, err)
		}
		fees[name] = d
	}
	return fees, rows.Err()
}
