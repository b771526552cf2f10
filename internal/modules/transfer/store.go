// README: Transfer pricing config store backed by PostgreSQL (single active row).
package transfer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"carhire/internal/apperr"
	"carhire/internal/infra"
)

const defaultConfigKey = "default"

type Store struct {
	db infra.Querier
}

func NewStore(db infra.Querier) *Store {
	return &Store{db: db}
}

// Load reads the active transfer config. A missing row is ErrConfigurationMissing.
func (s *Store) Load(ctx context.Context) (*Config, error) {
	var fixed, perKm, seat, currency string
	err := s.db.QueryRow(ctx, `
		SELECT fixed_prices::text, price_per_km::text, child_seat_price::text, currency
		FROM transfer_pricing_config
		WHERE key = $1`, defaultConfigKey,
	).Scan(&fixed, &perKm, &seat, &currency)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: transfer_pricing_config %q", apperr.ErrConfigurationMissing, defaultConfigKey)
	}
	if err != nil {
		return nil, fmt.Errorf("query transfer config: %w", err)
	}

	cfg := Config{Currency: currency}
	if err := json.Unmarshal([]byte(fixed), &cfg.FixedPrices); err != nil {
		return nil, fmt.Errorf("decode fixed_prices: %w", err)
	}
	if err := json.Unmarshal([]byte(perKm), &cfg.PricePerKm); err != nil {
		return nil, fmt.Errorf("decode price_per_km: %w", err)
	}
	if cfg.ChildSeatPrice, err = decimal.NewFromString(seat); err != nil {
		return nil, fmt.Errorf("decode child_seat_price %q: %w", seat, err)
	}
	return &cfg, nil
}
