// README: Season catalog store backed by PostgreSQL (read-only snapshot).
package season

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"carhire/internal/infra"
)

type Store struct {
	db infra.Querier
}

func NewStore(db infra.Querier) *Store {
	return &Store{db: db}
}

// List returns every season with its periods, in catalog order. Inactive
// seasons are included; Resolve skips them.
func (s *Store) List(ctx context.Context) ([]Season, error) {
	rows, err := s.db.Query(ctx, `
		SELECT s.id, s.name, s.multiplier::text, s.is_active,
		       COALESCE(p.start_date::text, ''), COALESCE(p.end_date::text, ''),
		       COALESCE(p.recurring, false)
		FROM seasons s
		LEFT JOIN season_periods p ON p.season_id = s.id
		ORDER BY s.sort_order, s.id, p.start_date`)
	if err != nil {
		return nil, fmt.Errorf("query seasons: %w", err)
	}
	defer rows.Close()

	var out []Season
	index := map[string]int{}
	for rows.Next() {
		var (
			id, name, mult, start, end string
			active, recurring          bool
		)
		if err := rows.Scan(&id, &name, &mult, &active, &start, &end, &recurring); err != nil {
			return nil, fmt.Errorf("scan season: %w", err)
		}
		i, ok := index[id]
		if !ok {
			m, err := decimal.NewFromString(mult)
			if err != nil {
				return nil, fmt.Errorf("season %s multiplier %q: %w", id, mult, err)
			}
			out = append(out, Season{ID: id, Name: name, Multiplier: m, IsActive: active})
			i = len(out) - 1
			index[id] = i
		}
		if start == "" || end == "" {
			continue
		}
		p, err := parsePeriod(start, end, recurring)
		if err != nil {
			return nil, fmt.Errorf("season %s: %w", id, err)
		}
		out[i].Periods = append(out[i].Periods, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate seasons: %w", err)
	}
	return out, nil
}

// Current returns the fallback season, or nil when none is configured.
func (s *Store) Current(ctx context.Context) (*Season, error) {
	var id, name, mult string
	err := s.db.QueryRow(ctx, `
		SELECT s.id, s.name, s.multiplier::text
		FROM current_season c
		JOIN seasons s ON s.id = c.season_id
		WHERE c.key = $1`, "default",
	).Scan(&id, &name, &mult)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query current season: %w", err)
	}
	m, err := decimal.NewFromString(mult)
	if err != nil {
		return nil, fmt.Errorf("current season multiplier %q: %w", mult, err)
	}
	return &Season{ID: id, Name: name, Multiplier: m, IsActive: true}, nil
}

func parsePeriod(start, end string, recurring bool) (Period, error) {
	ps, err := ParseDate(start)
	if err != nil {
		return Period{}, fmt.Errorf("period start %q: %w", start, err)
	}
	pe, err := ParseDate(end)
	if err != nil {
		return Period{}, fmt.Errorf("period end %q: %w", end, err)
	}
	return Period{Start: ps, End: pe, Recurring: recurring}, nil
}
