// README: Transfer service runs a fresh quote per call against the current config snapshot.
package transfer

import (
	"context"
	"fmt"
	"log/slog"

	"carhire/internal/apperr"
	"carhire/internal/types"
)

type ConfigStore interface {
	Load(ctx context.Context) (*Config, error)
}

type Service struct {
	engine *Engine
	store  ConfigStore
	log    *slog.Logger
}

func NewService(engine *Engine, store ConfigStore, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{engine: engine, store: store, log: log}
}

type RecomputeRequest struct {
	QuoteRequest
	// Pricing, when set, replaces the stored config for this call only.
	Pricing    *Config
	ChildSeats int
}

type Result struct {
	Quote          Quote
	ChildSeatTotal *types.Money
}

// Recompute prices req from scratch. Nothing from earlier calls is reused, so a
// caller switching from a distance quote to a fixed one gets DistanceKm == nil.
func (s *Service) Recompute(ctx context.Context, req RecomputeRequest) (Result, error) {
	if _, _, err := validate(req.QuoteRequest); err != nil {
		return Result{}, err
	}
	if req.ChildSeats < 0 {
		return Result{}, apperr.ValidationError{Field: "childSeats", Msg: "must not be negative"}
	}

	cfg := req.Pricing
	if cfg == nil {
		if s.store == nil {
			return Result{}, fmt.Errorf("%w: no transfer config store", apperr.ErrConfigurationMissing)
		}
		loaded, err := s.store.Load(ctx)
		if err != nil {
			return Result{}, err
		}
		cfg = loaded
	}

	q, err := s.engine.Quote(ctx, req.QuoteRequest, cfg)
	if err != nil {
		s.log.Warn("transfer quote failed", "category", string(req.Category), "err", err)
		return Result{}, err
	}

	out := Result{Quote: q}
	if req.ChildSeats > 0 {
		seats := ChildSeatSurcharge(*cfg, req.ChildSeats)
		out.ChildSeatTotal = &seats
	}
	s.log.Debug("transfer quote",
		"category", string(q.Category),
		"source", string(q.PricingSource),
		"stages", q.Stages,
		"override", req.Pricing != nil,
	)
	return out, nil
}
