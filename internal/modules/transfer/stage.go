// README: Quote pipeline stages and the allowed transitions between them.
package transfer

import (
	"errors"
	"fmt"
)

type Stage string

const (
	StageNone       Stage = "none"
	StageReceived   Stage = "received"
	StageGeocoding  Stage = "geocoding"
	StageClassified Stage = "classified"
	StagePriced     Stage = "priced"
)

var ErrInvalidStage = errors.New("invalid quote stage transition")

// AllowedTransitions represents the quote pipeline (diagram) as code.
// Geocoding is skipped when both legs already carry coordinates.
var AllowedTransitions = map[Stage][]Stage{
	StageNone:       {StageReceived},
	StageReceived:   {StageGeocoding, StageClassified},
	StageGeocoding:  {StageClassified},
	StageClassified: {StagePriced},
}

func CanTransition(from, to Stage) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}

// pipeline tracks a single quote run. A recompute always starts a new one.
type pipeline struct {
	stage Stage
	trace []Stage
}

func newPipeline() *pipeline {
	return &pipeline{stage: StageNone}
}

func (p *pipeline) advance(to Stage) error {
	if !CanTransition(p.stage, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStage, p.stage, to)
	}
	p.stage = to
	p.trace = append(p.trace, to)
	return nil
}
