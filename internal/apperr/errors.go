// README: Typed pricing errors shared by modules and mapped to HTTP status by handlers.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrConfigurationMissing is returned when a rate table, transfer config or
	// vehicle rate needed for a quote does not exist. It is never turned into a zero price.
	ErrConfigurationMissing = errors.New("pricing configuration missing")
	ErrNotFound             = errors.New("not found")
	// ErrNoResults marks a provider answer with no usable result.
	ErrNoResults = errors.New("no results")
)

type ValidationError struct {
	Field string
	Msg   string
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

// GeocodingMiss means an address could not be resolved to coordinates.
type GeocodingMiss struct {
	Field   string
	Address string
	Err     error
}

func (e GeocodingMiss) Error() string {
	return fmt.Sprintf("could not geocode %s address %q", e.Field, e.Address)
}

func (e GeocodingMiss) Unwrap() error { return e.Err }

// RoutingFailure covers provider outages and "no route" answers.
type RoutingFailure struct {
	Msg string
	Err error
}

func (e RoutingFailure) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = "routing failed"
	}
	if e.Err == nil {
		return msg
	}
	return fmt.Sprintf("%s: %v", msg, e.Err)
}

func (e RoutingFailure) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsGeocodingMiss(err error) bool {
	var target GeocodingMiss
	return errors.As(err, &target)
}

func IsRoutingFailure(err error) bool {
	var target RoutingFailure
	return errors.As(err, &target)
}
