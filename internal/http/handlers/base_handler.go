// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"carhire/internal/apperr"
)

type errorResponse struct {
	Error   string         `json:"error"`
	Details map[string]any `json:"details,omitempty"`
}

// isValidID accepts slug-style IDs: letters, digits, '-' and '_', at most 64 chars.
func isValidID(v string) bool {
	if v == "" || len(v) > 64 {
		return false
	}
	for _, c := range v {
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '-' || c == '_' {
			continue
		}
		return false
	}
	return true
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writePricingError maps the pricing error taxonomy to a status code. The raw
// error is attached to the gin context for the request logger.
func writePricingError(c *gin.Context, err error) {
	_ = c.Error(err)

	var verr apperr.ValidationError
	var miss apperr.GeocodingMiss
	var rerr apperr.RoutingFailure
	switch {
	case errors.As(err, &verr):
		resp := errorResponse{Error: verr.Error()}
		if verr.Field != "" {
			resp.Details = map[string]any{"field": verr.Field}
		}
		writeJSON(c, http.StatusBadRequest, resp)
	case errors.As(err, &miss):
		writeJSON(c, http.StatusBadRequest, errorResponse{
			Error:   "address could not be geocoded",
			Details: map[string]any{"field": miss.Field, "address": miss.Address},
		})
	case errors.As(err, &rerr):
		writeError(c, http.StatusBadGateway, "routing provider failed")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(c, http.StatusNotFound, "not found")
	case errors.Is(err, apperr.ErrConfigurationMissing):
		writeError(c, http.StatusInternalServerError, "pricing configuration missing")
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func money(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

func moneyPtr(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	v := d.InexactFloat64()
	return &v
}

const defaultProviderTimeout = 10 * time.Second
