// README: Vehicle quote handler (GET /api/vehicles/:id/quote).
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"carhire/internal/apperr"
	"carhire/internal/modules/pricing"
	"carhire/internal/modules/season"
	"carhire/internal/types"
)

type VehicleQuoter interface {
	Quote(ctx context.Context, req pricing.VehicleQuoteRequest) (pricing.PriceDetails, error)
}

type VehicleHandler struct {
	pricing VehicleQuoter
}

func NewVehicleHandler(svc VehicleQuoter) *VehicleHandler {
	return &VehicleHandler{pricing: svc}
}

type priceDetailsResp struct {
	VehicleID         string   `json:"vehicleId"`
	BasePrice         *float64 `json:"basePrice"`
	TotalPrice        *float64 `json:"totalPrice"`
	Days              *int     `json:"days"`
	PricePerDay       *float64 `json:"pricePerDay"`
	DeliveryFee       float64  `json:"deliveryFee"`
	ReturnFee         float64  `json:"returnFee"`
	TotalLocationFees float64  `json:"totalLocationFees"`
	Multiplier        float64  `json:"seasonMultiplier"`
	SeasonID          string   `json:"seasonId,omitempty"`
	SeasonName        string   `json:"seasonName,omitempty"`
}

func (h *VehicleHandler) Quote(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid vehicle id")
		return
	}
	pickup, err := parseQueryDate(c, "pickupDate")
	if err != nil {
		writePricingError(c, err)
		return
	}
	ret, err := parseQueryDate(c, "returnDate")
	if err != nil {
		writePricingError(c, err)
		return
	}

	d, err := h.pricing.Quote(c.Request.Context(), pricing.VehicleQuoteRequest{
		VehicleID: types.ID(id),
		TotalInput: pricing.TotalInput{
			PickupDate:     pickup,
			ReturnDate:     ret,
			PickupLocation: c.Query("pickupLocation"),
			ReturnLocation: c.Query("returnLocation"),
		},
	})
	if err != nil {
		writePricingError(c, err)
		return
	}

	writeJSON(c, http.StatusOK, priceDetailsResp{
		VehicleID:         id,
		BasePrice:         moneyPtr(d.BasePrice),
		TotalPrice:        moneyPtr(d.TotalPrice),
		Days:              d.Days,
		PricePerDay:       moneyPtr(d.PricePerDay),
		DeliveryFee:       money(d.DeliveryFee),
		ReturnFee:         money(d.ReturnFee),
		TotalLocationFees: money(d.TotalLocationFees),
		Multiplier:        d.Multiplier.InexactFloat64(),
		SeasonID:          d.SeasonID,
		SeasonName:        d.SeasonName,
	})
}

// parseQueryDate accepts YYYY-MM-DD or RFC3339. An absent value is nil, not an error.
func parseQueryDate(c *gin.Context, field string) (*time.Time, error) {
	raw := c.Query(field)
	if raw == "" {
		return nil, nil
	}
	if t, err := season.ParseDate(raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, apperr.ValidationError{Field: field, Msg: "expected YYYY-MM-DD or RFC3339"}
	}
	return &t, nil
}
