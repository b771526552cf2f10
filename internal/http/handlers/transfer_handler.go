// README: Transfer price handler (POST /api/transfer-price).
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"carhire/internal/modules/transfer"
)

type TransferQuoter interface {
	Recompute(ctx context.Context, req transfer.RecomputeRequest) (transfer.Result, error)
}

type TransferHandler struct {
	transfer TransferQuoter
	timeout  time.Duration
}

// NewTransferHandler bounds each quote (geocoding and routing included) by timeout.
func NewTransferHandler(svc TransferQuoter, timeout time.Duration) *TransferHandler {
	if timeout <= 0 {
		timeout = defaultProviderTimeout
	}
	return &TransferHandler{transfer: svc, timeout: timeout}
}

type transferPriceReq struct {
	Pickup     *transfer.Location `json:"pickup"`
	Dropoff    *transfer.Location `json:"dropoff"`
	Category   string             `json:"category"`
	Pricing    *transfer.Config   `json:"pricing"`
	ChildSeats int                `json:"childSeats"`
}

type calculatedResp struct {
	TotalPrice    *float64 `json:"totalPrice"`
	PriceMin      *float64 `json:"priceMin"`
	PriceMax      *float64 `json:"priceMax"`
	DistanceKm    *float64 `json:"distanceKm"`
	DurationText  *string  `json:"durationText"`
	PricingSource string   `json:"pricingSource"`
	Category      string   `json:"category"`
	Currency      string   `json:"currency,omitempty"`
}

type transferPriceResp struct {
	Calculated     calculatedResp `json:"calculated"`
	ChildSeatTotal *float64       `json:"childSeatTotal,omitempty"`
}

func (h *TransferHandler) Price(c *gin.Context) {
	var req transferPriceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	res, err := h.transfer.Recompute(ctx, transfer.RecomputeRequest{
		QuoteRequest: transfer.QuoteRequest{
			Pickup:   req.Pickup,
			Dropoff:  req.Dropoff,
			Category: transfer.Category(req.Category),
		},
		Pricing:    req.Pricing,
		ChildSeats: req.ChildSeats,
	})
	if err != nil {
		writePricingError(c, err)
		return
	}

	q := res.Quote
	resp := transferPriceResp{Calculated: calculatedResp{
		TotalPrice:    moneyPtr(q.Price),
		PriceMin:      moneyPtr(q.Min),
		PriceMax:      moneyPtr(q.Max),
		DistanceKm:    q.DistanceKm,
		DurationText:  q.DurationText,
		PricingSource: string(q.PricingSource),
		Category:      string(q.Category),
		Currency:      q.Currency,
	}}
	if res.ChildSeatTotal != nil {
		v := money(res.ChildSeatTotal.Amount)
		resp.ChildSeatTotal = &v
	}
	writeJSON(c, http.StatusOK, resp)
}
