package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carhire/internal/apperr"
	"carhire/internal/modules/location"
	"carhire/internal/modules/pricing"
	"carhire/internal/modules/season"
	"carhire/internal/modules/transfer"
	"carhire/internal/types"
)

type memVehicles struct{}

func (memVehicles) GetVehicle(_ context.Context, id types.ID) (*pricing.Vehicle, error) {
	if id != "dacia-logan" {
		return nil, apperr.ErrNotFound
	}
	return &pricing.Vehicle{ID: id, PricePerDay: decimal.NewNullDecimal(decimal.NewFromInt(50))}, nil
}

func (memVehicles) LocationFees(_ context.Context) (pricing.LocationFees, error) {
	return pricing.LocationFees{}, nil
}

type memSeasons struct{}

func (memSeasons) List(_ context.Context) ([]season.Season, error) { return nil, nil }
func (memSeasons) Current(_ context.Context) (*season.Season, error) { return nil, nil }

type memTransferConfig struct{}

func (memTransferConfig) Load(_ context.Context) (*transfer.Config, error) {
	return &transfer.Config{
		FixedPrices: map[transfer.Category]decimal.Decimal{transfer.CategoryStandard: decimal.NewFromInt(30)},
		Currency:    "EUR",
	}, nil
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	zone := location.Zone{Center: types.Point{Lat: 46.7712, Lng: 23.6236}, RadiusKm: 7}
	return NewRouter(RouterDeps{
		Vehicles:  pricing.NewService(memVehicles{}, memSeasons{}, nil),
		Transfers: transfer.NewService(transfer.NewEngine(zone, nil), memTransferConfig{}, nil),
	})
}

func TestRouter_Health(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestRouter_VehicleQuoteFlatFallback(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/api/vehicles/dacia-logan/quote?pickupDate=2024-03-01&returnDate=2024-03-06", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"basePrice":250`)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_TransferPriceBothPaths(t *testing.T) {
	body := `{"pickup":{"lat":46.77,"lng":23.60},"dropoff":{"lat":46.78,"lng":23.61},"category":"standard"}`
	for _, path := range []string{"/api/transfer-price", "/transfer-price"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		newTestRouter().ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Body.String(), `"pricingSource":"fixed"`)
		assert.Contains(t, w.Body.String(), `"totalPrice":30`)
	}
}
