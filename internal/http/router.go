// README: HTTP router registration.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"carhire/internal/http/handlers"
	"carhire/internal/http/middleware"
)

type RouterDeps struct {
	Vehicles        handlers.VehicleQuoter
	Transfers       handlers.TransferQuoter
	ProviderTimeout time.Duration
	Log             *slog.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	log := deps.Log
	if log == nil {
		log = slog.Default()
	}

	r := gin.New()
	r.Use(middleware.Logging(log), middleware.Recovery(log))

	vehicleHandler := handlers.NewVehicleHandler(deps.Vehicles)
	r.GET("/api/vehicles/:id/quote", vehicleHandler.Quote)

	transferHandler := handlers.NewTransferHandler(deps.Transfers, deps.ProviderTimeout)
	r.POST("/api/transfer-price", transferHandler.Price)
	r.POST("/transfer-price", transferHandler.Price)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
