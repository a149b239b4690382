package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gmelashvili/paraglide/api"
	"github.com/gmelashvili/paraglide/config"
	"github.com/gmelashvili/paraglide/internal/service/booking"
	"github.com/gmelashvili/paraglide/internal/service/locations"
)

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, locationSvc locations.LocationUseCase, bookingSvc booking.BookingUseCase) error {
	router := gin.Default()

	api.NewLocationHandler(locationSvc).Register(router.Group("/locations"))
	api.NewBookingHandler(bookingSvc).Register(router.Group("/bookings"))

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}
