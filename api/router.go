package api

import (
	"context"
	_ "embed"
	"log/slog"
	"net/http"
	"time"

	"github.com/Domenick1991/airline/config"
	"github.com/Domenick1991/airline/internal/middleware"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
)

//go:embed openapi.json
var openAPISpec []byte

// HealthCheck probes one dependency for /health.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type Handlers struct {
	Flights *FlightHandler
	Planes  *PlaneHandler
	Tickets *TicketHandler
	Reports *ReportHandler
}

func NewRouter(cfg config.HTTPConfig, h Handlers, auth *middleware.Auth, log *slog.Logger, checks ...HealthCheck) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logging(log), middleware.Recovery(log))

	router.GET("/health", health(checks))

	if cfg.Swagger {
		router.GET("/openapi.json", func(c *gin.Context) {
			c.Data(http.StatusOK, "application/json", openAPISpec)
		})
		router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/openapi.json"))))
	}

	api := router.Group("/api")
	h.Planes.Register(api.Group("/planes"), auth)
	h.Flights.Register(api.Group("/flights"), auth)
	h.Tickets.Register(api.Group("/tickets"), auth)
	h.Reports.Register(api.Group("/reports"), auth)

	router.NoRoute(func(c *gin.Context) {
		fail(c, http.StatusNotFound, "route not found")
	})
	return router
}

func health(checks []HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		components := make(map[string]string, len(checks))
		for _, check := range checks {
			if err := check.Check(ctx); err != nil {
				components[check.Name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			components[check.Name] = "ok"
		}

		c.JSON(status, envelope{Success: status == http.StatusOK, Data: components})
	}
}
