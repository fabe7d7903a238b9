package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

const probeTimeout = 3 * time.Second

// HealthHandler serves the liveness and readiness probes. Liveness answers
// immediately; readiness pings MongoDB and Redis and reports 503 when either
// is unreachable.
type HealthHandler struct {
	db  *mongo.Database
	rdb *redis.Client
}

func NewHealthHandler(db *mongo.Database, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, rdb: rdb}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type probeResult struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessReport struct {
	Status string                 `json:"status"`
	Checks map[string]probeResult `json:"checks"`
}

func (h *HealthHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), probeTimeout)
	defer cancel()

	report := readinessReport{Status: "ok", Checks: make(map[string]probeResult)}

	check := func(name string, ping func(context.Context) error) {
		if err := ping(ctx); err != nil {
			report.Checks[name] = probeResult{Status: "unhealthy", Error: err.Error()}
			report.Status = "degraded"
			return
		}
		report.Checks[name] = probeResult{Status: "ok"}
	}

	check("mongodb", func(ctx context.Context) error {
		return h.db.Client().Ping(ctx, nil)
	})
	check("redis", func(ctx context.Context) error {
		return h.rdb.Ping(ctx).Err()
	})

	code := http.StatusOK
	if report.Status != "ok" {
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, report)
}
