package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/deppfellow/workout-api/internal/middleware"
	"github.com/deppfellow/workout-api/internal/server"
	"github.com/labstack/echo/v4"
)

// Health check names, as listed in observability.health_checks.checks.
const (
	CheckDatabase = "database"
	CheckRedis    = "redis"
)

type pinger func(ctx context.Context) error

// HealthHandler reports liveness plus database and Redis reachability.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

type checkResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

type healthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]checkResult `json:"checks"`
}

// CheckHealth answers 200 when the database is reachable, 503 otherwise.
// Redis only backs rate limiting and notifications, so a Redis failure
// marks the service degraded without failing the check.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().Str("operation", "health_check").Logger()
	obs := h.server.Config.Observability

	response := healthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      map[string]checkResult{},
	}

	if h.server.DB != nil && obs.ChecksEnabled(CheckDatabase) {
		result := h.check(c.Request().Context(), CheckDatabase, h.server.DB.Ping)
		response.Checks[CheckDatabase] = result
		if result.Status != "healthy" {
			response.Status = "unhealthy"
		}
	}

	if h.server.Redis != nil && obs.ChecksEnabled(CheckRedis) {
		result := h.check(c.Request().Context(), CheckRedis, func(ctx context.Context) error {
			return h.server.Redis.Ping(ctx).Err()
		})
		response.Checks[CheckRedis] = result
		if result.Status != "healthy" && response.Status == "healthy" {
			response.Status = "degraded"
		}
	}

	status := http.StatusOK
	if response.Status == "unhealthy" {
		status = http.StatusServiceUnavailable
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("health check failed")
	} else {
		logger.Debug().Dur("total_duration", time.Since(start)).Str("status", response.Status).Msg("health check passed")
	}

	return c.JSON(status, response)
}

func (h *HealthHandler) check(parent context.Context, name string, ping pinger) checkResult {
	ctx, cancel := context.WithTimeout(parent, h.server.Config.Observability.HealthCheckTimeout())
	defer cancel()

	checkStart := time.Now()
	err := ping(ctx)
	elapsed := time.Since(checkStart)

	if err == nil {
		return checkResult{Status: "healthy", ResponseTime: elapsed.String()}
	}

	h.server.Logger.Error().Err(err).Str("check", name).Dur("response_time", elapsed).Msg("health check failed")

	if app := h.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("HealthCheckError", map[string]any{
			"check_type":       name,
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})
	}

	return checkResult{Status: "unhealthy", ResponseTime: elapsed.String(), Error: err.Error()}
}
