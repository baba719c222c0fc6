package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gruppopolinex/polinex-backend/api/responses"
	"github.com/gruppopolinex/polinex-backend/pkg/config"
	"github.com/gruppopolinex/polinex-backend/pkg/db"
	"github.com/gruppopolinex/polinex-backend/pkg/logger"
	pkgredis "github.com/gruppopolinex/polinex-backend/pkg/redis"
)

// HealthLive reports process liveness.
func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{
			"status": "ok",
			"env":    cfg.App.Env,
		})
	}
}

// HealthReady verifies the backing dependencies are reachable.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP pkgredis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		checks := map[string]string{}
		healthy := true

		checks["db"] = pingStatus(ctx, dbP)
		checks["redis"] = pingStatus(ctx, redisP)
		for _, status := range checks {
			if status != "ok" {
				healthy = false
			}
		}

		status := http.StatusOK
		if !healthy {
			status = http.StatusServiceUnavailable
			if logg != nil {
				logg.Warn(ctx, "readiness check failed")
			}
		}
		responses.WriteSuccessStatus(w, status, map[string]any{
			"status": map[bool]string{true: "ok", false: "degraded"}[healthy],
			"checks": checks,
		})
	}
}

type pinger interface {
	Ping(context.Context) error
}

func pingStatus(ctx context.Context, p pinger) string {
	if p == nil {
		return "skipped"
	}
	if err := p.Ping(ctx); err != nil {
		return "unreachable"
	}
	return "ok"
}
