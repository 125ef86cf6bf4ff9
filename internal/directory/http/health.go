package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/directory/internal/directory/backend"
	"github.com/aussiebroadwan/directory/internal/directory/session"
	"github.com/aussiebroadwan/directory/internal/directory/store"
	"github.com/aussiebroadwan/directory/pkg/directorysdk"
	"github.com/aussiebroadwan/directory/pkg/httpx"
)

// LivezHandler godoc
//
//	@Summary		Liveness Check Endpoint
//	@Description	Liveness probe endpoint returning basic service health status, uptime, and version information
//	@Description	This endpoint always returns 200 OK if the service is running
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	directorysdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, directorysdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe endpoint returning service health status and checks for critical dependencies
//	@Description	Reports the relational store and admin session store; absent components report "disabled"
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	directorysdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	directorysdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st store.Store, sessions session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &directorysdk.HealthChecks{
			Database: "disabled",
			Sessions: "disabled",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if st != nil {
			checks.Database = "ok"
			if err := st.Ping(r.Context()); err != nil {
				checks.Database = "error: " + err.Error()
				overallStatus = "degraded"
				statusCode = http.StatusServiceUnavailable
			}
		}

		if sessions != nil {
			checks.Sessions = "ok"
			if err := sessions.Ping(r.Context()); err != nil {
				checks.Sessions = "error: " + err.Error()
				overallStatus = "degraded"
				statusCode = http.StatusServiceUnavailable
			}
		}

		httpx.WriteJSON(w, statusCode, directorysdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}

// HealthzHandler godoc
//
//	@Summary		Directory Health Endpoint
//	@Description	Returns the service status together with the number of active accounts in the configured directory
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	directorysdk.HealthResponse	"status, version, user_count"
//	@Router			/healthz [get].
func HealthzHandler(startTime time.Time, version string, dir backend.Directory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count := dir.Count(r.Context())
		httpx.WriteJSON(w, http.StatusOK, directorysdk.HealthResponse{
			Status:    "healthy",
			Uptime:    time.Since(startTime).String(),
			Version:   version,
			UserCount: &count,
		})
	}
}
