package handler

import (
	"net/http"
	"runtime"
	"time"

	"toy-marketplace-api/internal/service"
	"toy-marketplace-api/pkg/response"
)

// welcomeBody is the plain-text body of the root route.
const welcomeBody = "Welcome to toy marketplace"

// HealthHandler serves the welcome route and the service status endpoint.
type HealthHandler struct {
	listingService *service.ListingService
	storeType      string
	version        string
	startTime      time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(listingService *service.ListingService, storeType, version string) *HealthHandler {
	return &HealthHandler{
		listingService: listingService,
		storeType:      storeType,
		version:        version,
		startTime:      time.Now(),
	}
}

// Welcome handles GET /.
func (h *HealthHandler) Welcome(w http.ResponseWriter, r *http.Request) {
	response.Text(w, http.StatusOK, welcomeBody)
}

// Status handles GET /api/status: uptime, memory and store connectivity.
// A degraded store is reported, not fatal; the endpoint stays up so
// monitoring can see the failure.
func (h *HealthHandler) Status(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	stats := make(map[string]interface{})

	stats["service"] = "toy-marketplace-api"
	stats["version"] = h.version
	stats["server_time"] = time.Now().UTC().Format(time.RFC3339)
	stats["uptime_seconds"] = int64(time.Since(h.startTime).Seconds())
	stats["store_type"] = h.storeType

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	stats["memory"] = map[string]interface{}{
		"alloc_mb":   float64(memStats.Alloc) / 1024 / 1024,
		"sys_mb":     float64(memStats.Sys) / 1024 / 1024,
		"num_gc":     memStats.NumGC,
		"goroutines": runtime.NumGoroutine(),
	}

	status := "ok"
	if err := h.listingService.Ping(ctx); err != nil {
		status = "degraded"
		stats["store"] = map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
		}
	} else if storeStats, err := h.listingService.Stats(ctx); err == nil {
		stats["store"] = storeStats
	} else {
		stats["store"] = map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
		}
	}
	stats["status"] = status

	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	response.OK(w, stats)
}
