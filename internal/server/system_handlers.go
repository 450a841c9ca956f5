package server

import (
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/aristath/volcast/internal/database"
)

// CacheStats reports on the price cache. Satisfied by
// clientdata.Repository.
type CacheStats interface {
	Count() (int, error)
}

// SystemHandlers handles health and system monitoring endpoints
type SystemHandlers struct {
	log         zerolog.Logger
	startupTime time.Time
	cacheDB     *database.DB
	cacheStats  CacheStats
}

// NewSystemHandlers creates a new system handlers instance
func NewSystemHandlers(log zerolog.Logger, cacheDB *database.DB, cacheStats CacheStats) *SystemHandlers {
	return &SystemHandlers{
		log:         log.With().Str("component", "system_handlers").Logger(),
		startupTime: time.Now(),
		cacheDB:     cacheDB,
		cacheStats:  cacheStats,
	}
}

// HandleHealth handles GET /health
func (h *SystemHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	httpStatus := http.StatusOK

	if h.cacheDB != nil {
		if err := h.cacheDB.HealthCheck(r.Context()); err != nil {
			h.log.Error().Err(err).Msg("Cache database health check failed")
			status = "degraded"
			httpStatus = http.StatusServiceUnavailable
		}
	}

	response := map[string]interface{}{
		"status":    status,
		"uptime":    time.Since(h.startupTime).String(),
		"timestamp": time.Now().Format(time.RFC3339),
	}
	h.writeJSON(w, httpStatus, response)
}

// HandleSystemStatus handles GET /api/system/status
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	cpuAvg, ramPercent := h.systemUsage()

	cacheEntries := 0
	if h.cacheStats != nil {
		n, err := h.cacheStats.Count()
		if err != nil {
			h.log.Warn().Err(err).Msg("Failed to count cache entries")
		} else {
			cacheEntries = n
		}
	}

	response := map[string]interface{}{
		"data": map[string]interface{}{
			"cpu_percent":   cpuAvg,
			"ram_percent":   ramPercent,
			"goroutines":    runtime.NumGoroutine(),
			"cache_entries": cacheEntries,
			"uptime":        time.Since(h.startupTime).String(),
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}
	h.writeJSON(w, http.StatusOK, response)
}

// systemUsage samples CPU and RAM usage.
func (h *SystemHandlers) systemUsage() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	return cpuAvg, memStat.UsedPercent
}

// writeJSON writes a JSON response
func (h *SystemHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
