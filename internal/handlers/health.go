package handlers

import (
	"net/http"
	"time"

	"github.com/cplatt-iso/axiom-admin/internal/database"
)

type HealthHandler struct {
	version string
}

func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{version: version}
}

type healthResponse struct {
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// Health reports overall service health. A failing database check degrades
// the status but still returns a body so dashboards can show the detail.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	response := healthResponse{
		Status:    "healthy",
		Version:   h.version,
		Timestamp: time.Now(),
		Services:  map[string]string{"database": "healthy"},
	}

	if !h.databaseUp(r) {
		response.Services["database"] = "unhealthy"
		response.Status = "degraded"
	}

	code := http.StatusOK
	if response.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, response)
}

// Ready is the readiness probe: database reachable or 503.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if !h.databaseUp(r) {
		http.Error(w, "Service not ready", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *HealthHandler) databaseUp(r *http.Request) bool {
	sqlDB, err := database.DB.DB()
	if err != nil {
		return false
	}
	return sqlDB.PingContext(r.Context()) == nil
}
