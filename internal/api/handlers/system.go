package handlers

import (
	"database/sql"
	"net/http"

	"github.com/username/etftracker/internal/api/response"
	"github.com/username/etftracker/internal/database"
)

// Version is the application version reported by the version endpoint.
// Overridden at build time via -ldflags.
var Version = "dev"

// SystemHandler handles HTTP requests for system endpoints.
type SystemHandler struct {
	db *sql.DB
}

// NewSystemHandler creates a new SystemHandler with the provided database connection.
func NewSystemHandler(db *sql.DB) *SystemHandler {
	return &SystemHandler{db: db}
}

// Health handles GET requests for the health check.
//
// Endpoint: GET /api/system/health
// Response: 200 OK with {"status":"ok"} when the database responds
// Error: 503 Service Unavailable when the database ping fails
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := database.HealthCheck(h.db); err != nil {
		response.RespondError(w, http.StatusServiceUnavailable, "database unavailable", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// VersionInfo handles GET requests for version information.
//
// Endpoint: GET /api/system/version
// Response: 200 OK with {"version":"..."}
func (h *SystemHandler) VersionInfo(w http.ResponseWriter, r *http.Request) {
	response.RespondJSON(w, http.StatusOK, map[string]string{"version": Version})
}
