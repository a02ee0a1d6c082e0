package handlers

import (
	"net/http"

	"github.com/mheijden/portfolio-tracker/internal/api/response"
	"github.com/mheijden/portfolio-tracker/internal/service"
)

// SystemHandler handles HTTP requests for system endpoints such as
// health checks and version information.
type SystemHandler struct {
	systemService *service.SystemService
}

// NewSystemHandler creates a new SystemHandler with the provided service dependency.
func NewSystemHandler(systemService *service.SystemService) *SystemHandler {
	return &SystemHandler{
		systemService: systemService,
	}
}

// Health handles GET requests for the liveness probe. It verifies the
// database connection is alive.
//
// Endpoint: GET /api/system/health
// Response: 200 OK with {"status": "ok"}
// Error: 503 Service Unavailable if the database is unreachable
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.systemService.CheckHealth(); err != nil {
		response.RespondError(w, http.StatusServiceUnavailable, "database unreachable", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Version handles GET requests for application and schema version info.
//
// Endpoint: GET /api/system/version
// Response: 200 OK with VersionInfo
func (h *SystemHandler) Version(w http.ResponseWriter, r *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.systemService.VersionInfo())
}
