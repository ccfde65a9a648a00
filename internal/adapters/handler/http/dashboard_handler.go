package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bloomcare/bloom-practice-engine/internal/adapters/handler/http/middleware"
	"github.com/bloomcare/bloom-practice-engine/internal/core/domain"
	"github.com/bloomcare/bloom-practice-engine/internal/core/services"
)

type DashboardHandler struct {
	svc *services.DashboardService
}

func NewDashboardHandler(svc *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/practitioners/:id/dashboard", h.GetDashboard)
}

// GetDashboard returns the composed dashboard for a practitioner. The
// optional date query pins "now" to local noon of that day, which keeps
// the feed deterministic in tests and demos.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	callerID, ok := middleware.GetPractitionerID(c)
	if !ok {
		respondError(c, http.StatusInternalServerError, "practitioner context missing")
		return
	}

	practitionerID := c.Param("id")
	if practitionerID != callerID {
		respondError(c, http.StatusForbidden, "cannot view another practitioner's dashboard")
		return
	}

	asOf := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		day, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid date format, expected YYYY-MM-DD")
			return
		}
		asOf = time.Date(day.Year(), day.Month(), day.Day(), 12, 0, 0, 0, time.Local)
	}

	dashboard, err := h.svc.Compose(c.Request.Context(), practitionerID, asOf)
	if err != nil {
		if errors.Is(err, domain.ErrPractitionerNotFound) {
			respondError(c, http.StatusNotFound, "practitioner not found")
			return
		}
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "failed to build dashboard")
		return
	}

	respondOK(c, http.StatusOK, dashboard)
}
