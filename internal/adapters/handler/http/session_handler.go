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

type SessionHandler struct {
	svc *services.SessionService
}

func NewSessionHandler(svc *services.SessionService) *SessionHandler {
	return &SessionHandler{svc: svc}
}

type createSessionRequest struct {
	ClientID       string    `json:"clientId" binding:"required"`
	ClientInitials string    `json:"clientInitials"`
	StartsAt       time.Time `json:"startsAt" binding:"required"`
	SessionNumber  int       `json:"sessionNumber"`
	LocationType   string    `json:"locationType"`
}

type updateSessionStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *SessionHandler) RegisterRoutes(router *gin.RouterGroup) {
	sessions := router.Group("/sessions")
	{
		sessions.POST("", h.Create)
		sessions.GET("", h.ListForDay)
		sessions.PATCH("/:id/status", h.UpdateStatus)
	}
}

func (h *SessionHandler) Create(c *gin.Context) {
	practitionerID, ok := middleware.GetPractitionerID(c)
	if !ok {
		respondError(c, http.StatusInternalServerError, "practitioner context missing")
		return
	}

	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	input := services.CreateSessionInput{
		PractitionerID: practitionerID,
		ClientID:       req.ClientID,
		ClientInitials: req.ClientInitials,
		StartsAt:       req.StartsAt,
		SessionNumber:  req.SessionNumber,
		LocationType:   req.LocationType,
	}

	session, err := h.svc.Create(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidLocationType) {
			respondError(c, http.StatusBadRequest, "invalid location type")
			return
		}
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "internal server error")
		return
	}

	respondOK(c, http.StatusCreated, session)
}

func (h *SessionHandler) ListForDay(c *gin.Context) {
	practitionerID, ok := middleware.GetPractitionerID(c)
	if !ok {
		respondError(c, http.StatusInternalServerError, "practitioner context missing")
		return
	}

	day := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid date format, expected YYYY-MM-DD")
			return
		}
		day = parsed
	}

	feed, err := h.svc.ListForDay(c.Request.Context(), practitionerID, day)
	if err != nil {
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "internal server error")
		return
	}

	respondOK(c, http.StatusOK, feed)
}

func (h *SessionHandler) UpdateStatus(c *gin.Context) {
	practitionerID, ok := middleware.GetPractitionerID(c)
	if !ok {
		respondError(c, http.StatusInternalServerError, "practitioner context missing")
		return
	}

	sessionID := c.Param("id")

	var req updateSessionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	err := h.svc.UpdateStatus(c.Request.Context(), practitionerID, sessionID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidSessionStatus):
			respondError(c, http.StatusBadRequest, "invalid session status")
		case errors.Is(err, domain.ErrSessionNotFound):
			respondError(c, http.StatusNotFound, "session not found")
		case errors.Is(err, domain.ErrUnauthorized):
			respondError(c, http.StatusForbidden, "session belongs to another practitioner")
		default:
			_ = c.Error(err)
			respondError(c, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	c.Status(http.StatusNoContent)
}
