package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/Djberg2/GrndWrkv0/internal/blob"
	"github.com/Djberg2/GrndWrkv0/internal/geocode"
	"github.com/Djberg2/GrndWrkv0/internal/metrics"
	"github.com/Djberg2/GrndWrkv0/internal/pricing"
	"github.com/Djberg2/GrndWrkv0/internal/service"
	"github.com/Djberg2/GrndWrkv0/internal/settings"
)

// Store is the part of the data layer the handlers call directly. Everything
// else goes through the services.
type Store interface {
	Ping(ctx context.Context) error
	TakenSlots(ctx context.Context, date string) ([]string, error)
	service.LeadWriter
}

type Handler struct {
	Store     Store
	Settings  *settings.Service
	Lifecycle *service.LifecycleService
	Leads     *service.LeadService
	Scheduler *service.ScheduleService
	Blob      blob.Storage
	Geocoder  geocode.Geocoder
	Estimator pricing.Estimator
	Metrics   *metrics.Metrics
	Validator *validator.Validate
	Logger    zerolog.Logger
	Location  *time.Location
	Now       func() time.Time
}

func (h *Handler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()
	if err := h.Store.Ping(ctx); err != nil {
		writeError(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database unavailable", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// now is the current time in the business time zone.
func (h *Handler) now() time.Time {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	return now().In(h.location())
}

func (h *Handler) location() *time.Location {
	if h.Location == nil {
		return time.UTC
	}
	return h.Location
}

// bind decodes the JSON body into req and validates it, writing a 400 on
// failure.
func (h *Handler) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return false
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return false
	}
	return true
}

func leadID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(c, http.StatusBadRequest, "INVALID_ID", "Invalid lead id", c.Param("id"))
		return 0, false
	}
	return id, true
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
