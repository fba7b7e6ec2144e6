package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Djberg2/GrndWrkv0/internal/availability"
	"github.com/Djberg2/GrndWrkv0/internal/blob"
	"github.com/Djberg2/GrndWrkv0/internal/pricing"
	"github.com/Djberg2/GrndWrkv0/internal/service"
)

// @Summary Schedule an appointment
// @Description Records a quote request with its chosen appointment slot as a New lead
// @Tags public
// @Accept json
// @Produce json
// @Param body body service.ScheduleRequest true "Appointment request"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Failure 500 {object} map[string]any
// @Router /api/schedule-appointment [post]
func (h *Handler) ScheduleAppointment(c *gin.Context) {
	var req service.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}

	id, err := h.Scheduler.Schedule(c.Request.Context(), req)
	switch {
	case errors.Is(err, service.ErrMissingFields):
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing required fields.", nil)
		return
	case errors.Is(err, service.ErrInvalidDateTime):
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid scheduledDateTime", req.ScheduledDateTime)
		return
	case err != nil:
		h.Logger.Error().Err(err).Msg("schedule appointment failed")
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to schedule appointment", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment scheduled", "id": id})
}

// @Summary Submit quote form
// @Description Accepts the widget's quote form; nothing is stored
// @Tags public
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 500 {object} map[string]any
// @Router /api/submit-quote [post]
func (h *Handler) SubmitQuote(c *gin.Context) {
	var body map[string]any
	if err := json.NewDecoder(c.Request.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		h.Logger.Warn().Err(err).Msg("submit quote: unreadable body")
		writeError(c, http.StatusInternalServerError, "INVALID_REQUEST", "Failed to process request", nil)
		return
	}
	h.Logger.Info().Int("fields", len(body)).Msg("quote form received")
	c.JSON(http.StatusOK, gin.H{"message": "Quote received!"})
}

// @Summary Upload quote photo
// @Tags public
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Photo"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]any
// @Failure 500 {object} map[string]any
// @Router /api/upload-quote-photo [post]
func (h *Handler) UploadQuotePhoto(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		writeError(c, http.StatusBadRequest, "NO_FILE", "No file uploaded", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		h.Metrics.PhotoUpload("error")
		h.Logger.Error().Err(err).Msg("open upload")
		writeError(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Upload failed", nil)
		return
	}
	defer f.Close()

	key := blob.ObjectName(fh.Filename)
	contentType := fh.Header.Get("Content-Type")
	if err := h.Blob.Put(c.Request.Context(), key, contentType, f, fh.Size); err != nil {
		h.Metrics.PhotoUpload("error")
		h.Logger.Error().Err(err).Str("key", key).Msg("photo upload failed")
		writeError(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Upload failed", nil)
		return
	}
	h.Metrics.PhotoUpload("ok")
	h.Logger.Info().Str("key", key).Int64("size", fh.Size).Msg("photo uploaded")
	c.JSON(http.StatusOK, gin.H{"path": key, "publicUrl": h.Blob.PublicURL(key)})
}

// ObjectReader is implemented by photo storage that can serve its own
// objects, i.e. the in-memory store used without a bucket.
type ObjectReader interface {
	Get(key string) (blob.Object, bool)
}

// @Summary Stored quote photo
// @Description Only available when photos are kept in process memory
// @Tags public
// @Param key path string true "Object key"
// @Success 200 {file} file
// @Failure 404 {object} map[string]any
// @Router /photos/{key} [get]
func (h *Handler) Photo(c *gin.Context) {
	r, ok := h.Blob.(ObjectReader)
	if !ok {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "Photo not found", nil)
		return
	}
	obj, ok := r.Get(c.Param("key"))
	if !ok {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "Photo not found", c.Param("key"))
		return
	}
	contentType := obj.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Data(http.StatusOK, contentType, obj.Data)
}

type EstimateRequest struct {
	ServiceType   string  `json:"serviceType" validate:"required"`
	SquareFootage float64 `json:"squareFootage" validate:"gte=0"`
}

// @Summary Estimate a project
// @Description Prices a service for the given square footage using the current pricing settings
// @Tags public
// @Accept json
// @Produce json
// @Param body body EstimateRequest true "Estimate request"
// @Success 200 {object} pricing.Quote
// @Failure 400 {object} map[string]any
// @Router /api/estimate [post]
func (h *Handler) Estimate(c *gin.Context) {
	var req EstimateRequest
	if !h.bind(c, &req) {
		return
	}
	cfg := h.Settings.Pricing(c.Request.Context())
	q, err := h.Estimator.Estimate(cfg, req.ServiceType, req.SquareFootage)
	if err != nil {
		if errors.Is(err, pricing.ErrUnknownService) {
			writeError(c, http.StatusBadRequest, "UNKNOWN_SERVICE", "Unknown service type", req.ServiceType)
			return
		}
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Cannot estimate", err.Error())
		return
	}
	h.Metrics.EstimateServed(q.ServiceType)
	c.JSON(http.StatusOK, q)
}

// @Summary Open appointment slots
// @Tags public
// @Produce json
// @Param date query string true "YYYY-MM-DD"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /api/availability [get]
func (h *Handler) Availability(c *gin.Context) {
	date := c.Query("date")
	if _, err := time.Parse(availability.DateLayout, date); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "date must be YYYY-MM-DD", date)
		return
	}
	ctx := c.Request.Context()
	taken, err := h.Store.TakenSlots(ctx, date)
	if err != nil {
		h.Logger.Error().Err(err).Str("date", date).Msg("load taken slots")
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load availability", nil)
		return
	}
	slots, err := availability.Slots(h.Settings.Availability(ctx), date, h.now(), taken)
	if err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date", date)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "slots": slots})
}

// @Summary Service catalogue
// @Tags public
// @Produce json
// @Success 200 {array} service.CatalogueEntry
// @Router /api/services [get]
func (h *Handler) Services(c *gin.Context) {
	c.JSON(http.StatusOK, service.Catalogue(h.Settings.Pricing(c.Request.Context())))
}
