package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Djberg2/GrndWrkv0/internal/db"
	"github.com/Djberg2/GrndWrkv0/internal/export"
	"github.com/Djberg2/GrndWrkv0/internal/geocode"
	"github.com/Djberg2/GrndWrkv0/internal/models"
	"github.com/Djberg2/GrndWrkv0/internal/service"
)

// FlexID accepts a lead id sent either as a JSON number or a numeric string.
type FlexID int64

func (f *FlexID) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", s)
	}
	*f = FlexID(n)
	return nil
}

type RawStatusRequest struct {
	LeadID FlexID `json:"leadId"`
	ID     FlexID `json:"id"`
	Status string `json:"status"`
}

// @Summary Update lead status
// @Description Writes the status straight to the store. Also served at /api/status-update.
// @Tags leads
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Failure 500 {object} map[string]any
// @Router /api/update-lead-status [post]
func (h *Handler) UpdateLeadStatus(c *gin.Context) {
	var req RawStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	id := int64(req.LeadID)
	if id == 0 {
		id = int64(req.ID)
	}
	status := strings.TrimSpace(req.Status)
	if id <= 0 || status == "" {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing leadId or status", nil)
		return
	}
	if !models.ValidStatus(status) {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid status", models.Statuses)
		return
	}
	if err := h.Store.UpdateLeadStatus(c.Request.Context(), id, status); err != nil {
		h.Logger.Error().Err(err).Int64("lead_id", id).Msg("status update failed")
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Error updating status", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Status updated"})
}

type RawNotesRequest struct {
	ID    FlexID `json:"id"`
	Notes string `json:"notes"`
}

// @Summary Update lead notes
// @Tags leads
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Failure 500 {object} map[string]any
// @Router /api/update-lead-notes [post]
func (h *Handler) UpdateLeadNotes(c *gin.Context) {
	var req RawNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if req.ID <= 0 {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing id", nil)
		return
	}
	if err := h.Store.UpdateLeadNotes(c.Request.Context(), int64(req.ID), req.Notes); err != nil {
		h.Logger.Error().Err(err).Int64("lead_id", int64(req.ID)).Msg("notes update failed")
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Error updating notes", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Notes updated"})
}

func (h *Handler) filter(c *gin.Context) (service.Filter, bool) {
	var f service.Filter
	if err := c.ShouldBindQuery(&f); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_QUERY", "Invalid filter", err.Error())
		return f, false
	}
	return f, true
}

// @Summary List leads
// @Tags leads
// @Produce json
// @Param search query string false "Free text"
// @Param status query string false "new|contacted|scheduled|quote-sent"
// @Param service query string false "Service slug"
// @Param created query string false "all|today|week|month"
// @Param scheduled query string false "all|today|week|month"
// @Success 200 {array} models.Lead
// @Router /api/leads [get]
func (h *Handler) LeadsList(c *gin.Context) {
	f, ok := h.filter(c)
	if !ok {
		return
	}
	leads, err := h.Leads.List(c.Request.Context(), f, h.now())
	if err != nil {
		h.Logger.Error().Err(err).Msg("list leads")
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load leads", nil)
		return
	}
	c.JSON(http.StatusOK, leads)
}

// @Summary Export leads
// @Description Same filters as the lead list, as an xlsx workbook
// @Tags leads
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Router /api/leads/export [get]
func (h *Handler) LeadsExport(c *gin.Context) {
	f, ok := h.filter(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	leads, err := h.Leads.List(ctx, f, h.now())
	if err != nil {
		h.Logger.Error().Err(err).Msg("export leads")
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load leads", nil)
		return
	}
	names := map[string]string{}
	for _, e := range h.Leads.Estimators(ctx) {
		names[e.ID] = e.Fullname
	}

	var buf bytes.Buffer
	if err := export.WriteLeads(&buf, leads, names); err != nil {
		h.Logger.Error().Err(err).Msg("build workbook")
		writeError(c, http.StatusInternalServerError, "EXPORT_FAILED", "Failed to export leads", nil)
		return
	}
	filename := fmt.Sprintf("leads-%s.xlsx", h.now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

// @Summary Leads inbox
// @Description Leads split into pending, scheduled and quote-sent tabs
// @Tags leads
// @Produce json
// @Param estimator query string false "Estimator id; narrows the scheduled and quote-sent tabs"
// @Success 200 {object} service.Inbox
// @Router /api/leads/inbox [get]
func (h *Handler) LeadsInbox(c *gin.Context) {
	f, ok := h.filter(c)
	if !ok {
		return
	}
	leads, err := h.Leads.List(c.Request.Context(), f, h.now())
	if err != nil {
		h.Logger.Error().Err(err).Msg("inbox")
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load leads", nil)
		return
	}
	c.JSON(http.StatusOK, service.Categorize(leads, c.Query("estimator")))
}

// @Summary Lead details
// @Tags leads
// @Produce json
// @Param id path int true "Lead ID"
// @Success 200 {object} models.Lead
// @Failure 404 {object} map[string]any
// @Router /api/leads/{id} [get]
func (h *Handler) LeadGet(c *gin.Context) {
	id, ok := leadID(c)
	if !ok {
		return
	}
	lead, err := h.Leads.Get(c.Request.Context(), id)
	if errors.Is(err, db.ErrNotFound) {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "Lead not found", id)
		return
	}
	if err != nil {
		h.Logger.Error().Err(err).Int64("lead_id", id).Msg("get lead")
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load lead", nil)
		return
	}
	c.JSON(http.StatusOK, lead)
}

type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// @Summary Set lead status
// @Description Never fails on a store outage; the change is kept in the overlay and source reports where it landed
// @Tags leads
// @Accept json
// @Produce json
// @Param id path int true "Lead ID"
// @Param body body StatusRequest true "New status"
// @Success 200 {object} service.WriteResult
// @Failure 400 {object} map[string]any
// @Router /api/leads/{id}/status [post]
func (h *Handler) LeadSetStatus(c *gin.Context) {
	id, ok := leadID(c)
	if !ok {
		return
	}
	var req StatusRequest
	if !h.bind(c, &req) {
		return
	}
	res, err := h.Lifecycle.SetStatus(c.Request.Context(), id, req.Status)
	if errors.Is(err, service.ErrInvalidStatus) {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid status", models.Statuses)
		return
	}
	c.JSON(http.StatusOK, res)
}

type AssignmentRequest struct {
	EstimatorID *string `json:"estimatorId"`
}

// @Summary Assign an estimator
// @Description A null or empty estimatorId unassigns the lead
// @Tags leads
// @Accept json
// @Produce json
// @Param id path int true "Lead ID"
// @Param body body AssignmentRequest true "Estimator"
// @Success 200 {object} service.WriteResult
// @Router /api/leads/{id}/assignment [post]
func (h *Handler) LeadSetAssignment(c *gin.Context) {
	id, ok := leadID(c)
	if !ok {
		return
	}
	var req AssignmentRequest
	if !h.bind(c, &req) {
		return
	}
	c.JSON(http.StatusOK, h.Lifecycle.SetAssignment(c.Request.Context(), id, req.EstimatorID))
}

type NotesRequest struct {
	Notes string `json:"notes"`
}

// @Summary Save lead notes
// @Tags leads
// @Accept json
// @Produce json
// @Param id path int true "Lead ID"
// @Param body body NotesRequest true "Notes"
// @Success 200 {object} service.WriteResult
// @Router /api/leads/{id}/notes [post]
func (h *Handler) LeadSetNotes(c *gin.Context) {
	id, ok := leadID(c)
	if !ok {
		return
	}
	var req NotesRequest
	if !h.bind(c, &req) {
		return
	}
	c.JSON(http.StatusOK, h.Lifecycle.SetNotes(c.Request.Context(), id, req.Notes))
}

// @Summary Service area check
// @Description Distance from the business's primary city to the lead's address
// @Tags leads
// @Produce json
// @Param id path int true "Lead ID"
// @Success 200 {object} geocode.AreaCheck
// @Failure 404 {object} map[string]any
// @Failure 422 {object} map[string]any
// @Failure 502 {object} map[string]any
// @Router /api/leads/{id}/service-area [get]
func (h *Handler) LeadServiceArea(c *gin.Context) {
	id, ok := leadID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	lead, err := h.Leads.Get(ctx, id)
	if errors.Is(err, db.ErrNotFound) {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "Lead not found", id)
		return
	}
	if err != nil {
		h.Logger.Error().Err(err).Int64("lead_id", id).Msg("get lead")
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load lead", nil)
		return
	}

	biz := h.Settings.Business(ctx)
	check, err := geocode.CheckServiceArea(ctx, h.Geocoder, biz, lead.Address)
	if errors.Is(err, geocode.ErrOriginNotFound) {
		writeError(c, http.StatusUnprocessableEntity, "ORIGIN_NOT_FOUND", "Business primary city could not be located", biz.PrimaryCity)
		return
	}
	if errors.Is(err, geocode.ErrNotFound) {
		writeError(c, http.StatusUnprocessableEntity, "ADDRESS_NOT_FOUND", "Address could not be located", lead.Address)
		return
	}
	if err != nil {
		h.Logger.Warn().Err(err).Int64("lead_id", id).Msg("service area check failed")
		writeError(c, http.StatusBadGateway, "GEOCODER_ERROR", "Geocoding failed", nil)
		return
	}
	c.JSON(http.StatusOK, check)
}

// @Summary Appointment calendar
// @Tags leads
// @Produce json
// @Param from query string false "YYYY-MM-DD, default today"
// @Param to query string false "YYYY-MM-DD, default from + 30 days"
// @Success 200 {array} models.Lead
// @Failure 400 {object} map[string]any
// @Router /api/calendar [get]
func (h *Handler) Calendar(c *gin.Context) {
	const layout = "2006-01-02"
	from, to := c.Query("from"), c.Query("to")
	if from == "" {
		from = h.now().Format(layout)
	}
	start, err := time.Parse(layout, from)
	if err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "from must be YYYY-MM-DD", from)
		return
	}
	if to == "" {
		to = start.AddDate(0, 0, 30).Format(layout)
	}
	end, err := time.Parse(layout, to)
	if err != nil || end.Before(start) {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "to must be a YYYY-MM-DD date not before from", to)
		return
	}

	leads, err := h.Leads.Calendar(c.Request.Context(), from, to)
	if err != nil {
		h.Logger.Error().Err(err).Msg("calendar")
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load appointments", nil)
		return
	}
	c.JSON(http.StatusOK, leads)
}

// @Summary Estimators
// @Tags leads
// @Produce json
// @Success 200 {array} models.Estimator
// @Router /api/estimators [get]
func (h *Handler) Estimators(c *gin.Context) {
	c.JSON(http.StatusOK, h.Leads.Estimators(c.Request.Context()))
}

// @Summary Analytics
// @Description KPIs, monthly series and service mix over all leads
// @Tags analytics
// @Produce json
// @Success 200 {object} service.Analytics
// @Router /api/analytics [get]
func (h *Handler) Analytics(c *gin.Context) {
	leads, err := h.Leads.List(c.Request.Context(), service.Filter{}, h.now())
	if err != nil {
		h.Logger.Error().Err(err).Msg("analytics")
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load leads", nil)
		return
	}
	c.JSON(http.StatusOK, service.Summarize(leads, h.location()))
}
