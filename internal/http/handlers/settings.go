package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Djberg2/GrndWrkv0/internal/models"
)

// @Summary Pricing settings
// @Tags settings
// @Produce json
// @Success 200 {object} models.PricingConfig
// @Router /api/settings/pricing [get]
func (h *Handler) GetPricing(c *gin.Context) {
	c.JSON(http.StatusOK, h.Settings.Pricing(c.Request.Context()))
}

// @Summary Save pricing settings
// @Tags settings
// @Accept json
// @Produce json
// @Param body body models.PricingConfig true "Pricing"
// @Success 200 {object} models.PricingConfig
// @Router /api/settings/pricing [put]
func (h *Handler) PutPricing(c *gin.Context) {
	var cfg models.PricingConfig
	putSetting(h, c, &cfg, h.Settings.SavePricing)
}

// @Summary Business settings
// @Tags settings
// @Produce json
// @Success 200 {object} models.BusinessConfig
// @Router /api/settings/business [get]
func (h *Handler) GetBusiness(c *gin.Context) {
	c.JSON(http.StatusOK, h.Settings.Business(c.Request.Context()))
}

// @Summary Save business settings
// @Tags settings
// @Accept json
// @Produce json
// @Param body body models.BusinessConfig true "Business"
// @Success 200 {object} models.BusinessConfig
// @Router /api/settings/business [put]
func (h *Handler) PutBusiness(c *gin.Context) {
	var cfg models.BusinessConfig
	putSetting(h, c, &cfg, h.Settings.SaveBusiness)
}

// @Summary Availability settings
// @Tags settings
// @Produce json
// @Success 200 {object} models.AvailabilityConfig
// @Router /api/settings/availability [get]
func (h *Handler) GetAvailability(c *gin.Context) {
	c.JSON(http.StatusOK, h.Settings.Availability(c.Request.Context()))
}

// @Summary Save availability settings
// @Tags settings
// @Accept json
// @Produce json
// @Param body body models.AvailabilityConfig true "Availability"
// @Success 200 {object} models.AvailabilityConfig
// @Router /api/settings/availability [put]
func (h *Handler) PutAvailability(c *gin.Context) {
	var cfg models.AvailabilityConfig
	putSetting(h, c, &cfg, h.Settings.SaveAvailability)
}

// putSetting replaces a settings document wholesale. Last write wins.
func putSetting[T any](h *Handler, c *gin.Context, cfg *T, save func(context.Context, T) error) {
	if err := c.ShouldBindJSON(cfg); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := save(c.Request.Context(), *cfg); err != nil {
		h.Logger.Error().Err(err).Msg("save settings")
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to save settings", nil)
		return
	}
	c.JSON(http.StatusOK, cfg)
}
