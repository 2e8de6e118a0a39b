package handler

import (
	"context"

	appshipstation "github.com/commerce/shipstation/internal/application/shipstation"
	"github.com/commerce/shipstation/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SettingsManager reads and replaces the ShipStation configuration
type SettingsManager interface {
	Get(ctx context.Context) appshipstation.SettingsResponse
	Update(ctx context.Context, req appshipstation.UpdateSettingsRequest) (*appshipstation.SettingsResponse, error)
	Options(ctx context.Context) (*appshipstation.SettingsOptionsResponse, error)
}

// ShipStationAdminHandler exposes the ShipStation settings to administrators
type ShipStationAdminHandler struct {
	BaseHandler
	settings SettingsManager
	logger   *zap.Logger
}

// NewShipStationAdminHandler creates a new ShipStationAdminHandler
func NewShipStationAdminHandler(settings SettingsManager, log *zap.Logger) *ShipStationAdminHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ShipStationAdminHandler{settings: settings, logger: log}
}

// GetSettings godoc
// @Summary      Get ShipStation settings
// @Description  Returns the current configuration with the password and token masked
// @Tags         shipstation-admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Router       /api/v1/admin/shipstation/settings [get]
func (h *ShipStationAdminHandler) GetSettings(c *gin.Context) {
	h.Success(c, h.settings.Get(c.Request.Context()))
}

// UpdateSettings godoc
// @Summary      Update ShipStation settings
// @Description  Replaces the configuration. A masked or empty password keeps the stored one.
// @Tags         shipstation-admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body appshipstation.UpdateSettingsRequest true "Settings"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Router       /api/v1/admin/shipstation/settings [put]
func (h *ShipStationAdminHandler) UpdateSettings(c *gin.Context) {
	var req appshipstation.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	resp, err := h.settings.Update(c.Request.Context(), req)
	if err != nil {
		h.logger.Warn("ShipStation settings update rejected",
			zap.String("username", middleware.GetJWTUsername(c)),
			zap.Error(err))
		h.HandleError(c, err)
		return
	}

	h.logger.Info("ShipStation settings changed by administrator",
		zap.String("username", middleware.GetJWTUsername(c)))
	h.Success(c, resp)
}

// GetSettingsOptions godoc
// @Summary      List ShipStation setting options
// @Description  Page sizes, order states, shipping methods and field selectors accepted by the settings
// @Tags         shipstation-admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response
// @Router       /api/v1/admin/shipstation/settings/options [get]
func (h *ShipStationAdminHandler) GetSettingsOptions(c *gin.Context) {
	opts, err := h.settings.Options(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, opts)
}
