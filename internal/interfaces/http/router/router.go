// Package router mounts the bridge's HTTP routes on a gin engine.
package router

import (
	"github.com/commerce/shipstation/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// DefaultAPIVersion prefixes the admin API when Config.APIVersion is empty
const DefaultAPIVersion = "v1"

// HealthHandler serves the liveness probe
type HealthHandler interface {
	Health(c *gin.Context)
}

// EndpointHandler serves the ShipStation custom store endpoint
type EndpointHandler interface {
	Endpoint(c *gin.Context)
}

// SettingsHandler serves the ShipStation settings admin API
type SettingsHandler interface {
	GetSettings(c *gin.Context)
	UpdateSettings(c *gin.Context)
	GetSettingsOptions(c *gin.Context)
}

// Handlers groups the handlers exposed by the bridge
type Handlers struct {
	Health      HealthHandler
	ShipStation EndpointHandler
	Settings    SettingsHandler
}

// Config controls the admin API mount point
type Config struct {
	APIVersion string
	// AdminAuth runs before every admin route, typically JWT validation
	AdminAuth []gin.HandlerFunc
}

// Register mounts:
//
//	GET      /health
//	GET,POST /shipstation/endpoint                            ShipStation credentials
//	GET,PUT  /api/{version}/admin/shipstation/settings        AdminAuth
//	GET      /api/{version}/admin/shipstation/settings/options AdminAuth
func Register(r gin.IRouter, h Handlers, cfg Config) {
	if h.Health != nil {
		r.GET("/health", h.Health.Health)
	}

	if h.ShipStation != nil {
		endpoint := r.Group("/shipstation", middleware.NoStore())
		endpoint.GET("/endpoint", h.ShipStation.Endpoint)
		endpoint.POST("/endpoint", h.ShipStation.Endpoint)
	}

	if h.Settings != nil {
		version := cfg.APIVersion
		if version == "" {
			version = DefaultAPIVersion
		}
		admin := r.Group("/api/"+version+"/admin/shipstation", cfg.AdminAuth...)
		admin.GET("/settings", h.Settings.GetSettings)
		admin.PUT("/settings", h.Settings.UpdateSettings)
		admin.GET("/settings/options", h.Settings.GetSettingsOptions)
	}
}
