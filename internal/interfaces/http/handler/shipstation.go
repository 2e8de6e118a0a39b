package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	appshipstation "github.com/commerce/shipstation/internal/application/shipstation"
	"github.com/commerce/shipstation/internal/domain/shipstation"
	"github.com/commerce/shipstation/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ShipStation request actions
const (
	ActionExport     = "export"
	ActionShipNotify = "shipnotify"
)

// Query parameters carrying credentials
const (
	ParamUsername = "SS-UserName"
	ParamPassword = "SS-Password"
	ParamAuthKey  = "auth_key"
)

// AuthRealm is announced on authentication failures
const AuthRealm = "ShipStation XML API for Drupal Commerce"

// SensitiveQueryParams lists the query parameters that must never be logged
var SensitiveQueryParams = []string{ParamUsername, ParamPassword, ParamAuthKey}

// OrderExporter renders the order feed
type OrderExporter interface {
	ExportOrders(ctx context.Context, req appshipstation.ExportRequest) (*appshipstation.ExportResult, error)
}

// ShipNotifier records shipments
type ShipNotifier interface {
	ShipNotify(ctx context.Context, req appshipstation.ShipNotifyRequest) (*appshipstation.ShipNotifyResult, error)
}

// RequestAuthenticator checks ShipStation credentials
type RequestAuthenticator interface {
	Authenticate(creds appshipstation.Credentials) error
}

// ShipStationHandler serves the single endpoint ShipStation talks to
type ShipStationHandler struct {
	BaseHandler
	settings appshipstation.SettingsSource
	auth     RequestAuthenticator
	exporter OrderExporter
	notifier ShipNotifier
	logger   *zap.Logger
}

// NewShipStationHandler creates a new ShipStationHandler
func NewShipStationHandler(
	settings appshipstation.SettingsSource,
	auth RequestAuthenticator,
	exporter OrderExporter,
	notifier ShipNotifier,
	log *zap.Logger,
) *ShipStationHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ShipStationHandler{
		settings: settings,
		auth:     auth,
		exporter: exporter,
		notifier: notifier,
		logger:   log,
	}
}

// exportQuery holds the action=export parameters
type exportQuery struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Page      string `form:"page"`
}

// shipNotifyQuery holds the action=shipnotify parameters
type shipNotifyQuery struct {
	OrderNumber     string `form:"order_number"`
	TrackingNumber  string `form:"tracking_number"`
	Carrier         string `form:"carrier"`
	Service         string `form:"service"`
	ShipDate        string `form:"ship_date"`
	LabelCreateDate string `form:"label_create_date"`
}

// Endpoint godoc
// @Summary      ShipStation custom store endpoint
// @Description  action=export returns the order feed, action=shipnotify records a shipment
// @Tags         shipstation
// @Produce      xml,plain
// @Param        action      query  string  true   "export or shipnotify"
// @Param        auth_key    query  string  false  "Alternate authentication token"
// @Success      200
// @Failure      403  {string}  string
// @Failure      404  {string}  string
// @Router       /shipstation/endpoint [get]
func (h *ShipStationHandler) Endpoint(c *gin.Context) {
	log := h.logger.With(zap.String("request_id", getRequestID(c)))

	if h.settings.Current().Settings.Logging {
		log.Info("ShipStation request", zap.String("request", maskedRequestVars(c)))
	}

	if err := h.auth.Authenticate(credentialsFrom(c)); err != nil {
		c.Header("WWW-Authenticate", fmt.Sprintf("Basic realm=%q", AuthRealm))
		h.HandleTextError(c, err)
		return
	}

	switch c.Query("action") {
	case ActionExport:
		h.export(c)
	case ActionShipNotify:
		h.shipNotify(c)
	default:
		log.Error("Invalid request action received from ShipStation. Enable or check request logging for more information",
			zap.String("action", c.Query("action")))
		h.HandleTextError(c, shipstation.ErrInvalidAction)
	}
}

func (h *ShipStationHandler) export(c *gin.Context) {
	var q exportQuery
	_ = c.ShouldBindQuery(&q)

	page, err := strconv.Atoi(q.Page)
	if err != nil {
		page = 1
	}

	result, err := h.exporter.ExportOrders(c.Request.Context(), appshipstation.ExportRequest{
		StartDate: q.StartDate,
		EndDate:   q.EndDate,
		Page:      page,
	})
	if err != nil {
		h.HandleTextError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", []byte(result.XML))
}

func (h *ShipStationHandler) shipNotify(c *gin.Context) {
	var q shipNotifyQuery
	_ = c.ShouldBindQuery(&q)

	result, err := h.notifier.ShipNotify(c.Request.Context(), appshipstation.ShipNotifyRequest{
		OrderNumber:     q.OrderNumber,
		TrackingNumber:  q.TrackingNumber,
		Carrier:         q.Carrier,
		Service:         q.Service,
		ShipDate:        q.ShipDate,
		LabelCreateDate: q.LabelCreateDate,
	})
	if err != nil {
		h.HandleTextError(c, err)
		return
	}
	c.String(http.StatusOK, result.Message)
}

// credentialsFrom reads Basic credentials, falling back to the
// SS-UserName and SS-Password query parameters
func credentialsFrom(c *gin.Context) appshipstation.Credentials {
	creds := appshipstation.Credentials{AuthKey: c.Query(ParamAuthKey)}
	if user, pass, ok := c.Request.BasicAuth(); ok {
		creds.Username, creds.Password = user, pass
		return creds
	}
	creds.Username = c.Query(ParamUsername)
	creds.Password = c.Query(ParamPassword)
	return creds
}

// maskedRequestVars renders the query with credential parameters always
// replaced, present or not
func maskedRequestVars(c *gin.Context) string {
	vars := c.Request.URL.Query()
	vars.Set(ParamUsername, logger.MaskedValue)
	vars.Set(ParamPassword, logger.MaskedValue)
	vars.Set(ParamAuthKey, "*****")
	return vars.Encode()
}
