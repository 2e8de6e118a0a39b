// Package middleware provides HTTP middleware for the ShipStation bridge.
package middleware

import (
	"net/http"

	"github.com/commerce/shipstation/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracingConfig holds configuration for the tracing middleware.
type TracingConfig struct {
	ServiceName string
	Enabled     bool
}

// Tracing returns the otelgin server span middleware, or a pass-through
// when tracing is disabled.
func Tracing(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}
	return otelgin.Middleware(cfg.ServiceName)
}

// traced ShipStation actions; anything else is left off the span
var tracedActions = map[string]bool{"export": true, "shipnotify": true}

// SpanEnricher tags the server span with the request ID and ShipStation
// action, and marks 4xx/5xx responses as errors. It must run after Tracing.
func SpanEnricher() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			c.Next()
			return
		}

		if requestID := c.GetString("request_id"); requestID != "" {
			span.SetAttributes(attribute.String("request_id", requestID))
		}
		if action := c.Query("action"); tracedActions[action] {
			span.SetAttributes(telemetry.AttrAction.String(action))
		}

		c.Next()

		if status := c.Writer.Status(); status >= http.StatusBadRequest {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
		if username := GetJWTUsername(c); username != "" {
			span.SetAttributes(attribute.String("enduser.id", username))
		}
	}
}
