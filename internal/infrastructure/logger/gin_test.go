package logger

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func findHTTPLog(t *testing.T, recorded *observer.ObservedLogs) observer.LoggedEntry {
	t.Helper()
	logs := recorded.FilterMessage("HTTP Request").All()
	require.Len(t, logs, 1, "HTTP Request log should exist")
	return logs[0]
}

func TestGinMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, recorded := observer.New(zapcore.InfoLevel)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("request_id", "test-req-123")
		c.Next()
	})
	router.Use(GinMiddleware(zap.New(core)))
	router.GET("/test", func(c *gin.Context) {
		FromContext(c.Request.Context()).Info("inside handler")
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	entry := findHTTPLog(t, recorded)
	assert.Equal(t, zapcore.InfoLevel, entry.Level)
	assert.Equal(t, "test-req-123", entry.ContextMap()["request_id"])
	assert.Equal(t, int64(200), entry.ContextMap()["status"])

	inside := recorded.FilterMessage("inside handler").All()
	require.Len(t, inside, 1)
	assert.Equal(t, "test-req-123", inside[0].ContextMap()["request_id"])
}

func TestGinMiddleware_MasksSensitiveQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, recorded := observer.New(zapcore.InfoLevel)

	router := gin.New()
	router.Use(GinMiddleware(zap.New(core), "SS-UserName", "SS-Password", "auth_key"))
	router.GET("/shipstation/endpoint", func(c *gin.Context) {
		c.Status(http.StatusForbidden)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/shipstation/endpoint?action=export&SS-UserName=ship&SS-Password=secret&auth_key=tok", nil)
	router.ServeHTTP(w, req)

	entry := findHTTPLog(t, recorded)
	assert.Equal(t, zapcore.WarnLevel, entry.Level)

	query, ok := entry.ContextMap()["query"].(string)
	require.True(t, ok)
	assert.NotContains(t, query, "secret")
	assert.NotContains(t, query, "tok")

	values, err := url.ParseQuery(query)
	require.NoError(t, err)
	assert.Equal(t, "export", values.Get("action"))
	assert.Equal(t, MaskedValue, values.Get("SS-Password"))
	assert.Equal(t, MaskedValue, values.Get("auth_key"))
}

func TestGinMiddleware_ServerErrorLevel(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, recorded := observer.New(zapcore.InfoLevel)

	router := gin.New()
	router.Use(GinMiddleware(zap.New(core)))
	router.GET("/fail", func(c *gin.Context) {
		c.Status(http.StatusInternalServerError)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/fail", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, zapcore.ErrorLevel, findHTTPLog(t, recorded).Level)
}

func TestMaskQuery(t *testing.T) {
	assert.Equal(t, "", MaskQuery(nil, "auth_key"))
	assert.Equal(t, "action=export", MaskQuery(url.Values{"action": {"export"}}, "auth_key"))
	assert.Equal(t, "auth_key=%2A%2A%2A%2A%2A%2A", MaskQuery(url.Values{"auth_key": {"abc"}}, "auth_key"))
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, recorded := observer.New(zapcore.ErrorLevel)

	router := gin.New()
	router.Use(Recovery(zap.New(core)))
	router.GET("/panic", func(c *gin.Context) {
		panic("mapper exploded")
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/panic", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 1, recorded.FilterMessage("Panic recovered").Len())
}

func TestGetGinLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.NotNil(t, GetGinLogger(c))

	log := zap.NewExample()
	c.Set("logger", log)
	assert.Same(t, log, GetGinLogger(c))
}
