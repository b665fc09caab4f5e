package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/xyz-asif/trackback/internal/pkg/token"
)

const testSecret = "test-secret"

func protectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Auth(testSecret))
	r.GET("/protected", func(c *gin.Context) {
		user, _ := Username(c)
		c.JSON(200, gin.H{"user": user})
	})
	return r
}

func TestAuthMiddleware_NoHeader(t *testing.T) {
	w := httptest.NewRecorder()
	protectedRouter().ServeHTTP(w, httptest.NewRequest("GET", "/protected", nil))

	require.Equal(t, 401, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "Authorization header required", body["error"])
	require.Equal(t, "AUTH_REQUIRED", body["code"])
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	protectedRouter().ServeHTTP(w, req)

	require.Equal(t, 401, w.Code)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	signed, err := token.GenerateToken("alice", testSecret, time.Hour)
	require.NoError(t, err)

	for _, header := range []string{"Bearer " + signed, "bearer " + signed, signed} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", header)
		protectedRouter().ServeHTTP(w, req)

		require.Equal(t, 200, w.Code)
		assert.JSONEq(t, `{"user":"alice"}`, w.Body.String())
	}
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS("http://localhost:3000", func() []string { return RouteMethods(r) }))
	r.GET("/x", func(c *gin.Context) { c.Status(200) })
	r.POST("/y", func(c *gin.Context) { c.Status(201) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	r.ServeHTTP(w, req)
	assert.Equal(t, 204, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, OPTIONS, POST", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type, Authorization", w.Header().Get("Access-Control-Allow-Headers"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://evil.example")
	r.ServeHTTP(w, req)
	assert.Equal(t, 200, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_WildcardEchoesOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS("*", func() []string { return []string{"GET"} }))
	r.GET("/x", func(c *gin.Context) { c.Status(200) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://any.example")
	req.Header.Set("Access-Control-Request-Headers", "X-Trace")
	r.ServeHTTP(w, req)
	assert.Equal(t, "http://any.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "X-Trace", w.Header().Get("Access-Control-Allow-Headers"))
}

func TestLogger_MasksSecretsOnFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.DebugLevel)

	r := gin.New()
	r.Use(Logger(zap.New(core)))
	r.POST("/login", func(c *gin.Context) {
		c.JSON(401, gin.H{"error": "invalid credentials"})
	})
	r.GET("/health", func(c *gin.Context) { c.Status(200) })

	body := `{"username":"alice","password":"hunter2","imageData":"data:image/png;base64,AAAA"}`
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(httptest.NewRecorder(), req)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)

	ctx := entry.ContextMap()
	assert.Equal(t, int64(401), ctx["status"])
	assert.NotContains(t, ctx["request"], "hunter2")
	assert.Contains(t, ctx["request"], "********")
	assert.Contains(t, ctx["request"], "[image]")
	assert.Contains(t, ctx["response"], "invalid credentials")
}
