package routes

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/xyz-asif/trackback/docs"
	"github.com/xyz-asif/trackback/internal/config"
	"github.com/xyz-asif/trackback/internal/features/auth"
	"github.com/xyz-asif/trackback/internal/features/items"
	"github.com/xyz-asif/trackback/internal/pkg/logger"
)

func testRouter(t *testing.T, rateLimit int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		StorageDriver: config.StorageMemory,
		JWTSecret:     "test-secret",
		JWTExpire:     time.Hour,
		FrontendURL:   "http://localhost:3000",
		AuthRateLimit: rateLimit,
	}
	return NewRouter(testContext(t), cfg, Deps{
		Users: auth.NewMemoryRepository(),
		Items: items.NewMemoryRepository(),
		Log:   logger.New(logger.ERROR),
	})
}

func TestHealth(t *testing.T) {
	w := httptest.NewRecorder()
	testRouter(t, 0).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"storage":"memory"`)
}

func TestSwaggerDoc(t *testing.T) {
	w := httptest.NewRecorder()
	testRouter(t, 0).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/items/report")
}

func TestAuthRoutesAreRateLimited(t *testing.T) {
	r := testRouter(t, 2)

	var codes []int
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(`{"username":"a","password":"b"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{401, 401, 429}, codes)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/items/all", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReportRequiresAuth(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/items/report", bytes.NewBufferString(`{"name":"x","kind":"lost"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	testRouter(t, 0).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPreflightListsRegisteredMethods(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/items/report", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	testRouter(t, 0).ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "GET, OPTIONS, POST", w.Header().Get("Access-Control-Allow-Methods"))
}
