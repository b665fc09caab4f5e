package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xyz-asif/trackback/pkg/errors"
)

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestSuccessAndErrorResponses(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Success(c, map[string]string{"foo": "bar"})
	require.Equal(t, 200, w.Code)
	body := decode(t, w)
	require.Equal(t, "success", body["status"])
	require.Equal(t, map[string]any{"foo": "bar"}, body["data"])

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	Created(c, []int{1})
	require.Equal(t, 201, w.Code)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	Error(c, 400, "bad request", "BAD_REQ")
	require.Equal(t, 400, w.Code)
	body = decode(t, w)
	require.Equal(t, "bad request", body["error"])
	require.Equal(t, "BAD_REQ", body["code"])
}

func TestErrorWithoutCodeOmitsIt(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	NotFound(c, "nope")

	body := decode(t, w)
	require.NotContains(t, body, "code")
}

func TestFromError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{apperrors.ErrDuplicateUser, http.StatusConflict, "USER_EXISTS"},
		{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, "AUTH_FAILED"},
		{apperrors.ErrNotAuthenticated, http.StatusUnauthorized, "AUTH_REQUIRED"},
		{fmt.Errorf("%w: name", apperrors.ErrMissingField), http.StatusBadRequest, "VALIDATION_FAILED"},
		{fmt.Errorf("%w: kind", apperrors.ErrValidation), http.StatusBadRequest, "VALIDATION_FAILED"},
		{apperrors.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{fmt.Errorf("boom"), http.StatusInternalServerError, "INTERNAL"},
	}

	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			FromError(c, tc.err)

			require.Equal(t, tc.status, w.Code)
			require.Equal(t, tc.code, decode(t, w)["code"])
		})
	}
}
