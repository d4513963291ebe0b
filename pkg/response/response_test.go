package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, h gin.HandlerFunc) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", func(c *gin.Context) { c.Set("request_id", "rid-1") }, h, func(c *gin.Context) {
		c.Header("X-Reached", "yes")
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return w, out
}

func TestSuccess(t *testing.T) {
	w, out := run(t, func(c *gin.Context) { Success(c, http.StatusCreated, "ok", Fields{"token": "t"}) })
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, map[string]any{"message": "ok", "request_id": "rid-1", "token": "t"}, out)
}

func TestError(t *testing.T) {
	w, out := run(t, func(c *gin.Context) { Error(c, 0, "bad", map[string]string{"email": "is required"}) })
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "bad", out["message"])
	assert.Equal(t, map[string]any{"email": "is required"}, out["errors"])
}

func TestAbort(t *testing.T) {
	w, out := run(t, func(c *gin.Context) { Abort(c, http.StatusUnauthorized, "nope") })
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "nope", out["message"])
	assert.Empty(t, w.Header().Get("X-Reached"))
}
