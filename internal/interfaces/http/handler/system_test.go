package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venta/backend/internal/interfaces/http/dto"
)

func serveSystem(t *testing.T, h *SystemHandler, path string) (*httptest.ResponseRecorder, dto.Response) {
	t.Helper()
	r := gin.New()
	r.GET("/health/live", h.Ping)
	r.GET("/health/ready", h.Ready)
	r.GET("/system/info", h.GetSystemInfo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestSystemHandler_Ready(t *testing.T) {
	ok := HealthCheck{Name: "database", Check: func(context.Context) error { return nil }}
	down := HealthCheck{Name: "redis", Check: func(context.Context) error { return errors.New("connection refused") }}

	t.Run("all checks pass", func(t *testing.T) {
		w, resp := serveSystem(t, NewSystemHandler("venta", "1.0.0", ok), "/health/ready")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, resp.Success)
		assert.Equal(t, map[string]any{"database": "ok"}, resp.Data)
	})

	t.Run("one check fails", func(t *testing.T) {
		w, resp := serveSystem(t, NewSystemHandler("venta", "1.0.0", ok, down), "/health/ready")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.False(t, resp.Success)
		assert.Equal(t, map[string]any{"database": "ok", "redis": "connection refused"}, resp.Data)
	})
}

func TestSystemHandler_PingAndInfo(t *testing.T) {
	h := NewSystemHandler("venta", "2.3.1")

	w, resp := serveSystem(t, h, "/health/live")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", resp.Data.(map[string]any)["message"])

	_, resp = serveSystem(t, h, "/system/info")
	info := resp.Data.(map[string]any)
	assert.Equal(t, "venta", info["name"])
	assert.Equal(t, "2.3.1", info["version"])
}
