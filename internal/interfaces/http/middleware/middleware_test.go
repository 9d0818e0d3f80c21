package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"

	"github.com/venta/backend/internal/interfaces/http/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	t.Run("generates when missing", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		id := w.Header().Get(RequestIDHeader)
		assert.Len(t, id, 36)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("reuses client id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(RequestIDHeader, "req-42")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))
	})

	t.Run("replaces oversized id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(RequestIDHeader, strings.Repeat("x", maxRequestIDLength+1))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Len(t, w.Header().Get(RequestIDHeader), 36)
	})
}

func TestSecure(t *testing.T) {
	r := gin.New()
	r.Use(Secure())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.Use(BodyLimit(16))
	r.POST("/sellers", func(c *gin.Context) { c.Status(http.StatusCreated) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/sellers", strings.NewReader(`{"dni":"12345678","category":"EXTERNAL"}`)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.False(t, decodeResponse(t, w).Success)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/sellers", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusCreated, w.Code)
}

type dniRequest struct {
	DNI      string `json:"dni" binding:"required,dni"`
	Category string `json:"category" binding:"required,oneof=INTERNAL EXTERNAL"`
}

func bindRouter() *gin.Engine {
	SetupValidator()
	r := gin.New()
	r.Use(RequestID())
	r.POST("/bind", func(c *gin.Context) {
		var req dniRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleBindError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})
	return r
}

func TestHandleBindError_ValidationDetails(t *testing.T) {
	w := httptest.NewRecorder()
	bindRouter().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/bind",
		strings.NewReader(`{"dni":"12A4","category":"PARTNER"}`)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	assert.NotEmpty(t, resp.Error.RequestID)
	assert.ElementsMatch(t, []dto.ValidationDetail{
		{Field: "dni", Message: "Must be an 8-digit DNI"},
		{Field: "category", Message: "Must be one of: INTERNAL EXTERNAL"},
	}, resp.Error.Details)
}

func TestHandleBindError_MalformedJSON(t *testing.T) {
	w := httptest.NewRecorder()
	bindRouter().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/bind", strings.NewReader(`{"dni":`)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeInvalidJSON, decodeResponse(t, w).Error.Code)
}

func TestHandleBindError_ValidDNIPasses(t *testing.T) {
	w := httptest.NewRecorder()
	bindRouter().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/bind",
		strings.NewReader(`{"dni":"12345678","category":"INTERNAL"}`)))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSpanEnricher(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	r := gin.New()
	r.Use(RequestID())
	r.Use(func(c *gin.Context) {
		ctx, span := provider.Tracer("test").Start(c.Request.Context(), c.Request.URL.Path)
		defer span.End()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})
	r.Use(SpanEnricher())
	r.GET("/sellers/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/sellers/99", nil)
	req.Header.Set(RequestIDHeader, "req-7")
	r.ServeHTTP(httptest.NewRecorder(), req)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, codes.Unset, spans[1].Status().Code)

	var requestID string
	for _, kv := range spans[0].Attributes() {
		if kv.Key == "request_id" {
			requestID = kv.Value.AsString()
		}
	}
	assert.Equal(t, "req-7", requestID)
}

func TestTracing_Disabled(t *testing.T) {
	r := gin.New()
	r.Use(Tracing("venta-backend", false))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHTTPMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	r := gin.New()
	r.Use(HTTPMetrics(provider.Meter("test"), zap.NewNop()))
	r.GET("/sellers/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/sellers/1", "/sellers/2", "/nowhere"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	var total metricdata.Sum[int64]
	for _, m := range rm.ScopeMetrics[0].Metrics {
		if m.Name == "http_server_request_total" {
			total = m.Data.(metricdata.Sum[int64])
		}
	}

	byRoute := map[string]int64{}
	for _, dp := range total.DataPoints {
		route, _ := dp.Attributes.Value("http.route")
		group, _ := dp.Attributes.Value("http.status_group")
		byRoute[route.AsString()+" "+group.AsString()] = dp.Value
	}
	assert.Equal(t, map[string]int64{
		"/sellers/:id 2xx": 2,
		"unmatched 4xx":    1,
	}, byRoute)
}

func TestStatusGroup(t *testing.T) {
	assert.Equal(t, "2xx", StatusGroup(201))
	assert.Equal(t, "3xx", StatusGroup(304))
	assert.Equal(t, "4xx", StatusGroup(404))
	assert.Equal(t, "5xx", StatusGroup(503))
	assert.Equal(t, "other", StatusGroup(100))
}
