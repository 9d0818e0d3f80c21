package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/venta/backend/internal/interfaces/http/dto"
)

// APIResponse is a recorded HTTP response with its decoded envelope
type APIResponse struct {
	Code     int
	Envelope dto.Response
	Body     []byte
}

// DoJSON sends body (if non-nil) as JSON to handler and decodes the envelope
func DoJSON(t *testing.T, handler http.Handler, method, path string, body any) APIResponse {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	resp := APIResponse{Code: w.Code, Body: w.Body.Bytes()}
	if len(resp.Body) > 0 {
		require.NoError(t, json.Unmarshal(resp.Body, &resp.Envelope), "body: %s", resp.Body)
	}
	return resp
}

// DataAs re-decodes the envelope data into T
func DataAs[T any](t *testing.T, resp APIResponse) T {
	t.Helper()
	raw, err := json.Marshal(resp.Envelope.Data)
	require.NoError(t, err)
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

// ErrorCode returns the envelope error code, or "" for a success response
func (r APIResponse) ErrorCode() string {
	if r.Envelope.Error == nil {
		return ""
	}
	return r.Envelope.Error.Code
}
