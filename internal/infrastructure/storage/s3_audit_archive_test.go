package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	sellerapp "github.com/venta/backend/internal/application/seller"
	"github.com/venta/backend/internal/infrastructure/config"
)

func testRecord() sellerapp.AuditRecord {
	return sellerapp.AuditRecord{
		EventID:    "6f1c9d3e-8a41-4b7e-9a55-0d2f4f0b7c11",
		EventType:  "SellerCreated",
		Kind:       "CREATED",
		SellerID:   42,
		SellerName: "Luis Quispe",
		Category:   "EXTERNAL",
		OccurredAt: time.Date(2025, 7, 14, 16, 45, 0, 0, time.UTC),
		Summary:    "Seller created: Luis Quispe (ID 42, category EXTERNAL)",
	}
}

func TestNewS3AuditArchive_Validation(t *testing.T) {
	t.Run("nil config returns error", func(t *testing.T) {
		_, err := NewS3AuditArchive(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration is required")
	})

	t.Run("missing bucket returns error", func(t *testing.T) {
		_, err := NewS3AuditArchive(&config.AuditConfig{Sink: config.AuditSinkS3})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket is required")
	})

	t.Run("half configured credentials return error", func(t *testing.T) {
		_, err := NewS3AuditArchive(&config.AuditConfig{Bucket: "audit", AccessKeyID: "key"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be set together")
	})

	t.Run("valid config creates archive", func(t *testing.T) {
		archive, err := NewS3AuditArchive(&config.AuditConfig{
			Bucket:          "audit",
			AccessKeyID:     "test-key",
			SecretAccessKey: "test-secret",
			Endpoint:        "localhost:9000",
			UsePathStyle:    true,
		})
		require.NoError(t, err)
		assert.Equal(t, "audit", archive.GetBucket())
	})
}

func TestS3AuditArchive_ObjectKey(t *testing.T) {
	archive, err := NewS3AuditArchive(&config.AuditConfig{
		Bucket:          "audit",
		AccessKeyID:     "test-key",
		SecretAccessKey: "test-secret",
		Prefix:          "/audit/sellers/",
	})
	require.NoError(t, err)

	assert.Equal(t,
		"audit/sellers/2025/07/14/seller-42/6f1c9d3e-8a41-4b7e-9a55-0d2f4f0b7c11.json",
		archive.ObjectKey(testRecord()))
}

func TestS3AuditArchive_Record(t *testing.T) {
	var (
		mu          sync.Mutex
		method      string
		path        string
		contentType string
		body        string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		mu.Lock()
		method = r.Method
		path = r.URL.Path
		contentType = r.Header.Get("Content-Type")
		body = string(data)
		mu.Unlock()
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	archive, err := NewS3AuditArchive(&config.AuditConfig{
		Bucket:          "audit",
		AccessKeyID:     "test-key",
		SecretAccessKey: "test-secret",
		Endpoint:        server.URL,
		UsePathStyle:    true,
		Prefix:          "sellers",
	}, WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)

	require.NoError(t, archive.Record(context.Background(), testRecord()))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "/audit/sellers/2025/07/14/seller-42/6f1c9d3e-8a41-4b7e-9a55-0d2f4f0b7c11.json", path)
	assert.Equal(t, "application/json", contentType)
	assert.Contains(t, body, `"seller_name":"Luis Quispe"`)
}

func TestS3AuditArchive_RecordRequiresEventID(t *testing.T) {
	archive, err := NewS3AuditArchive(&config.AuditConfig{
		Bucket:          "audit",
		AccessKeyID:     "test-key",
		SecretAccessKey: "test-secret",
	})
	require.NoError(t, err)

	record := testRecord()
	record.EventID = ""
	assert.Error(t, archive.Record(context.Background(), record))
}
