package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	sellerapp "github.com/venta/backend/internal/application/seller"
	"github.com/venta/backend/internal/domain/seller"
	"github.com/venta/backend/internal/infrastructure/directory"
	"github.com/venta/backend/internal/infrastructure/event"
	"github.com/venta/backend/internal/interfaces/http/dto"
	"github.com/venta/backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type apiFixture struct {
	router   *gin.Engine
	sellers  *memorySellers
	branches *memoryBranches
	events   *recordingHandler
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	sellers := newMemorySellers()
	branches := newMemoryBranches()

	svc := sellerapp.NewSellerService(sellers, branches, directory.NewSimulatedDirectory(zap.NewNop()), nil, zap.NewNop())
	svc.SetClock(func() time.Time { return time.Date(2025, 7, 14, 10, 0, 0, 0, time.UTC) })

	bus := event.NewInMemoryEventBus(zap.NewNop())
	events := &recordingHandler{}
	bus.Subscribe(events)
	svc.SetEventPublisher(bus)

	sellerHandler := NewSellerHandler(svc)
	branchHandler := NewBranchHandler(svc)

	r := gin.New()
	r.Use(middleware.RequestID())
	api := r.Group("/api/v1")
	api.POST("/sellers", sellerHandler.Register)
	api.GET("/sellers", sellerHandler.List)
	api.GET("/sellers/:id", sellerHandler.GetByID)
	api.PATCH("/sellers/:id", sellerHandler.Update)
	api.POST("/sellers/:id/deactivate", sellerHandler.Deactivate)
	api.POST("/sellers/:id/reactivate", sellerHandler.Reactivate)
	api.POST("/branches", branchHandler.Create)
	api.GET("/branches", branchHandler.List)
	api.GET("/branches/:id", branchHandler.GetByID)
	api.POST("/branches/:id/deactivate", branchHandler.Deactivate)
	api.POST("/branches/:id/activate", branchHandler.Activate)

	return &apiFixture{router: r, sellers: sellers, branches: branches, events: events}
}

func (f *apiFixture) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, dto.Response) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w, resp
}

func (f *apiFixture) branch(t *testing.T, name string) *seller.Branch {
	t.Helper()
	b, err := seller.NewBranch(name, "Av. Arequipa 1000", seller.BranchTypeStore, 20)
	require.NoError(t, err)
	require.NoError(t, f.branches.Save(context.Background(), b))
	return b
}

func dataAs[T any](t *testing.T, resp dto.Response) T {
	t.Helper()
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func externalBody(branchID int64) gin.H {
	return gin.H{
		"dni":        "45678912",
		"category":   "EXTERNAL",
		"branch_id":  branchID,
		"first_name": "Luis",
		"last_name":  "Quispe",
		"email":      "luis.quispe@correo.pe",
		"phone":      "955111222",
		"tax_id":     "20123456789",
	}
}

func TestSellerHandler_RegisterExternal(t *testing.T) {
	f := newAPIFixture(t)
	b := f.branch(t, "Sede Centro")

	w, resp := f.do(t, http.MethodPost, "/api/v1/sellers", externalBody(b.ID))

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := dataAs[sellerapp.SellerResponse](t, resp)
	assert.Equal(t, "Luis Quispe", created.FullName)
	assert.Equal(t, "EXTERNAL", created.Category)
	assert.Equal(t, "ACTIVE", created.Status)
	assert.Equal(t, "Sede Centro", created.BranchName)
	assert.Equal(t, "2025-07-14", created.RegisteredOn)
	assert.Equal(t, []string{seller.EventTypeSellerCreated}, f.events.received())
}

func TestSellerHandler_RegisterInternalFromDirectory(t *testing.T) {
	f := newAPIFixture(t)
	b := f.branch(t, "Sede Norte")

	w, resp := f.do(t, http.MethodPost, "/api/v1/sellers", gin.H{
		"dni": "12345678", "category": "INTERNAL", "branch_id": b.ID,
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := dataAs[sellerapp.SellerResponse](t, resp)
	assert.Equal(t, "juan.perez@empresa.com", created.Email)
	assert.Equal(t, int64(1001), created.EmployeeRef)
}

func TestSellerHandler_RegisterErrors(t *testing.T) {
	f := newAPIFixture(t)
	b := f.branch(t, "Sede Centro")

	_, _ = f.do(t, http.MethodPost, "/api/v1/sellers", externalBody(b.ID))

	tests := []struct {
		name   string
		body   gin.H
		status int
		code   string
	}{
		{"unknown employee", gin.H{"dni": "99999999", "category": "INTERNAL", "branch_id": b.ID},
			http.StatusNotFound, dto.ErrCodeEmployeeNotFound},
		{"duplicate document", externalBody(b.ID),
			http.StatusBadRequest, dto.ErrCodeDuplicateSeller},
		{"malformed dni", gin.H{"dni": "1234", "category": "INTERNAL", "branch_id": b.ID},
			http.StatusBadRequest, dto.ErrCodeValidation},
		{"missing tax id", gin.H{"dni": "11112222", "category": "EXTERNAL", "branch_id": b.ID,
			"first_name": "Ana", "last_name": "Rojas", "email": "ana@correo.pe"},
			http.StatusBadRequest, "MISSING_TAX_ID"},
		{"unknown branch", gin.H{"dni": "87654321", "category": "INTERNAL", "branch_id": 404},
			http.StatusNotFound, dto.ErrCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := f.do(t, http.MethodPost, "/api/v1/sellers", tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.NotEmpty(t, resp.Error.RequestID)
		})
	}

	assert.Equal(t, []string{seller.EventTypeSellerCreated}, f.events.received())
}

func TestSellerHandler_UpdateAndStatus(t *testing.T) {
	f := newAPIFixture(t)
	centro := f.branch(t, "Sede Centro")
	norte := f.branch(t, "Sede Norte")

	_, resp := f.do(t, http.MethodPost, "/api/v1/sellers", externalBody(centro.ID))
	id := dataAs[sellerapp.SellerResponse](t, resp).ID

	w, resp := f.do(t, http.MethodPatch, "/api/v1/sellers/"+itoa(id), gin.H{
		"last_name": "Quispe Mamani",
		"branch_id": norte.ID,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := dataAs[sellerapp.SellerResponse](t, resp)
	assert.Equal(t, "Quispe Mamani", updated.LastName)
	assert.Equal(t, "Sede Norte", updated.BranchName)

	w, _ = f.do(t, http.MethodPost, "/api/v1/sellers/"+itoa(id)+"/deactivate", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, resp = f.do(t, http.MethodPost, "/api/v1/sellers/"+itoa(id)+"/deactivate", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeInvalidState, resp.Error.Code)

	w, resp = f.do(t, http.MethodPost, "/api/v1/sellers/"+itoa(id)+"/reactivate", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ACTIVE", dataAs[sellerapp.SellerResponse](t, resp).Status)

	assert.Equal(t, []string{
		seller.EventTypeSellerCreated,
		seller.EventTypeSellerModified,
		seller.EventTypeSellerBranchChanged,
		seller.EventTypeSellerDeactivated,
		seller.EventTypeSellerReactivated,
	}, f.events.received())
}

func TestSellerHandler_GetAndList(t *testing.T) {
	f := newAPIFixture(t)
	b := f.branch(t, "Sede Centro")
	_, _ = f.do(t, http.MethodPost, "/api/v1/sellers", externalBody(b.ID))
	_, _ = f.do(t, http.MethodPost, "/api/v1/sellers", gin.H{"dni": "12345678", "category": "INTERNAL", "branch_id": b.ID})

	w, resp := f.do(t, http.MethodGet, "/api/v1/sellers/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "45678912", dataAs[sellerapp.SellerResponse](t, resp).DNI)

	w, resp = f.do(t, http.MethodGet, "/api/v1/sellers/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)

	w, _ = f.do(t, http.MethodGet, "/api/v1/sellers/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp = f.do(t, http.MethodGet, "/api/v1/sellers?category=INTERNAL", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := dataAs[[]sellerapp.SellerResponse](t, resp)
	require.Len(t, list, 1)
	assert.Equal(t, "12345678", list[0].DNI)
	assert.Equal(t, 1, resp.Meta.Total)

	_, resp = f.do(t, http.MethodGet, "/api/v1/sellers?dni=678", nil)
	assert.Len(t, dataAs[[]sellerapp.SellerResponse](t, resp), 2)

	w, _ = f.do(t, http.MethodGet, "/api/v1/sellers?status=RETIRED", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
