package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sellerapp "github.com/venta/backend/internal/application/seller"
	"github.com/venta/backend/internal/interfaces/http/dto"
)

func TestBranchHandler_CreateListGet(t *testing.T) {
	f := newAPIFixture(t)

	w, resp := f.do(t, http.MethodPost, "/api/v1/branches", gin.H{
		"name":          "Almacén Callao",
		"address":       "Av. Argentina 2500",
		"type":          "WAREHOUSE_AFFILIATED",
		"capacity":      40,
		"warehouse_ref": "WH-07",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := dataAs[sellerapp.BranchResponse](t, resp)
	assert.Equal(t, "WH-07", created.WarehouseRef)
	assert.True(t, created.Active)

	_, _ = f.do(t, http.MethodPost, "/api/v1/branches", gin.H{
		"name": "Sede Centro", "type": "STORE", "capacity": 10,
	})

	w, resp = f.do(t, http.MethodGet, "/api/v1/branches", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := dataAs[[]sellerapp.BranchResponse](t, resp)
	require.Len(t, list, 2)
	assert.Equal(t, "Almacén Callao", list[0].Name)
	assert.Equal(t, 2, resp.Meta.Total)

	w, resp = f.do(t, http.MethodGet, "/api/v1/branches/2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Sede Centro", dataAs[sellerapp.BranchResponse](t, resp).Name)

	w, resp = f.do(t, http.MethodGet, "/api/v1/branches/9", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
}

func TestBranchHandler_CreateRejected(t *testing.T) {
	f := newAPIFixture(t)
	f.branch(t, "Sede Centro")

	tests := []struct {
		name string
		body gin.H
		code string
	}{
		{"duplicate name", gin.H{"name": "Sede Centro", "type": "STORE", "capacity": 5}, dto.ErrCodeDuplicateBranch},
		{"unknown type", gin.H{"name": "Sede Sur", "type": "KIOSK", "capacity": 5}, dto.ErrCodeValidation},
		{"zero capacity", gin.H{"name": "Sede Sur", "type": "STORE", "capacity": 0}, dto.ErrCodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := f.do(t, http.MethodPost, "/api/v1/branches", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestBranchHandler_DeactivateBlocksAssignment(t *testing.T) {
	f := newAPIFixture(t)
	centro := f.branch(t, "Sede Centro")
	path := "/api/v1/branches/" + itoa(centro.ID)

	w, resp := f.do(t, http.MethodPost, path+"/deactivate", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.False(t, dataAs[sellerapp.BranchResponse](t, resp).Active)

	w, resp = f.do(t, http.MethodPost, path+"/deactivate", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeInvalidState, resp.Error.Code)

	w, resp = f.do(t, http.MethodPost, "/api/v1/sellers", externalBody(centro.ID))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeInactiveBranch, resp.Error.Code)
	assert.Empty(t, f.events.received())

	w, resp = f.do(t, http.MethodPost, path+"/activate", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, dataAs[sellerapp.BranchResponse](t, resp).Active)

	w, _ = f.do(t, http.MethodPost, "/api/v1/sellers", externalBody(centro.ID))
	assert.Equal(t, http.StatusCreated, w.Code)

	w, resp = f.do(t, http.MethodPost, "/api/v1/branches/77/activate", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
}
