package testutil

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venta/backend/internal/domain/seller"
	"github.com/venta/backend/internal/domain/shared"
	"github.com/venta/backend/internal/interfaces/http/dto"
)

func testSeller() *seller.Seller {
	return &seller.Seller{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		DNI:               "45678912",
		FirstName:         "Luis",
		LastName:          "Quispe",
		Email:             "luis@correo.pe",
		Category:          seller.CategoryExternal,
		Status:            seller.StatusActive,
	}
}

func TestRecordingHandler(t *testing.T) {
	h := NewRecordingHandler()
	assert.Nil(t, h.EventTypes())
	assert.Equal(t, []string{seller.EventTypeSellerCreated}, NewRecordingHandler(seller.EventTypeSellerCreated).EventTypes())

	s := testSeller()
	require.NoError(t, h.Handle(context.Background(), seller.NewSellerCreatedEvent(s)))
	h.FailWith(errors.New("boom"))
	assert.Error(t, h.Handle(context.Background(), seller.NewSellerDeactivatedEvent(s)))

	assert.Equal(t, []string{seller.EventTypeSellerCreated, seller.EventTypeSellerDeactivated}, h.Types())
	lifecycle := h.Lifecycle()
	require.Len(t, lifecycle, 2)
	assert.Equal(t, seller.KindDeactivated, lifecycle[1].Kind())

	h.Reset()
	assert.Empty(t, h.Handled())
	assert.NoError(t, h.Handle(context.Background(), seller.NewSellerCreatedEvent(s)))
}

func TestDoJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/echo", func(c *gin.Context) {
		var body map[string]any
		_ = c.ShouldBindJSON(&body)
		c.JSON(http.StatusCreated, dto.NewSuccessResponse(body))
	})
	r.GET("/fail", func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(dto.ErrCodeNotFound, "missing"))
	})

	created := DoJSON(t, r, http.MethodPost, "/echo", map[string]string{"name": "Sede Centro"})
	assert.Equal(t, http.StatusCreated, created.Code)
	assert.Empty(t, created.ErrorCode())
	assert.Equal(t, map[string]string{"name": "Sede Centro"}, DataAs[map[string]string](t, created))

	missing := DoJSON(t, r, http.MethodGet, "/fail", nil)
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Equal(t, dto.ErrCodeNotFound, missing.ErrorCode())
}
