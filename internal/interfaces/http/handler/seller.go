package handler

import (
	"github.com/gin-gonic/gin"

	sellerapp "github.com/venta/backend/internal/application/seller"
	"github.com/venta/backend/internal/interfaces/http/middleware"
)

// SellerHandler handles seller API endpoints
type SellerHandler struct {
	BaseHandler
	sellerService *sellerapp.SellerService
}

// NewSellerHandler creates a new SellerHandler and installs the custom
// request validators it binds with.
func NewSellerHandler(sellerService *sellerapp.SellerService) *SellerHandler {
	middleware.SetupValidator()
	return &SellerHandler{sellerService: sellerService}
}

// Register onboards a seller.
// POST /sellers
func (h *SellerHandler) Register(c *gin.Context) {
	var req sellerapp.RegisterSellerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.sellerService.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Update applies a partial update.
// PATCH /sellers/:id
func (h *SellerHandler) Update(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req sellerapp.UpdateSellerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.sellerService.Edit(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Deactivate marks a seller inactive.
// POST /sellers/:id/deactivate
func (h *SellerHandler) Deactivate(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	resp, err := h.sellerService.Deactivate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Reactivate marks an inactive seller active again.
// POST /sellers/:id/reactivate
func (h *SellerHandler) Reactivate(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	resp, err := h.sellerService.Reactivate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetByID returns one seller.
// GET /sellers/:id
func (h *SellerHandler) GetByID(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	resp, err := h.sellerService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns sellers matching the query filter.
// GET /sellers?category=&status=&branch_id=&dni=
func (h *SellerHandler) List(c *gin.Context) {
	var filter sellerapp.SellerListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	sellers, err := h.sellerService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, sellers, len(sellers))
}
