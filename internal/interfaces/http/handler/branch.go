package handler

import (
	"github.com/gin-gonic/gin"

	sellerapp "github.com/venta/backend/internal/application/seller"
)

// BranchHandler handles branch API endpoints
type BranchHandler struct {
	BaseHandler
	sellerService *sellerapp.SellerService
}

// NewBranchHandler creates a new BranchHandler
func NewBranchHandler(sellerService *sellerapp.SellerService) *BranchHandler {
	return &BranchHandler{sellerService: sellerService}
}

// Create adds a branch.
// POST /branches
func (h *BranchHandler) Create(c *gin.Context) {
	var req sellerapp.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	resp, err := h.sellerService.CreateBranch(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List returns all branches.
// GET /branches
func (h *BranchHandler) List(c *gin.Context) {
	branches, err := h.sellerService.ListBranches(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, branches, len(branches))
}

// Deactivate closes a branch for new sellers.
// POST /branches/:id/deactivate
func (h *BranchHandler) Deactivate(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	resp, err := h.sellerService.DeactivateBranch(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Activate reopens a branch.
// POST /branches/:id/activate
func (h *BranchHandler) Activate(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	resp, err := h.sellerService.ActivateBranch(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetByID returns one branch.
// GET /branches/:id
func (h *BranchHandler) GetByID(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	resp, err := h.sellerService.GetBranch(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
