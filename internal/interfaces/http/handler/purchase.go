package handler

import (
	"github.com/gin-gonic/gin"

	appcredit "github.com/paylater/backend/internal/application/credit"
)

// PurchaseHandler exposes BNPL purchase endpoints
type PurchaseHandler struct {
	BaseHandler
	purchases *appcredit.PurchaseService
}

// NewPurchaseHandler creates a new purchase handler
func NewPurchaseHandler(purchases *appcredit.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchases: purchases}
}

// Create handles POST /api/v1/purchases
func (h *PurchaseHandler) Create(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.Unauthorized(c, "Business context required")
		return
	}

	var req appcredit.CreatePurchaseRequest
	if !h.BindJSON(c, &req) {
		return
	}

	purchase, err := h.purchases.Create(c.Request.Context(), businessID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, purchase)
}

// Get handles GET /api/v1/purchases/:id
func (h *PurchaseHandler) Get(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.Unauthorized(c, "Business context required")
		return
	}
	purchaseID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	purchase, err := h.purchases.Get(c.Request.Context(), businessID, purchaseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, purchase)
}

// List handles GET /api/v1/purchases
func (h *PurchaseHandler) List(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.Unauthorized(c, "Business context required")
		return
	}

	var req appcredit.ListPurchasesRequest
	if !h.BindQuery(c, &req) {
		return
	}

	page, err := h.purchases.List(c.Request.Context(), businessID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// MarkDefaulted handles POST /api/v1/purchases/:id/default
func (h *PurchaseHandler) MarkDefaulted(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.Unauthorized(c, "Business context required")
		return
	}
	purchaseID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	purchase, err := h.purchases.MarkDefaulted(c.Request.Context(), businessID, purchaseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, purchase)
}
