package handler

import (
	"github.com/gin-gonic/gin"

	appparty "github.com/paylater/backend/internal/application/party"
)

// ShopHandler exposes shop registry endpoints
type ShopHandler struct {
	BaseHandler
	shops *appparty.ShopService
}

// NewShopHandler creates a new shop handler
func NewShopHandler(shops *appparty.ShopService) *ShopHandler {
	return &ShopHandler{shops: shops}
}

// Create handles POST /api/v1/shops
func (h *ShopHandler) Create(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.Unauthorized(c, "Business context required")
		return
	}

	var req appparty.CreateShopRequest
	if !h.BindJSON(c, &req) {
		return
	}

	shop, err := h.shops.Create(c.Request.Context(), businessID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, shop)
}

// Get handles GET /api/v1/shops/:id
func (h *ShopHandler) Get(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.Unauthorized(c, "Business context required")
		return
	}
	shopID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	shop, err := h.shops.Get(c.Request.Context(), businessID, shopID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shop)
}

// List handles GET /api/v1/shops
func (h *ShopHandler) List(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.Unauthorized(c, "Business context required")
		return
	}

	var q pageQuery
	if !h.BindQuery(c, &q) {
		return
	}

	page, err := h.shops.List(c.Request.Context(), businessID, q.Page, q.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}
