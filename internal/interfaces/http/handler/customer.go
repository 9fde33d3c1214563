package handler

import (
	"github.com/gin-gonic/gin"

	appparty "github.com/paylater/backend/internal/application/party"
)

// CustomerHandler exposes customer registry endpoints
type CustomerHandler struct {
	BaseHandler
	customers *appparty.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customers *appparty.CustomerService) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

// Create handles POST /api/v1/customers
func (h *CustomerHandler) Create(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.Unauthorized(c, "Business context required")
		return
	}

	var req appparty.CreateCustomerRequest
	if !h.BindJSON(c, &req) {
		return
	}

	customer, err := h.customers.Create(c.Request.Context(), businessID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, customer)
}

// Update handles PUT /api/v1/customers/:id
func (h *CustomerHandler) Update(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.Unauthorized(c, "Business context required")
		return
	}
	customerID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	var req appparty.UpdateCustomerRequest
	if !h.BindJSON(c, &req) {
		return
	}

	customer, err := h.customers.Update(c.Request.Context(), businessID, customerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// Get handles GET /api/v1/customers/:id
func (h *CustomerHandler) Get(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.Unauthorized(c, "Business context required")
		return
	}
	customerID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	customer, err := h.customers.Get(c.Request.Context(), businessID, customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

type listCustomersQuery struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Search   string `form:"search"`
}

// List handles GET /api/v1/customers
func (h *CustomerHandler) List(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.Unauthorized(c, "Business context required")
		return
	}

	var q listCustomersQuery
	if !h.BindQuery(c, &q) {
		return
	}

	page, err := h.customers.List(c.Request.Context(), businessID, q.Page, q.PageSize, q.Search)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}
