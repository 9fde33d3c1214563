package handler

import (
	"github.com/gin-gonic/gin"

	appparty "github.com/paylater/backend/internal/application/party"
)

// StaffHandler exposes staff registry endpoints
type StaffHandler struct {
	BaseHandler
	staff *appparty.StaffService
}

// NewStaffHandler creates a new staff handler
func NewStaffHandler(staff *appparty.StaffService) *StaffHandler {
	return &StaffHandler{staff: staff}
}

// Create handles POST /api/v1/staff
func (h *StaffHandler) Create(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.Unauthorized(c, "Business context required")
		return
	}

	var req appparty.CreateStaffMemberRequest
	if !h.BindJSON(c, &req) {
		return
	}

	member, err := h.staff.Create(c.Request.Context(), businessID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, member)
}

// Update handles PUT /api/v1/staff/:id
func (h *StaffHandler) Update(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.Unauthorized(c, "Business context required")
		return
	}
	staffID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	var req appparty.UpdateStaffMemberRequest
	if !h.BindJSON(c, &req) {
		return
	}

	member, err := h.staff.Update(c.Request.Context(), businessID, staffID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, member)
}

type setStaffActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// SetActive handles PATCH /api/v1/staff/:id/active
func (h *StaffHandler) SetActive(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.Unauthorized(c, "Business context required")
		return
	}
	staffID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	var req setStaffActiveRequest
	if !h.BindJSON(c, &req) {
		return
	}

	member, err := h.staff.SetActive(c.Request.Context(), businessID, staffID, *req.Active)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, member)
}

// Get handles GET /api/v1/staff/:id
func (h *StaffHandler) Get(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.Unauthorized(c, "Business context required")
		return
	}
	staffID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	member, err := h.staff.Get(c.Request.Context(), businessID, staffID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, member)
}

type pageQuery struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

// List handles GET /api/v1/staff
func (h *StaffHandler) List(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.Unauthorized(c, "Business context required")
		return
	}

	var q pageQuery
	if !h.BindQuery(c, &q) {
		return
	}

	page, err := h.staff.List(c.Request.Context(), businessID, q.Page, q.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}
