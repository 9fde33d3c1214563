package handler

import (
	"github.com/gin-gonic/gin"

	appincentive "github.com/paylater/backend/internal/application/incentive"
)

// BonusRuleHandler exposes bonus rule management endpoints
type BonusRuleHandler struct {
	BaseHandler
	rules *appincentive.RuleService
}

// NewBonusRuleHandler creates a new bonus rule handler
func NewBonusRuleHandler(rules *appincentive.RuleService) *BonusRuleHandler {
	return &BonusRuleHandler{rules: rules}
}

// Create handles POST /api/v1/bonus-rules
func (h *BonusRuleHandler) Create(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.Unauthorized(c, "Business context required")
		return
	}
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "User context required")
		return
	}

	var req appincentive.CreateBonusRuleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	rule, err := h.rules.Create(c.Request.Context(), businessID, actorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, rule)
}

// Update handles PUT /api/v1/bonus-rules/:id
func (h *BonusRuleHandler) Update(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.Unauthorized(c, "Business context required")
		return
	}
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "User context required")
		return
	}
	ruleID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	var req appincentive.UpdateBonusRuleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	rule, err := h.rules.Update(c.Request.Context(), businessID, actorID, ruleID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rule)
}

type setRuleActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// SetActive handles PATCH /api/v1/bonus-rules/:id/active
func (h *BonusRuleHandler) SetActive(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.Unauthorized(c, "Business context required")
		return
	}
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "User context required")
		return
	}
	ruleID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	var req setRuleActiveRequest
	if !h.BindJSON(c, &req) {
		return
	}

	rule, err := h.rules.SetActive(c.Request.Context(), businessID, actorID, ruleID, *req.Active)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rule)
}

type deleteRuleResponse struct {
	Deleted bool `json:"deleted"`
	Retired bool `json:"retired"`
}

// Delete handles DELETE /api/v1/bonus-rules/:id.
// Rules that already awarded bonuses are retired instead of removed so
// historical records keep a valid rule reference.
func (h *BonusRuleHandler) Delete(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.Unauthorized(c, "Business context required")
		return
	}
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "User context required")
		return
	}
	ruleID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	retired, err := h.rules.Delete(c.Request.Context(), businessID, actorID, ruleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if retired {
		h.Success(c, deleteRuleResponse{Deleted: false, Retired: true})
		return
	}
	h.Success(c, deleteRuleResponse{Deleted: true, Retired: false})
}

// Get handles GET /api/v1/bonus-rules/:id
func (h *BonusRuleHandler) Get(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.Unauthorized(c, "Business context required")
		return
	}
	ruleID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	rule, err := h.rules.Get(c.Request.Context(), businessID, ruleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rule)
}

// List handles GET /api/v1/bonus-rules
func (h *BonusRuleHandler) List(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.Unauthorized(c, "Business context required")
		return
	}

	var req appincentive.ListBonusRulesRequest
	if !h.BindQuery(c, &req) {
		return
	}

	page, err := h.rules.List(c.Request.Context(), businessID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}
