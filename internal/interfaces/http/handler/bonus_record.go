package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appincentive "github.com/paylater/backend/internal/application/incentive"
)

// BonusRecordHandler exposes bonus record review and payout endpoints
type BonusRecordHandler struct {
	BaseHandler
	records *appincentive.RecordService
	targets *appincentive.TargetService
}

// NewBonusRecordHandler creates a new bonus record handler
func NewBonusRecordHandler(records *appincentive.RecordService, targets *appincentive.TargetService) *BonusRecordHandler {
	return &BonusRecordHandler{records: records, targets: targets}
}

// Get handles GET /api/v1/bonus-records/:id
func (h *BonusRecordHandler) Get(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.Unauthorized(c, "Business context required")
		return
	}
	recordID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	record, err := h.records.Get(c.Request.Context(), businessID, recordID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, record)
}

// List handles GET /api/v1/bonus-records
func (h *BonusRecordHandler) List(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.Unauthorized(c, "Business context required")
		return
	}

	var req appincentive.ListBonusRecordsRequest
	if !h.BindQuery(c, &req) {
		return
	}

	page, err := h.records.List(c.Request.Context(), businessID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Approve handles POST /api/v1/bonus-records/approve
func (h *BonusRecordHandler) Approve(c *gin.Context) {
	h.bulkAction(c, h.records.Approve)
}

// Pay handles POST /api/v1/bonus-records/pay
func (h *BonusRecordHandler) Pay(c *gin.Context) {
	h.bulkAction(c, h.records.Pay)
}

// Reject handles POST /api/v1/bonus-records/reject
func (h *BonusRecordHandler) Reject(c *gin.Context) {
	h.bulkAction(c, h.records.Reject)
}

func (h *BonusRecordHandler) bulkAction(
	c *gin.Context,
	action func(ctx context.Context, businessID, actorID uuid.UUID, req appincentive.BulkRecordActionRequest) (*appincentive.BulkRecordActionResponse, error),
) {
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

	var req appincentive.BulkRecordActionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := action(c.Request.Context(), businessID, actorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// EvaluateTargets handles POST /api/v1/bonus-records/evaluate-targets.
// It runs target rule evaluation for the current period on demand, in
// addition to the nightly scheduled run.
func (h *BonusRecordHandler) EvaluateTargets(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.Unauthorized(c, "Business context required")
		return
	}

	resp, err := h.targets.EvaluateTargets(c.Request.Context(), businessID, time.Now().UTC())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
