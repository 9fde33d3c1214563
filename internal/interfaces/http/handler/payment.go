package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	appcredit "github.com/paylater/backend/internal/application/credit"
)

// PaymentHandler exposes installment payment endpoints. The optional
// guard deduplicates retried POSTs by Idempotency-Key.
type PaymentHandler struct {
	BaseHandler
	payments *appcredit.PaymentService
	guard    gin.HandlerFunc
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(payments *appcredit.PaymentService, guard gin.HandlerFunc) *PaymentHandler {
	return &PaymentHandler{payments: payments, guard: guard}
}

// Record handles POST /api/v1/payments
func (h *PaymentHandler) Record(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.Unauthorized(c, "Business context required")
		return
	}

	var req appcredit.RecordPaymentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	payment, err := h.payments.Record(c.Request.Context(), businessID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, payment)
}

type confirmPaymentRequest struct {
	NextDueDate *time.Time `json:"next_due_date"`
}

// Confirm handles POST /api/v1/payments/:id/confirm
func (h *PaymentHandler) Confirm(c *gin.Context) {
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
	paymentID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	// The body is optional; confirmation without a next due date settles
	// or leaves the schedule untouched.
	var req confirmPaymentRequest
	if c.Request.ContentLength > 0 {
		if !h.BindJSON(c, &req) {
			return
		}
	}

	payment, err := h.payments.Confirm(c.Request.Context(), businessID, paymentID, actorID, req.NextDueDate)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payment)
}

// Void handles POST /api/v1/payments/:id/void
func (h *PaymentHandler) Void(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.Unauthorized(c, "Business context required")
		return
	}
	paymentID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	payment, err := h.payments.Void(c.Request.Context(), businessID, paymentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payment)
}

// Get handles GET /api/v1/payments/:id
func (h *PaymentHandler) Get(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.Unauthorized(c, "Business context required")
		return
	}
	paymentID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	payment, err := h.payments.Get(c.Request.Context(), businessID, paymentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payment)
}

// List handles GET /api/v1/payments
func (h *PaymentHandler) List(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.Unauthorized(c, "Business context required")
		return
	}

	var req appcredit.ListPaymentsRequest
	if !h.BindQuery(c, &req) {
		return
	}

	page, err := h.payments.List(c.Request.Context(), businessID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}
