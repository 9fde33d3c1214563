package credit

import (
	"time"

	"github.com/google/uuid"
	"github.com/paylater/backend/internal/domain/credit"
	"github.com/shopspring/decimal"
)

// ==================== Purchase DTOs ====================

// CreatePurchaseRequest represents a request to book a BNPL sale
type CreatePurchaseRequest struct {
	CustomerID          uuid.UUID       `json:"customer_id" binding:"required"`
	ShopID              *uuid.UUID      `json:"shop_id"`
	SoldByStaffID       *uuid.UUID      `json:"sold_by_staff_id"`
	AssignedCollectorID *uuid.UUID      `json:"assigned_collector_id"`
	TotalAmount         decimal.Decimal `json:"total_amount" binding:"required"`
	NextDueDate         *time.Time      `json:"next_due_date"`
	Remark              string          `json:"remark"`
}

// ListPurchasesRequest carries the query filters for purchase listings
type ListPurchasesRequest struct {
	Page       int     `form:"page"`
	PageSize   int     `form:"page_size"`
	CustomerID *string `form:"customer_id"`
	ShopID     *string `form:"shop_id"`
	Status     *string `form:"status"`
}

// PurchaseResponse represents a purchase in API responses
type PurchaseResponse struct {
	ID                  uuid.UUID       `json:"id"`
	PurchaseNumber      string          `json:"purchase_number"`
	CustomerID          uuid.UUID       `json:"customer_id"`
	CustomerName        string          `json:"customer_name"`
	ShopID              *uuid.UUID      `json:"shop_id,omitempty"`
	SoldByStaffID       *uuid.UUID      `json:"sold_by_staff_id,omitempty"`
	AssignedCollectorID *uuid.UUID      `json:"assigned_collector_id,omitempty"`
	TotalAmount         decimal.Decimal `json:"total_amount"`
	PaidAmount          decimal.Decimal `json:"paid_amount"`
	Outstanding         decimal.Decimal `json:"outstanding"`
	Status              string          `json:"status"`
	NextDueDate         *time.Time      `json:"next_due_date,omitempty"`
	SettledAt           *time.Time      `json:"settled_at,omitempty"`
	DefaultedAt         *time.Time      `json:"defaulted_at,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
}

// ToPurchaseResponse converts a domain purchase to its response shape
func ToPurchaseResponse(p *credit.Purchase) PurchaseResponse {
	return PurchaseResponse{
		ID:                  p.ID,
		PurchaseNumber:      p.PurchaseNumber,
		CustomerID:          p.CustomerID,
		CustomerName:        p.CustomerName,
		ShopID:              p.ShopID,
		SoldByStaffID:       p.SoldByStaffID,
		AssignedCollectorID: p.AssignedCollectorID,
		TotalAmount:         p.TotalAmount,
		PaidAmount:          p.PaidAmount,
		Outstanding:         p.Outstanding(),
		Status:              string(p.Status),
		NextDueDate:         p.NextDueDate,
		SettledAt:           p.SettledAt,
		DefaultedAt:         p.DefaultedAt,
		CreatedAt:           p.CreatedAt,
	}
}

// ==================== Payment DTOs ====================

// RecordPaymentRequest represents a request to record a collected installment
type RecordPaymentRequest struct {
	PurchaseID  uuid.UUID       `json:"purchase_id" binding:"required"`
	CollectorID *uuid.UUID      `json:"collector_id"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Method      string          `json:"method"`
	Reference   string          `json:"reference"`
	CollectedAt *time.Time      `json:"collected_at"`
}

// ListPaymentsRequest carries the query filters for payment listings
type ListPaymentsRequest struct {
	Page        int     `form:"page"`
	PageSize    int     `form:"page_size"`
	PurchaseID  *string `form:"purchase_id"`
	CollectorID *string `form:"collector_id"`
	Status      *string `form:"status"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID          uuid.UUID       `json:"id"`
	PurchaseID  uuid.UUID       `json:"purchase_id"`
	CustomerID  uuid.UUID       `json:"customer_id"`
	ShopID      *uuid.UUID      `json:"shop_id,omitempty"`
	CollectorID *uuid.UUID      `json:"collector_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Method      string          `json:"method"`
	Reference   string          `json:"reference,omitempty"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
	CollectedAt time.Time       `json:"collected_at"`
	Status      string          `json:"status"`
	OnTime      bool            `json:"on_time"`
	WasRecovery bool            `json:"was_recovery"`
	ConfirmedAt *time.Time      `json:"confirmed_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToPaymentResponse converts a domain payment to its response shape
func ToPaymentResponse(p *credit.Payment) PaymentResponse {
	return PaymentResponse{
		ID:          p.ID,
		PurchaseID:  p.PurchaseID,
		CustomerID:  p.CustomerID,
		ShopID:      p.ShopID,
		CollectorID: p.CollectorID,
		Amount:      p.Amount,
		Currency:    p.Currency,
		Method:      p.Method,
		Reference:   p.Reference,
		DueDate:     p.DueDate,
		CollectedAt: p.CollectedAt,
		Status:      string(p.Status),
		OnTime:      p.OnTime(),
		WasRecovery: p.WasRecovery,
		ConfirmedAt: p.ConfirmedAt,
		CreatedAt:   p.CreatedAt,
	}
}
