package domain

import (
	"context"
	"time"
)

// Payment represents one entry in a tenant's payments ledger.
// swagger:model Payment
type Payment struct {
	ID         string    `json:"id"`
	TenantID   string    `json:"tenant_id"`
	MemberID   string    `json:"member_id"`
	PlanID     *string   `json:"plan_id,omitempty"`
	AmountCents int      `json:"amount_cents"`
	Method     string    `json:"method"`
	PaidAt     time.Time `json:"paid_at"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewPayment returns a new Payment with the given fields. ID is set by the repository on create.
func NewPayment(tenantID, memberID string, planID *string, amountCents int, method string, paidAt time.Time, notes string, createdAt time.Time) *Payment {
	return &Payment{
		TenantID:    tenantID,
		MemberID:    memberID,
		PlanID:      planID,
		AmountCents: amountCents,
		Method:      method,
		PaidAt:      paidAt,
		Notes:       notes,
		CreatedAt:   createdAt,
	}
}

// MonthlyRevenue is the summed payment amount for one calendar month.
// swagger:model MonthlyRevenue
type MonthlyRevenue struct {
	Month      int `json:"month"`
	TotalCents int `json:"total_cents"`
}

// PaymentRepository defines the interface for payment storage.
type PaymentRepository interface {
	Create(ctx context.Context, payment *Payment) error
	ListByMember(ctx context.Context, tenantID, memberID string) ([]*Payment, error)
	// MonthlyTotals returns per-month revenue for the given year, months
	// without payments omitted.
	MonthlyTotals(ctx context.Context, tenantID string, year int) ([]*MonthlyRevenue, error)
}

// PaymentService defines the business logic for the payments ledger.
type PaymentService interface {
	Record(ctx context.Context, payment *Payment) error
	ListByMember(ctx context.Context, tenantID, memberID string) ([]*Payment, error)
	MonthlyRevenue(ctx context.Context, tenantID string, year int) ([]*MonthlyRevenue, error)
}
