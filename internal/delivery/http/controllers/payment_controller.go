package controllers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"gymadmin/internal/delivery/http/helpers"
	"gymadmin/internal/domain"
)

type PaymentController struct {
	Logger  *slog.Logger
	Service domain.PaymentService
}

func NewPaymentController(logger *slog.Logger, svc domain.PaymentService) *PaymentController {
	return &PaymentController{
		Logger:  logger,
		Service: svc,
	}
}

// PaymentRequest is the request body for POST /payments.
type PaymentRequest struct {
	MemberID    string     `json:"member_id" validate:"required"`
	PlanID      *string    `json:"plan_id,omitempty"`
	AmountCents int        `json:"amount_cents" validate:"required,min=1"`
	Method      string     `json:"method"`
	PaidAt      *time.Time `json:"paid_at,omitempty"` // defaults to now
	Notes       string     `json:"notes"`
}

// PaymentSuccessResponse is the success response envelope for POST /payments (201).
type PaymentSuccessResponse struct {
	Data  *domain.Payment   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// PaymentListSuccessResponse is the success response envelope for GET /members/{memberID}/payments.
type PaymentListSuccessResponse struct {
	Data  []*domain.Payment `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// RevenueSuccessResponse is the success response envelope for GET /finance/revenue.
type RevenueSuccessResponse struct {
	Data  []*domain.MonthlyRevenue `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

// Record godoc
// @Summary Record a payment
// @Description Records a payment in the ledger. paid_at defaults to the current time.
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.PaymentRequest true "Payment details"
// @Success 201 {object} controllers.PaymentSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (unknown member or plan)"
// @Router /payments [post]
func (c *PaymentController) Record(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	var req PaymentRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	now := time.Now()
	paidAt := now
	if req.PaidAt != nil {
		paidAt = *req.PaidAt
	}
	payment := domain.NewPayment(claims.TenantID, req.MemberID, req.PlanID, req.AmountCents, req.Method, paidAt, req.Notes, now)
	if err := c.Service.Record(r.Context(), payment); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, payment)
}

// ListByMember godoc
// @Summary List a member's payments
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param memberID path string true "Member ID"
// @Success 200 {object} controllers.PaymentListSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /members/{memberID}/payments [get]
func (c *PaymentController) ListByMember(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	payments, err := c.Service.ListByMember(r.Context(), claims.TenantID, r.PathValue("memberID"))
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, payments)
}

// MonthlyRevenue godoc
// @Summary Monthly revenue for a year
// @Description Returns per-month payment totals for the given year. Months without payments are omitted.
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param year query int true "Calendar year, e.g. 2024"
// @Success 200 {object} controllers.RevenueSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /finance/revenue [get]
func (c *PaymentController) MonthlyRevenue(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "year must be an integer")
		return
	}
	revenue, err := c.Service.MonthlyRevenue(r.Context(), claims.TenantID, year)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, revenue)
}
