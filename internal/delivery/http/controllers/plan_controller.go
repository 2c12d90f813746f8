package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"gymadmin/internal/delivery/http/helpers"
	"gymadmin/internal/domain"
)

type PlanController struct {
	Logger  *slog.Logger
	Service domain.PlanService
}

func NewPlanController(logger *slog.Logger, svc domain.PlanService) *PlanController {
	return &PlanController{
		Logger:  logger,
		Service: svc,
	}
}

// PlanRequest is the request body for POST /plans and PUT /plans/{planID}.
type PlanRequest struct {
	Name             string `json:"name" validate:"required"`
	PriceCents       int    `json:"price_cents" validate:"min=0"`
	DurationDays     int    `json:"duration_days" validate:"required,min=1"`
	MaxVisitsPerWeek *int   `json:"max_visits_per_week,omitempty"`
}

// Validate implements helpers.Validator.
func (r *PlanRequest) Validate() []string {
	var errs []string
	if r.MaxVisitsPerWeek != nil && *r.MaxVisitsPerWeek < 1 {
		errs = append(errs, "max_visits_per_week must be at least 1")
	}
	return errs
}

// PlanSuccessResponse is the success response envelope for single-plan endpoints.
type PlanSuccessResponse struct {
	Data  *domain.Plan      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// PlanListSuccessResponse is the success response envelope for GET /plans.
type PlanListSuccessResponse struct {
	Data  []*domain.Plan    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// Create godoc
// @Summary Create a membership plan
// @Tags plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.PlanRequest true "Plan details"
// @Success 201 {object} controllers.PlanSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /plans [post]
func (c *PlanController) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	var req PlanRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	now := time.Now()
	plan := domain.NewPlan(claims.TenantID, req.Name, req.PriceCents, req.DurationDays, req.MaxVisitsPerWeek, now, now)
	if err := c.Service.Create(r.Context(), plan); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, plan)
}

// List godoc
// @Summary List membership plans
// @Tags plans
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.PlanListSuccessResponse
// @Router /plans [get]
func (c *PlanController) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	plans, err := c.Service.List(r.Context(), claims.TenantID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, plans)
}

// Update godoc
// @Summary Update a membership plan
// @Tags plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param planID path string true "Plan ID"
// @Param body body controllers.PlanRequest true "Plan details"
// @Success 200 {object} controllers.PlanSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /plans/{planID} [put]
func (c *PlanController) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	var req PlanRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	plan := &domain.Plan{
		ID:               r.PathValue("planID"),
		TenantID:         claims.TenantID,
		Name:             req.Name,
		PriceCents:       req.PriceCents,
		DurationDays:     req.DurationDays,
		MaxVisitsPerWeek: req.MaxVisitsPerWeek,
	}
	updated, err := c.Service.Update(r.Context(), plan)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, updated)
}

// Delete godoc
// @Summary Delete a membership plan
// @Tags plans
// @Produce json
// @Security BearerAuth
// @Param planID path string true "Plan ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /plans/{planID} [delete]
func (c *PlanController) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	if err := c.Service.Delete(r.Context(), claims.TenantID, r.PathValue("planID")); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "deleted"})
}
