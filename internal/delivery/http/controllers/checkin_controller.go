package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"gymadmin/internal/delivery/http/helpers"
	"gymadmin/internal/domain"
)

type CheckInController struct {
	Logger  *slog.Logger
	Service domain.CheckInService
}

func NewCheckInController(logger *slog.Logger, svc domain.CheckInService) *CheckInController {
	return &CheckInController{
		Logger:  logger,
		Service: svc,
	}
}

// CheckInRequest is the request body for POST /checkins. session_id is
// optional; without it the check-in is a plain gym visit.
type CheckInRequest struct {
	MemberID  string  `json:"member_id" validate:"required"`
	SessionID *string `json:"session_id,omitempty"`
}

// CheckInSuccessResponse is the success response envelope for POST /checkins (201).
type CheckInSuccessResponse struct {
	Data  *domain.CheckIn   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CheckInListSuccessResponse is the success response envelope for GET /members/{memberID}/checkins.
type CheckInListSuccessResponse struct {
	Data  []*domain.CheckIn `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// Create godoc
// @Summary Check a member in
// @Description Records a visit. The member must be active. When session_id is given the session must have free capacity.
// @Tags checkins
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.CheckInRequest true "Check-in details"
// @Success 201 {object} controllers.CheckInSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (inactive member)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (session full)"
// @Router /checkins [post]
func (c *CheckInController) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	var req CheckInRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	checkIn, err := c.Service.CheckIn(r.Context(), claims.TenantID, req.MemberID, req.SessionID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMemberInactive):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "member is not active")
		case errors.Is(err, domain.ErrSessionFull):
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "session is full")
		default:
			writeServiceError(w, r, c.Logger, err)
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, checkIn)
}

// ListByMember godoc
// @Summary List a member's check-ins
// @Tags checkins
// @Produce json
// @Security BearerAuth
// @Param memberID path string true "Member ID"
// @Success 200 {object} controllers.CheckInListSuccessResponse
// @Router /members/{memberID}/checkins [get]
func (c *CheckInController) ListByMember(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	checkIns, err := c.Service.ListByMember(r.Context(), claims.TenantID, r.PathValue("memberID"))
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, checkIns)
}
