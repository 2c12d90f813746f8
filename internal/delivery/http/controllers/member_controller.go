package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"gymadmin/internal/delivery/http/helpers"
	"gymadmin/internal/domain"
)

type MemberController struct {
	Logger  *slog.Logger
	Service domain.MemberService
}

func NewMemberController(logger *slog.Logger, svc domain.MemberService) *MemberController {
	return &MemberController{
		Logger:  logger,
		Service: svc,
	}
}

// MemberRequest is the request body for POST /members and PUT /members/{memberID}.
type MemberRequest struct {
	PlanID    *string `json:"plan_id,omitempty"`
	FirstName string  `json:"first_name" validate:"required"`
	LastName  string  `json:"last_name" validate:"required"`
	Email     string  `json:"email" validate:"omitempty,email"`
	Phone     string  `json:"phone"`
	JoinedAt  string  `json:"joined_at,omitempty"` // "2006-01-02", defaults to today
	Active    *bool   `json:"active,omitempty"`
}

// Validate implements helpers.Validator.
func (r *MemberRequest) Validate() []string {
	var errs []string
	if r.JoinedAt != "" {
		if _, err := time.Parse("2006-01-02", r.JoinedAt); err != nil {
			errs = append(errs, "joined_at must be in 2006-01-02 format")
		}
	}
	return errs
}

// MemberSuccessResponse is the success response envelope for single-member endpoints.
type MemberSuccessResponse struct {
	Data  *domain.Member    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// MemberListData is the payload of GET /members.
type MemberListData struct {
	Members    []*domain.Member       `json:"members"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// MemberListSuccessResponse is the success response envelope for GET /members.
type MemberListSuccessResponse struct {
	Data  *MemberListData   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// Create godoc
// @Summary Register a member
// @Description Registers a gym member. When the member has an email address a welcome email is sent; email failures do not fail the registration.
// @Tags members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.MemberRequest true "Member details"
// @Success 201 {object} controllers.MemberSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (unknown plan)"
// @Router /members [post]
func (c *MemberController) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	var req MemberRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	var joinedAt time.Time
	if req.JoinedAt != "" {
		joinedAt, _ = time.Parse("2006-01-02", req.JoinedAt)
	}
	now := time.Now()
	member := domain.NewMember(claims.TenantID, req.PlanID, req.FirstName, req.LastName, req.Email, req.Phone, joinedAt, now, now)
	if err := c.Service.Create(r.Context(), member); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, member)
}

// List godoc
// @Summary List members
// @Description Lists members with pagination. The optional search term matches name or email, case-insensitive.
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search term"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.MemberListSuccessResponse
// @Router /members [get]
func (c *MemberController) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	params := helpers.ParsePagination(r)
	members, total, err := c.Service.List(r.Context(), claims.TenantID, r.URL.Query().Get("search"), params)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, &MemberListData{
		Members:    members,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// Get godoc
// @Summary Get a member
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param memberID path string true "Member ID"
// @Success 200 {object} controllers.MemberSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /members/{memberID} [get]
func (c *MemberController) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	member, err := c.Service.GetByID(r.Context(), claims.TenantID, r.PathValue("memberID"))
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, member)
}

// Update godoc
// @Summary Update a member
// @Tags members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param memberID path string true "Member ID"
// @Param body body controllers.MemberRequest true "Member details"
// @Success 200 {object} controllers.MemberSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /members/{memberID} [put]
func (c *MemberController) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	var req MemberRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	current, err := c.Service.GetByID(r.Context(), claims.TenantID, r.PathValue("memberID"))
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}

	current.PlanID = req.PlanID
	current.FirstName = req.FirstName
	current.LastName = req.LastName
	current.Email = req.Email
	current.Phone = req.Phone
	if req.JoinedAt != "" {
		current.JoinedAt, _ = time.Parse("2006-01-02", req.JoinedAt)
	}
	if req.Active != nil {
		current.Active = *req.Active
	}
	updated, err := c.Service.Update(r.Context(), current)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, updated)
}

// Delete godoc
// @Summary Delete a member
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param memberID path string true "Member ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /members/{memberID} [delete]
func (c *MemberController) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	if err := c.Service.Delete(r.Context(), claims.TenantID, r.PathValue("memberID")); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "deleted"})
}
