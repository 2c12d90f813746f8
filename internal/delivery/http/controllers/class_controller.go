package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"gymadmin/internal/delivery/http/helpers"
	"gymadmin/internal/delivery/http/middleware"
	"gymadmin/internal/domain"
)

type ClassController struct {
	Logger  *slog.Logger
	Service domain.ClassService
}

func NewClassController(logger *slog.Logger, svc domain.ClassService) *ClassController {
	return &ClassController{
		Logger:  logger,
		Service: svc,
	}
}

// writeServiceError maps common domain errors to HTTP responses. Controllers
// fall back to it after handling their endpoint-specific errors.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "not found")
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid input")
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}

// requireClaims reads the verified token claims set by the auth middleware.
// It writes a 401 and returns false when they are absent.
func requireClaims(w http.ResponseWriter, r *http.Request) (*domain.TokenClaims, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return nil, false
	}
	return claims, true
}

// ClassRequest is the request body for POST /classes and PUT /classes/{classID}.
type ClassRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	CoachName   string `json:"coach_name"`
	Color       string `json:"color"`
}

// ClassSuccessResponse is the success response envelope for single-class endpoints.
type ClassSuccessResponse struct {
	Data  *domain.Class     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ClassListSuccessResponse is the success response envelope for GET /classes.
type ClassListSuccessResponse struct {
	Data  []*domain.Class   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// Create godoc
// @Summary Create a class
// @Description Creates a class (e.g. "Yoga", "CrossFit") for the authenticated gym.
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.ClassRequest true "Class details"
// @Success 201 {object} controllers.ClassSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /classes [post]
func (c *ClassController) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	var req ClassRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	now := time.Now()
	class := domain.NewClass(claims.TenantID, req.Name, req.Description, req.CoachName, req.Color, now, now)
	if err := c.Service.Create(r.Context(), class); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, class)
}

// List godoc
// @Summary List classes
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ClassListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /classes [get]
func (c *ClassController) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	classes, err := c.Service.List(r.Context(), claims.TenantID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, classes)
}

// Get godoc
// @Summary Get a class
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param classID path string true "Class ID"
// @Success 200 {object} controllers.ClassSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /classes/{classID} [get]
func (c *ClassController) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	class, err := c.Service.GetByID(r.Context(), claims.TenantID, r.PathValue("classID"))
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, class)
}

// Update godoc
// @Summary Update a class
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param classID path string true "Class ID"
// @Param body body controllers.ClassRequest true "Class details"
// @Success 200 {object} controllers.ClassSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /classes/{classID} [put]
func (c *ClassController) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	var req ClassRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	class := &domain.Class{
		ID:          r.PathValue("classID"),
		TenantID:    claims.TenantID,
		Name:        req.Name,
		Description: req.Description,
		CoachName:   req.CoachName,
		Color:       req.Color,
	}
	updated, err := c.Service.Update(r.Context(), class)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, updated)
}

// Delete godoc
// @Summary Delete a class
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param classID path string true "Class ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /classes/{classID} [delete]
func (c *ClassController) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	if err := c.Service.Delete(r.Context(), claims.TenantID, r.PathValue("classID")); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "deleted"})
}
