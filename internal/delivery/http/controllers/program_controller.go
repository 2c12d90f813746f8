package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"gymadmin/internal/delivery/http/helpers"
	"gymadmin/internal/domain"
	"gymadmin/internal/schedule"
)

type ProgramController struct {
	Logger  *slog.Logger
	Service domain.ProgramService
}

func NewProgramController(logger *slog.Logger, svc domain.ProgramService) *ProgramController {
	return &ProgramController{
		Logger:  logger,
		Service: svc,
	}
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func parseWeekday(s string) (time.Weekday, bool) {
	d, ok := weekdayNames[strings.ToLower(strings.TrimSpace(s))]
	return d, ok
}

// GenerateProgramRequest is the request body for POST /classes/{classID}/program.
// Dates are local calendar dates in the gym's timezone ("2006-01-02"); times
// are "15:04".
type GenerateProgramRequest struct {
	Weekday           string `json:"weekday" validate:"required"`
	StartTime         string `json:"start_time" validate:"required"`
	EndTime           string `json:"end_time" validate:"required"`
	FromDate          string `json:"from_date" validate:"required"`
	ToDate            string `json:"to_date" validate:"required"`
	Capacity          *int   `json:"capacity,omitempty"`
	CancelBeforeHours *int   `json:"cancel_before_hours,omitempty"`
}

// Validate implements helpers.Validator.
func (r *GenerateProgramRequest) Validate() []string {
	var errs []string
	if _, ok := parseWeekday(r.Weekday); !ok {
		errs = append(errs, "weekday must be a day name such as \"monday\"")
	}
	start, startErr := schedule.ParseTimeOfDay(r.StartTime)
	if startErr != nil {
		errs = append(errs, "start_time must be in 15:04 format")
	}
	end, endErr := schedule.ParseTimeOfDay(r.EndTime)
	if endErr != nil {
		errs = append(errs, "end_time must be in 15:04 format")
	}
	if startErr == nil && endErr == nil && !start.Before(end) {
		errs = append(errs, "end_time must be after start_time")
	}
	from, fromErr := schedule.ParseDate(r.FromDate)
	if fromErr != nil {
		errs = append(errs, "from_date must be in 2006-01-02 format")
	}
	to, toErr := schedule.ParseDate(r.ToDate)
	if toErr != nil {
		errs = append(errs, "to_date must be in 2006-01-02 format")
	}
	if fromErr == nil && toErr == nil && from.After(to) {
		errs = append(errs, "from_date must not be after to_date")
	}
	if r.Capacity != nil && *r.Capacity < 0 {
		errs = append(errs, "capacity must not be negative")
	}
	if r.CancelBeforeHours != nil && *r.CancelBeforeHours < 0 {
		errs = append(errs, "cancel_before_hours must not be negative")
	}
	return errs
}

func (r *GenerateProgramRequest) rule() schedule.GenerationRequest {
	weekday, _ := parseWeekday(r.Weekday)
	start, _ := schedule.ParseTimeOfDay(r.StartTime)
	end, _ := schedule.ParseTimeOfDay(r.EndTime)
	from, _ := schedule.ParseDate(r.FromDate)
	to, _ := schedule.ParseDate(r.ToDate)
	return schedule.GenerationRequest{
		Weekday:   weekday,
		StartTime: start,
		EndTime:   end,
		From:      from,
		To:        to,
	}
}

// GenerateProgramSuccessResponse is the success response envelope for POST /classes/{classID}/program (201).
type GenerateProgramSuccessResponse struct {
	Data  *domain.ProgramGenerationResult `json:"data"`
	Error *helpers.APIError               `json:"error"`
}

// GenerateProgram godoc
// @Summary Generate recurring sessions for a class
// @Description Creates one session per matching weekday in the date range, at the given local time window in the gym's timezone. A range with no matching weekday succeeds with created=0.
// @Tags program
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param classID path string true "Class ID"
// @Param body body controllers.GenerateProgramRequest true "Recurrence rule"
// @Success 201 {object} controllers.GenerateProgramSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (invalid range or time window)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /classes/{classID}/program [post]
func (c *ProgramController) GenerateProgram(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	var req GenerateProgramRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	result, err := c.Service.GenerateProgram(r.Context(), claims.TenantID, domain.GenerateProgramInput{
		ClassID:           r.PathValue("classID"),
		Rule:              req.rule(),
		Capacity:          req.Capacity,
		CancelBeforeHours: req.CancelBeforeHours,
	})
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidRange) || errors.Is(err, schedule.ErrInvalidWeekday) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, result)
}

// DeleteProgramRequest is the request body for POST /classes/{classID}/program/delete.
// Time selects which sessions on the chosen weekdays are removed: the literal
// "all" removes every session regardless of start time, otherwise it must be a
// "15:04" local time and only sessions starting at exactly that time match.
type DeleteProgramRequest struct {
	FromDate string   `json:"from_date" validate:"required"`
	ToDate   string   `json:"to_date" validate:"required"`
	Weekdays []string `json:"weekdays" validate:"required,min=1"`
	Time     string   `json:"time" validate:"required"`
}

// Validate implements helpers.Validator.
func (r *DeleteProgramRequest) Validate() []string {
	var errs []string
	if _, err := schedule.ParseDate(r.FromDate); err != nil {
		errs = append(errs, "from_date must be in 2006-01-02 format")
	}
	if _, err := schedule.ParseDate(r.ToDate); err != nil {
		errs = append(errs, "to_date must be in 2006-01-02 format")
	}
	for _, d := range r.Weekdays {
		if _, ok := parseWeekday(d); !ok {
			errs = append(errs, "weekdays must contain day names such as \"monday\"")
			break
		}
	}
	if !strings.EqualFold(r.Time, "all") {
		if _, err := schedule.ParseTimeOfDay(r.Time); err != nil {
			errs = append(errs, "time must be \"all\" or in 15:04 format")
		}
	}
	return errs
}

func (r *DeleteProgramRequest) request() schedule.DeletionRequest {
	from, _ := schedule.ParseDate(r.FromDate)
	to, _ := schedule.ParseDate(r.ToDate)
	days := make([]time.Weekday, 0, len(r.Weekdays))
	for _, d := range r.Weekdays {
		day, _ := parseWeekday(d)
		days = append(days, day)
	}
	filter := schedule.AllTimes()
	if !strings.EqualFold(r.Time, "all") {
		tod, _ := schedule.ParseTimeOfDay(r.Time)
		filter = schedule.AtTime(tod)
	}
	return schedule.DeletionRequest{From: from, To: to, Days: days, Time: filter}
}

// DeleteProgramSuccessResponse is the success response envelope for POST /classes/{classID}/program/delete (200).
type DeleteProgramSuccessResponse struct {
	Data  *domain.ProgramDeletionResult `json:"data"`
	Error *helpers.APIError             `json:"error"`
}

// DeleteProgram godoc
// @Summary Bulk-delete sessions of a class
// @Description Deletes the class sessions whose local start date, weekday, and (optionally) start time match the request. When nothing matches, responds 404 with error.code no_match and deletes nothing.
// @Tags program
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param classID path string true "Class ID"
// @Param body body controllers.DeleteProgramRequest true "Deletion filter"
// @Success 200 {object} controllers.DeleteProgramSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: no_match or not_found"
// @Router /classes/{classID}/program/delete [post]
func (c *ProgramController) DeleteProgram(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	var req DeleteProgramRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	result, err := c.Service.DeleteProgram(r.Context(), claims.TenantID, domain.DeleteProgramInput{
		ClassID: r.PathValue("classID"),
		Request: req.request(),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoMatch):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNoMatch, "no sessions match the given filter")
		case errors.Is(err, schedule.ErrInvalidRange), errors.Is(err, schedule.ErrNoWeekdays), errors.Is(err, schedule.ErrNoTimeFilter):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		default:
			writeServiceError(w, r, c.Logger, err)
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}

// SessionRequest is the request body for POST /sessions.
type SessionRequest struct {
	ClassID           string    `json:"class_id" validate:"required"`
	StartsAt          time.Time `json:"starts_at" validate:"required"`
	EndsAt            time.Time `json:"ends_at" validate:"required"`
	Capacity          *int      `json:"capacity,omitempty"`
	CancelBeforeHours *int      `json:"cancel_before_hours,omitempty"`
}

// Validate implements helpers.Validator.
func (r *SessionRequest) Validate() []string {
	var errs []string
	if !r.EndsAt.After(r.StartsAt) {
		errs = append(errs, "ends_at must be after starts_at")
	}
	return errs
}

// SessionSuccessResponse is the success response envelope for single-session endpoints.
type SessionSuccessResponse struct {
	Data  *domain.Session   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// SessionListSuccessResponse is the success response envelope for GET /sessions.
type SessionListSuccessResponse struct {
	Data  []*domain.Session `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CreateSession godoc
// @Summary Create a single session
// @Description Creates one session. Sessions of the same class must not overlap; intervals are half-open, so a session may start exactly when another ends.
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.SessionRequest true "Session details"
// @Success 201 {object} controllers.SessionSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict; details lists the conflicting sessions"
// @Router /sessions [post]
func (c *ProgramController) CreateSession(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	var req SessionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	session := &domain.Session{
		ClassID:           req.ClassID,
		StartsAt:          req.StartsAt,
		EndsAt:            req.EndsAt,
		Capacity:          req.Capacity,
		CancelBeforeHours: req.CancelBeforeHours,
	}
	created, err := c.Service.CreateSession(r.Context(), claims.TenantID, session)
	if err != nil {
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			helpers.WriteJSONErrorDetails(w, http.StatusConflict, helpers.ErrCodeConflict, "session overlaps existing sessions", conflict.Conflicts)
			return
		}
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, created)
}

// ListSessions godoc
// @Summary List sessions
// @Description Lists sessions ordered by start time. Optional filters: class_id, from, to (RFC 3339; to is exclusive).
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param class_id query string false "Filter by class"
// @Param from query string false "Only sessions starting at or after this instant"
// @Param to query string false "Only sessions starting before this instant"
// @Success 200 {object} controllers.SessionListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /sessions [get]
func (c *ProgramController) ListSessions(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	filter := domain.SessionFilter{ClassID: r.URL.Query().Get("class_id")}
	if s := r.URL.Query().Get("from"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "from must be RFC 3339")
			return
		}
		filter.From = &t
	}
	if s := r.URL.Query().Get("to"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "to must be RFC 3339")
			return
		}
		filter.To = &t
	}

	sessions, err := c.Service.ListSessions(r.Context(), claims.TenantID, filter)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sessions)
}

// UpdateSessionRequest is the request body for PATCH /sessions/{sessionID}.
// All fields are optional; absent fields keep their current value.
type UpdateSessionRequest struct {
	StartsAt          *time.Time `json:"starts_at,omitempty"`
	EndsAt            *time.Time `json:"ends_at,omitempty"`
	Capacity          *int       `json:"capacity,omitempty"`
	CancelBeforeHours *int       `json:"cancel_before_hours,omitempty"`
}

// UpdateSession godoc
// @Summary Update a session
// @Description Reschedules or reconfigures one session. Changing the times re-checks the class for overlaps.
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sessionID path string true "Session ID"
// @Param body body controllers.UpdateSessionRequest true "Fields to change"
// @Success 200 {object} controllers.SessionSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /sessions/{sessionID} [patch]
func (c *ProgramController) UpdateSession(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	var req UpdateSessionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	session, err := c.Service.UpdateSession(r.Context(), claims.TenantID, r.PathValue("sessionID"),
		req.StartsAt, req.EndsAt, req.Capacity, req.CancelBeforeHours)
	if err != nil {
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			helpers.WriteJSONErrorDetails(w, http.StatusConflict, helpers.ErrCodeConflict, "session overlaps existing sessions", conflict.Conflicts)
			return
		}
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, session)
}

// DeleteSession godoc
// @Summary Delete a session
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param sessionID path string true "Session ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /sessions/{sessionID} [delete]
func (c *ProgramController) DeleteSession(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	if err := c.Service.DeleteSession(r.Context(), claims.TenantID, r.PathValue("sessionID")); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "deleted"})
}
