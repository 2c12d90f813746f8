package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gymadmin/internal/delivery/http/helpers"
	"gymadmin/internal/delivery/http/middleware"
	"gymadmin/internal/domain"
	"gymadmin/internal/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockProgramService implements domain.ProgramService with function fields.
type mockProgramService struct {
	generateFn func(ctx context.Context, tenantID string, in domain.GenerateProgramInput) (*domain.ProgramGenerationResult, error)
	createFn   func(ctx context.Context, tenantID string, session *domain.Session) (*domain.Session, error)
	deleteFn   func(ctx context.Context, tenantID string, in domain.DeleteProgramInput) (*domain.ProgramDeletionResult, error)
	listFn     func(ctx context.Context, tenantID string, filter domain.SessionFilter) ([]*domain.Session, error)
	updateFn   func(ctx context.Context, tenantID, sessionID string, startsAt, endsAt *time.Time, capacity, cancelBeforeHours *int) (*domain.Session, error)
	removeFn   func(ctx context.Context, tenantID, sessionID string) error
}

func (m *mockProgramService) GenerateProgram(ctx context.Context, tenantID string, in domain.GenerateProgramInput) (*domain.ProgramGenerationResult, error) {
	return m.generateFn(ctx, tenantID, in)
}

func (m *mockProgramService) CreateSession(ctx context.Context, tenantID string, session *domain.Session) (*domain.Session, error) {
	return m.createFn(ctx, tenantID, session)
}

func (m *mockProgramService) DeleteProgram(ctx context.Context, tenantID string, in domain.DeleteProgramInput) (*domain.ProgramDeletionResult, error) {
	return m.deleteFn(ctx, tenantID, in)
}

func (m *mockProgramService) ListSessions(ctx context.Context, tenantID string, filter domain.SessionFilter) ([]*domain.Session, error) {
	return m.listFn(ctx, tenantID, filter)
}

func (m *mockProgramService) UpdateSession(ctx context.Context, tenantID, sessionID string, startsAt, endsAt *time.Time, capacity, cancelBeforeHours *int) (*domain.Session, error) {
	return m.updateFn(ctx, tenantID, sessionID, startsAt, endsAt, capacity, cancelBeforeHours)
}

func (m *mockProgramService) DeleteSession(ctx context.Context, tenantID, sessionID string) error {
	return m.removeFn(ctx, tenantID, sessionID)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// authedRequest builds a request with token claims already in the context and
// the path value set the way the ServeMux would.
func authedRequest(method, target, body string, pathValues map[string]string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req = req.WithContext(middleware.SetClaims(req.Context(), &domain.TokenClaims{
		UserID:   "u-1",
		TenantID: "t-1",
		Role:     domain.RoleAdmin,
	}))
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	return req
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) helpers.APIResponse {
	t.Helper()
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	return envelope
}

func TestProgramController_GenerateProgram(t *testing.T) {
	var gotTenantID string
	var gotInput domain.GenerateProgramInput
	svc := &mockProgramService{
		generateFn: func(ctx context.Context, tenantID string, in domain.GenerateProgramInput) (*domain.ProgramGenerationResult, error) {
			gotTenantID = tenantID
			gotInput = in
			return &domain.ProgramGenerationResult{Created: 4, Sessions: []*domain.Session{}}, nil
		},
	}
	ctrl := NewProgramController(testLogger(), svc)

	body := `{"weekday":"monday","start_time":"18:00","end_time":"19:00","from_date":"2024-03-01","to_date":"2024-03-31","capacity":15}`
	req := authedRequest(http.MethodPost, "http://test/classes/c-1/program", body, map[string]string{"classID": "c-1"})
	rr := httptest.NewRecorder()
	ctrl.GenerateProgram(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "t-1", gotTenantID)
	assert.Equal(t, "c-1", gotInput.ClassID)
	assert.Equal(t, time.Monday, gotInput.Rule.Weekday)
	assert.Equal(t, schedule.NewDate(2024, time.March, 1), gotInput.Rule.From)
	assert.Equal(t, schedule.TimeOfDay{Hour: 18}, gotInput.Rule.StartTime)
	require.NotNil(t, gotInput.Capacity)
	assert.Equal(t, 15, *gotInput.Capacity)
}

func TestProgramController_GenerateProgram_BadBody(t *testing.T) {
	ctrl := NewProgramController(testLogger(), &mockProgramService{})

	tests := []struct {
		name string
		body string
	}{
		{"bogus weekday", `{"weekday":"mondayish","start_time":"18:00","end_time":"19:00","from_date":"2024-03-01","to_date":"2024-03-31"}`},
		{"bad time", `{"weekday":"monday","start_time":"6pm","end_time":"19:00","from_date":"2024-03-01","to_date":"2024-03-31"}`},
		{"bad date", `{"weekday":"monday","start_time":"18:00","end_time":"19:00","from_date":"03/01/2024","to_date":"2024-03-31"}`},
		{"missing fields", `{"weekday":"monday"}`},
		{"unknown field", `{"weekday":"monday","start_time":"18:00","end_time":"19:00","from_date":"2024-03-01","to_date":"2024-03-31","surprise":true}`},
		{"negative capacity", `{"weekday":"monday","start_time":"18:00","end_time":"19:00","from_date":"2024-03-01","to_date":"2024-03-31","capacity":-1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := authedRequest(http.MethodPost, "http://test/classes/c-1/program", tt.body, map[string]string{"classID": "c-1"})
			rr := httptest.NewRecorder()
			ctrl.GenerateProgram(rr, req)

			require.Equal(t, http.StatusBadRequest, rr.Code)
			envelope := decodeEnvelope(t, rr)
			require.NotNil(t, envelope.Error)
			assert.Equal(t, helpers.ErrCodeBadRequest, envelope.Error.Code)
		})
	}
}

func TestProgramController_GenerateProgram_InvalidRange(t *testing.T) {
	// Nil generateFn: the request must be rejected by validation before the
	// service is reached.
	ctrl := NewProgramController(testLogger(), &mockProgramService{})

	tests := []struct {
		name string
		body string
	}{
		{"inverted dates", `{"weekday":"monday","start_time":"18:00","end_time":"19:00","from_date":"2024-03-31","to_date":"2024-03-01"}`},
		{"inverted times", `{"weekday":"monday","start_time":"19:00","end_time":"18:00","from_date":"2024-03-01","to_date":"2024-03-31"}`},
		{"empty window", `{"weekday":"monday","start_time":"18:00","end_time":"18:00","from_date":"2024-03-01","to_date":"2024-03-31"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := authedRequest(http.MethodPost, "http://test/classes/c-1/program", tc.body, map[string]string{"classID": "c-1"})
			rr := httptest.NewRecorder()
			ctrl.GenerateProgram(rr, req)

			require.Equal(t, http.StatusBadRequest, rr.Code)
			envelope := decodeEnvelope(t, rr)
			require.NotNil(t, envelope.Error)
			assert.Equal(t, helpers.ErrCodeBadRequest, envelope.Error.Code)
		})
	}
}

func TestProgramController_DeleteProgram(t *testing.T) {
	var gotInput domain.DeleteProgramInput
	svc := &mockProgramService{
		deleteFn: func(ctx context.Context, tenantID string, in domain.DeleteProgramInput) (*domain.ProgramDeletionResult, error) {
			gotInput = in
			return &domain.ProgramDeletionResult{Matched: []string{"s-1"}, Deleted: 1}, nil
		},
	}
	ctrl := NewProgramController(testLogger(), svc)

	body := `{"from_date":"2024-03-01","to_date":"2024-03-31","weekdays":["monday","wednesday"],"time":"18:00"}`
	req := authedRequest(http.MethodPost, "http://test/classes/c-1/program/delete", body, map[string]string{"classID": "c-1"})
	rr := httptest.NewRecorder()
	ctrl.DeleteProgram(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "c-1", gotInput.ClassID)
	assert.Equal(t, []time.Weekday{time.Monday, time.Wednesday}, gotInput.Request.Days)
	assert.False(t, gotInput.Request.Time.IsAll())
}

func TestProgramController_DeleteProgram_AllTimes(t *testing.T) {
	var gotInput domain.DeleteProgramInput
	svc := &mockProgramService{
		deleteFn: func(ctx context.Context, tenantID string, in domain.DeleteProgramInput) (*domain.ProgramDeletionResult, error) {
			gotInput = in
			return &domain.ProgramDeletionResult{Matched: []string{"s-1", "s-2"}, Deleted: 2}, nil
		},
	}
	ctrl := NewProgramController(testLogger(), svc)

	body := `{"from_date":"2024-03-01","to_date":"2024-03-31","weekdays":["monday"],"time":"all"}`
	req := authedRequest(http.MethodPost, "http://test/classes/c-1/program/delete", body, map[string]string{"classID": "c-1"})
	rr := httptest.NewRecorder()
	ctrl.DeleteProgram(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, gotInput.Request.Time.IsAll())
}

func TestProgramController_DeleteProgram_NoMatch(t *testing.T) {
	svc := &mockProgramService{
		deleteFn: func(ctx context.Context, tenantID string, in domain.DeleteProgramInput) (*domain.ProgramDeletionResult, error) {
			return nil, domain.ErrNoMatch
		},
	}
	ctrl := NewProgramController(testLogger(), svc)

	body := `{"from_date":"2024-03-01","to_date":"2024-03-31","weekdays":["friday"],"time":"all"}`
	req := authedRequest(http.MethodPost, "http://test/classes/c-1/program/delete", body, map[string]string{"classID": "c-1"})
	rr := httptest.NewRecorder()
	ctrl.DeleteProgram(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
	envelope := decodeEnvelope(t, rr)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, helpers.ErrCodeNoMatch, envelope.Error.Code)
}

func TestProgramController_DeleteProgram_MissingTime(t *testing.T) {
	ctrl := NewProgramController(testLogger(), &mockProgramService{})

	body := `{"from_date":"2024-03-01","to_date":"2024-03-31","weekdays":["monday"]}`
	req := authedRequest(http.MethodPost, "http://test/classes/c-1/program/delete", body, map[string]string{"classID": "c-1"})
	rr := httptest.NewRecorder()
	ctrl.DeleteProgram(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestProgramController_CreateSession_Conflict(t *testing.T) {
	conflicting := &domain.Session{ID: "s-9", ClassID: "c-1"}
	svc := &mockProgramService{
		createFn: func(ctx context.Context, tenantID string, session *domain.Session) (*domain.Session, error) {
			return nil, &domain.ConflictError{Conflicts: []*domain.Session{conflicting}}
		},
	}
	ctrl := NewProgramController(testLogger(), svc)

	body := `{"class_id":"c-1","starts_at":"2024-03-04T18:00:00Z","ends_at":"2024-03-04T19:00:00Z"}`
	req := authedRequest(http.MethodPost, "http://test/sessions", body, nil)
	rr := httptest.NewRecorder()
	ctrl.CreateSession(rr, req)

	require.Equal(t, http.StatusConflict, rr.Code)
	envelope := decodeEnvelope(t, rr)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, helpers.ErrCodeConflict, envelope.Error.Code)
	assert.NotNil(t, envelope.Error.Details)
}

func TestProgramController_CreateSession_InvertedInterval(t *testing.T) {
	ctrl := NewProgramController(testLogger(), &mockProgramService{})

	body := `{"class_id":"c-1","starts_at":"2024-03-04T19:00:00Z","ends_at":"2024-03-04T18:00:00Z"}`
	req := authedRequest(http.MethodPost, "http://test/sessions", body, nil)
	rr := httptest.NewRecorder()
	ctrl.CreateSession(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestProgramController_ListSessions_Filters(t *testing.T) {
	var gotFilter domain.SessionFilter
	svc := &mockProgramService{
		listFn: func(ctx context.Context, tenantID string, filter domain.SessionFilter) ([]*domain.Session, error) {
			gotFilter = filter
			return []*domain.Session{}, nil
		},
	}
	ctrl := NewProgramController(testLogger(), svc)

	req := authedRequest(http.MethodGet, "http://test/sessions?class_id=c-1&from=2024-03-01T00:00:00Z&to=2024-04-01T00:00:00Z", "", nil)
	rr := httptest.NewRecorder()
	ctrl.ListSessions(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "c-1", gotFilter.ClassID)
	require.NotNil(t, gotFilter.From)
	require.NotNil(t, gotFilter.To)

	t.Run("bad from", func(t *testing.T) {
		req := authedRequest(http.MethodGet, "http://test/sessions?from=yesterday", "", nil)
		rr := httptest.NewRecorder()
		ctrl.ListSessions(rr, req)
		require.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestProgramController_DeleteSession_NotFound(t *testing.T) {
	svc := &mockProgramService{
		removeFn: func(ctx context.Context, tenantID, sessionID string) error {
			return domain.ErrNotFound
		},
	}
	ctrl := NewProgramController(testLogger(), svc)

	req := authedRequest(http.MethodDelete, "http://test/sessions/s-1", "", map[string]string{"sessionID": "s-1"})
	rr := httptest.NewRecorder()
	ctrl.DeleteSession(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestProgramController_Unauthenticated(t *testing.T) {
	ctrl := NewProgramController(testLogger(), &mockProgramService{})

	req := httptest.NewRequest(http.MethodGet, "http://test/sessions", nil)
	rr := httptest.NewRecorder()
	ctrl.ListSessions(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
}
