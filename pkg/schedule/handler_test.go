package schedule

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/officio/officio/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandlerTest() (*Handler, *RepositoryStub) {
	repo := NewRepositoryStub()
	service := NewService(repo)
	return NewHandler(service), repo
}

func contextWithUserId(ctx context.Context, userId int) context.Context {
	return user.WithUser(ctx, user.User{Id: userId})
}

func weeklyDTO() ScheduleDTO {
	return ScheduleDTO{
		Title:        "Weekly sync",
		Category:     "10",
		Color:        "#1A73E8",
		StartDate:    "2024-03-01",
		StartHour:    10,
		StartMinute:  30,
		EndDate:      "2024-03-01",
		EndHour:      11,
		RepeatType:   "weekly",
		RepeatAnchor: 6,
		RepeatEnd:    "2024-03-22",
	}
}

func createSchedule(t *testing.T, handler *Handler, userId int, dto ScheduleDTO) ScheduleDTO {
	t.Helper()
	body, err := json.Marshal(dto)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/schedule", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.CreateSchedule(w, req.WithContext(contextWithUserId(req.Context(), userId)))
	require.Equal(t, http.StatusCreated, w.Code)

	var created ScheduleDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	return created
}

func TestCreateSchedule(t *testing.T) {
	handler, repo := setupHandlerTest()

	created := createSchedule(t, handler, 1, weeklyDTO())

	assert.NotZero(t, created.Id)
	assert.NotEmpty(t, created.Uid)
	assert.Equal(t, "weekly", created.RepeatType)
	assert.Len(t, repo.OccurrencesForSchedule(created.Id), 4)
}

func TestCreateSchedule_InvalidDate(t *testing.T) {
	handler, _ := setupHandlerTest()

	dto := weeklyDTO()
	dto.StartDate = "03/01/2024"
	body, err := json.Marshal(dto)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/schedule", bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	handler.CreateSchedule(w, req.WithContext(contextWithUserId(req.Context(), 1)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var errResponse struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&errResponse))
	assert.Contains(t, errResponse.Error, "Invalid date format")
	assert.Contains(t, errResponse.Details, "yyyy-MM-dd")
}

func TestCreateSchedule_UnknownRepeatType(t *testing.T) {
	handler, _ := setupHandlerTest()

	dto := weeklyDTO()
	dto.RepeatType = "yearly"
	body, err := json.Marshal(dto)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/schedule", bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	handler.CreateSchedule(w, req.WithContext(contextWithUserId(req.Context(), 1)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var errResponse struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&errResponse))
	assert.Contains(t, errResponse.Details, "unknown repeat type")
}

func TestUpdateSchedule(t *testing.T) {
	handler, repo := setupHandlerTest()

	created := createSchedule(t, handler, 1, weeklyDTO())

	created.Title = "Renamed sync"
	created.RepeatEnd = "2024-03-15"
	body, err := json.Marshal(created)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/schedule/%d", created.Id), bytes.NewBuffer(body))
	req = mux.SetURLVars(req, map[string]string{"scheduleId": fmt.Sprintf("%d", created.Id)})
	w := httptest.NewRecorder()
	handler.UpdateSchedule(w, req.WithContext(contextWithUserId(req.Context(), 1)))

	require.Equal(t, http.StatusOK, w.Code)
	occurrences := repo.OccurrencesForSchedule(created.Id)
	require.Len(t, occurrences, 3)
	for _, o := range occurrences {
		assert.Equal(t, "Renamed sync", o.Title)
	}
}

func TestUpdateSchedule_NotFound(t *testing.T) {
	handler, _ := setupHandlerTest()

	dto := weeklyDTO()
	body, err := json.Marshal(dto)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/api/schedule/42", bytes.NewBuffer(body))
	req = mux.SetURLVars(req, map[string]string{"scheduleId": "42"})
	w := httptest.NewRecorder()
	handler.UpdateSchedule(w, req.WithContext(contextWithUserId(req.Context(), 1)))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetSchedule(t *testing.T) {
	handler, _ := setupHandlerTest()

	created := createSchedule(t, handler, 1, weeklyDTO())

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/schedule/%d", created.Id), nil)
	req = mux.SetURLVars(req, map[string]string{"scheduleId": fmt.Sprintf("%d", created.Id)})
	w := httptest.NewRecorder()
	handler.GetSchedule(w, req.WithContext(contextWithUserId(req.Context(), 1)))

	require.Equal(t, http.StatusOK, w.Code)
	var got ScheduleDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, created, got)
}

func TestGetSchedule_InvalidId(t *testing.T) {
	handler, _ := setupHandlerTest()

	req := httptest.NewRequest(http.MethodGet, "/api/schedule/abc", nil)
	req = mux.SetURLVars(req, map[string]string{"scheduleId": "abc"})
	w := httptest.NewRecorder()
	handler.GetSchedule(w, req.WithContext(contextWithUserId(req.Context(), 1)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteSchedule(t *testing.T) {
	handler, repo := setupHandlerTest()

	created := createSchedule(t, handler, 1, weeklyDTO())

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/schedule/%d", created.Id), nil)
	req = mux.SetURLVars(req, map[string]string{"scheduleId": fmt.Sprintf("%d", created.Id)})
	w := httptest.NewRecorder()
	handler.DeleteSchedule(w, req.WithContext(contextWithUserId(req.Context(), 1)))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, repo.OccurrencesForSchedule(created.Id))
}
