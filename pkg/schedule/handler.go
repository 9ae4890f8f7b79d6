package schedule

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/officio/officio/internal/rest"
	"github.com/officio/officio/pkg/dateutil"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	schedules *Service
}

type ScheduleDTO struct {
	Id           int    `json:"id,omitempty"`
	Uid          string `json:"uid,omitempty"`
	Title        string `json:"title"`
	Category     string `json:"category"`
	Contents     string `json:"contents"`
	Open         bool   `json:"open"`
	Color        string `json:"color"`
	StartDate    string `json:"startDate"`
	StartHour    int    `json:"startHour"`
	StartMinute  int    `json:"startMinute"`
	EndDate      string `json:"endDate"`
	EndHour      int    `json:"endHour"`
	EndMinute    int    `json:"endMinute"`
	RepeatType   string `json:"repeatType"`
	RepeatAnchor int    `json:"repeatAnchor,omitempty"`
	RepeatEnd    string `json:"repeatEnd,omitempty"`
}

func NewHandler(s *Service) *Handler {
	return &Handler{s}
}

func (h *Handler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var dto ScheduleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	dto.Id = 0

	h.save(w, r, dto)
}

func (h *Handler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	id, ok := scheduleId(w, r)
	if !ok {
		return
	}

	var dto ScheduleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	dto.Id = id

	h.save(w, r, dto)
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request, dto ScheduleDTO) {
	sch, err := dtoToSchedule(dto)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		if encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid date format",
			Details: "dates must be in yyyy-MM-dd format",
		}); encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	saved, err := h.schedules.Save(r.Context(), sch)
	if err != nil {
		switch {
		case IsValidationErr(err):
			w.WriteHeader(http.StatusBadRequest)
			if encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error:   "Invalid schedule",
				Details: err.Error(),
			}); encodeErr != nil {
				http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			}
		case errors.Is(err, ErrScheduleNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	status := http.StatusOK
	if dto.Id == 0 {
		status = http.StatusCreated
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(scheduleToDTO(saved)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	id, ok := scheduleId(w, r)
	if !ok {
		return
	}

	sch, err := h.schedules.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrScheduleNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(scheduleToDTO(sch)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	id, ok := scheduleId(w, r)
	if !ok {
		return
	}

	if err := h.schedules.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrScheduleNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	log.Debugf("schedule %d deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

func scheduleId(w http.ResponseWriter, r *http.Request) (int, bool) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["scheduleId"])
	if err != nil {
		http.Error(w, "invalid schedule id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func scheduleToDTO(s Schedule) ScheduleDTO {
	dto := ScheduleDTO{
		Id:           s.Id,
		Uid:          s.Uid,
		Title:        s.Title,
		Category:     s.Category,
		Contents:     s.Contents,
		Open:         s.Open,
		Color:        s.Color,
		StartDate:    dateutil.Format(s.StartDate),
		StartHour:    s.StartHour,
		StartMinute:  s.StartMinute,
		EndDate:      dateutil.Format(s.EndDate),
		EndHour:      s.EndHour,
		EndMinute:    s.EndMinute,
		RepeatType:   string(s.RepeatType),
		RepeatAnchor: s.RepeatAnchor,
	}
	if !s.RepeatEnd.IsZero() {
		dto.RepeatEnd = dateutil.Format(s.RepeatEnd)
	}
	return dto
}

func dtoToSchedule(dto ScheduleDTO) (Schedule, error) {
	s := Schedule{
		Id:           dto.Id,
		Uid:          dto.Uid,
		Title:        dto.Title,
		Category:     dto.Category,
		Contents:     dto.Contents,
		Open:         dto.Open,
		Color:        dto.Color,
		StartHour:    dto.StartHour,
		StartMinute:  dto.StartMinute,
		EndHour:      dto.EndHour,
		EndMinute:    dto.EndMinute,
		RepeatType:   RepeatType(dto.RepeatType),
		RepeatAnchor: dto.RepeatAnchor,
	}

	var err error
	if s.StartDate, err = dateutil.Parse(dto.StartDate); err != nil {
		return Schedule{}, err
	}
	if s.EndDate, err = dateutil.Parse(dto.EndDate); err != nil {
		return Schedule{}, err
	}
	if dto.RepeatEnd != "" {
		if s.RepeatEnd, err = dateutil.Parse(dto.RepeatEnd); err != nil {
			return Schedule{}, err
		}
	}
	return s, nil
}
