package calendar

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/officio/officio/internal/rest"
	"github.com/officio/officio/internal/utils"
	"github.com/officio/officio/pkg/dateutil"
	"github.com/officio/officio/pkg/schedule"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	calendar *Service
	clock    utils.Clock
}

type DayViewDTO struct {
	Date        string          `json:"date"`
	Day         int             `json:"day"`
	DayOfWeek   int             `json:"dayOfWeek"`
	Color       string          `json:"color,omitempty"`
	Occurrences []OccurrenceDTO `json:"occurrences"`
}

type OccurrenceDTO struct {
	ScheduleId int    `json:"scheduleId"`
	Date       string `json:"date"`
	Hour       int    `json:"hour"`
	Minute     int    `json:"minute"`
	Title      string `json:"title"`
	Color      string `json:"color,omitempty"`
	Seq        int    `json:"seq"`
}

func NewHandler(s *Service, clock utils.Clock) *Handler {
	return &Handler{calendar: s, clock: clock}
}

// GetMonthView renders one row per day of the requested month. Year and
// month default to today; month 0 and 13 are normalized into the
// adjacent year the way the month navigation links produce them.
func (h *Handler) GetMonthView(w http.ResponseWriter, r *http.Request) {
	now := h.clock.Now()
	year, ok := intQueryParam(w, r, "year", now.Year())
	if !ok {
		return
	}
	month, ok := intQueryParam(w, r, "month", int(now.Month()))
	if !ok {
		return
	}
	if month < 0 || month > 13 {
		w.WriteHeader(http.StatusBadRequest)
		if encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid month",
			Details: "'month' must be between 0 and 13",
		}); encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}
	year, month = dateutil.NormalizeYearMonth(year, month)

	views, err := h.calendar.BuildMonthView(r.Context(), year, month)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]DayViewDTO, 0, len(views))
	for _, v := range views {
		dtos = append(dtos, dayViewToDTO(v))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	log.Tracef("month view returned: %d-%02d, %d days", year, month, len(dtos))
}

func intQueryParam(w http.ResponseWriter, r *http.Request, name string, fallback int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		if encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid " + name,
			Details: "'" + name + "' must be an integer",
		}); encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return 0, false
	}
	return value, true
}

func dayViewToDTO(v DayView) DayViewDTO {
	occurrences := make([]OccurrenceDTO, 0, len(v.Occurrences))
	for _, o := range v.Occurrences {
		occurrences = append(occurrences, occurrenceToDTO(o))
	}
	return DayViewDTO{
		Date:        dateutil.Format(v.Date),
		Day:         v.Day,
		DayOfWeek:   v.DayOfWeek,
		Color:       v.Color,
		Occurrences: occurrences,
	}
}

func occurrenceToDTO(o schedule.Occurrence) OccurrenceDTO {
	return OccurrenceDTO{
		ScheduleId: o.ScheduleId,
		Date:       dateutil.Format(o.Date),
		Hour:       o.Hour,
		Minute:     o.Minute,
		Title:      o.Title,
		Color:      o.Color,
		Seq:        o.Seq,
	}
}
