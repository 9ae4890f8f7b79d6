package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Schedules
	r.HandleFunc("/api/schedule", deps.ScheduleHandler.CreateSchedule).Methods("POST")
	r.HandleFunc("/api/schedule/{scheduleId}", deps.ScheduleHandler.GetSchedule).Methods("GET")
	r.HandleFunc("/api/schedule/{scheduleId}", deps.ScheduleHandler.UpdateSchedule).Methods("PUT")
	r.HandleFunc("/api/schedule/{scheduleId}", deps.ScheduleHandler.DeleteSchedule).Methods("DELETE")

	// Month calendar view
	r.HandleFunc("/api/calendar/month", deps.CalendarHandler.GetMonthView).Methods("GET")

	// Date dimension administration
	r.HandleFunc("/api/admin/calendar-dates", deps.DateDimHandler.ExtendDates).Methods("POST")
}
