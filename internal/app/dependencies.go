package app

import (
	"database/sql"

	"github.com/officio/officio/internal/config"
	"github.com/officio/officio/internal/utils"
	"github.com/officio/officio/pkg/calendar"
	"github.com/officio/officio/pkg/datedim"
	"github.com/officio/officio/pkg/schedule"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	ScheduleRepository *schedule.RepositoryImpl
	ScheduleService    *schedule.Service
	ScheduleHandler    *schedule.Handler

	DateDimRepository *datedim.RepositoryImpl
	DateDimGenerator  *datedim.Generator
	DateDimHandler    *datedim.Handler

	CalendarService *calendar.Service
	CalendarHandler *calendar.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = utils.SystemClock{}

	deps.ScheduleRepository = schedule.NewRepository(db)
	deps.ScheduleService = schedule.NewService(deps.ScheduleRepository)
	deps.ScheduleHandler = schedule.NewHandler(deps.ScheduleService)

	deps.DateDimRepository = datedim.NewRepository(db)
	deps.DateDimGenerator = datedim.NewGenerator(deps.DateDimRepository, deps.Clock, datedim.Colors{
		Sunday:   cfg.Calendar.SundayColor,
		Saturday: cfg.Calendar.SaturdayColor,
	})
	deps.DateDimHandler = datedim.NewHandler(deps.DateDimGenerator)

	deps.CalendarService = calendar.NewService(deps.DateDimRepository, deps.ScheduleService)
	deps.CalendarHandler = calendar.NewHandler(deps.CalendarService, deps.Clock)

	return deps
}
