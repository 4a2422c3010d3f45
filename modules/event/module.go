package event

import (
	"smartschedule-api/core/database"
	"smartschedule-api/core/middleware"
	"smartschedule-api/modules/event/controller"
	"smartschedule-api/modules/event/repository"
	"smartschedule-api/modules/event/router"
	"smartschedule-api/modules/event/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the event module and registers routes. The repository and
// service are returned for the scheduler and extraction modules.
func Init(e *echo.Group, db database.IDatabase, mw *middleware.Middleware) (*service.EventService, repository.EventRepositoryInterface) {
	repo := repository.NewEventRepository(db)
	guard := service.NewConflictGuard(repo)
	svc := service.NewEventService(repo, guard)
	ctrl := controller.NewEventController(svc)

	router.NewEventRouter(ctrl).Register(e, mw)

	return svc, repo
}
