package router

import (
	"smartschedule-api/core/middleware"
	"smartschedule-api/modules/event/controller"

	"github.com/labstack/echo/v4"
)

// EventRouter handles event routes.
type EventRouter struct {
	EventController *controller.EventController
}

func NewEventRouter(eventController *controller.EventController) *EventRouter {
	return &EventRouter{
		EventController: eventController,
	}
}

// Register registers event routes on the versioned group.
func (r *EventRouter) Register(e *echo.Group, mw *middleware.Middleware) {
	eventRoutes := e.Group("/private/events", mw.AuthMiddleware())

	eventRoutes.POST("", r.EventController.CreateEvent)
	eventRoutes.GET("", r.EventController.ListEvents)
	eventRoutes.GET("/:id", r.EventController.GetEvent)
	eventRoutes.PUT("/:id", r.EventController.UpdateEvent)
	eventRoutes.DELETE("/:id", r.EventController.DeleteEvent)
}
