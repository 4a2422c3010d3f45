package extract

import (
	"time"

	"smartschedule-api/core/middleware"
	eventservice "smartschedule-api/modules/event/service"
	"smartschedule-api/modules/extract/controller"
	"smartschedule-api/modules/extract/router"
	"smartschedule-api/modules/extract/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the natural-language module on top of the event service.
func Init(e *echo.Group, events eventservice.EventServiceInterface, timezone *time.Location, mw *middleware.Middleware) *service.ExtractService {
	svc := service.NewExtractService(events, timezone)
	ctrl := controller.NewExtractController(svc)

	router.NewExtractRouter(ctrl).Register(e, mw)

	return svc
}
