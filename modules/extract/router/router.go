package router

import (
	"smartschedule-api/core/middleware"
	"smartschedule-api/modules/extract/controller"

	"github.com/labstack/echo/v4"
)

// ExtractRouter handles natural-language routes.
type ExtractRouter struct {
	ExtractController *controller.ExtractController
}

func NewExtractRouter(extractController *controller.ExtractController) *ExtractRouter {
	return &ExtractRouter{
		ExtractController: extractController,
	}
}

// Register registers extract routes on the versioned group.
func (r *ExtractRouter) Register(e *echo.Group, mw *middleware.Middleware) {
	extractRoutes := e.Group("/private/extract", mw.AuthMiddleware())

	extractRoutes.POST("/parse", r.ExtractController.ParseText)
	extractRoutes.POST("/events", r.ExtractController.CreateFromText)
}
