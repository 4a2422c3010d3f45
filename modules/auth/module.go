package auth

import (
	"smartschedule-api/core/cache"
	"smartschedule-api/modules/auth/controller"
	"smartschedule-api/modules/auth/router"
	"smartschedule-api/modules/auth/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the auth module and registers its public routes.
func Init(e *echo.Group, c cache.ICache) {
	svc := service.NewAuthService(c)
	ctrl := controller.NewAuthController(svc)

	router.NewAuthRouter(ctrl).Register(e)
}
