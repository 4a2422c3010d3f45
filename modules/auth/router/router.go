package router

import (
	"smartschedule-api/modules/auth/controller"

	"github.com/labstack/echo/v4"
)

// AuthRouter handles public auth routes.
type AuthRouter struct {
	AuthController *controller.AuthController
}

func NewAuthRouter(authController *controller.AuthController) *AuthRouter {
	return &AuthRouter{
		AuthController: authController,
	}
}

// Register registers auth routes on the versioned group.
func (r *AuthRouter) Register(e *echo.Group) {
	authRoutes := e.Group("/public/auth")

	authRoutes.POST("/login", r.AuthController.Login)
	authRoutes.POST("/refresh", r.AuthController.Refresh)
}
