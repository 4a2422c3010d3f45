package router

import (
	"smartschedule-api/core/middleware"
	"smartschedule-api/modules/notification/controller"

	"github.com/labstack/echo/v4"
)

// NotificationRouter handles notification routes.
type NotificationRouter struct {
	NotificationController *controller.NotificationController
}

func NewNotificationRouter(notificationController *controller.NotificationController) *NotificationRouter {
	return &NotificationRouter{
		NotificationController: notificationController,
	}
}

// Register registers notification routes on the versioned group.
func (r *NotificationRouter) Register(e *echo.Group, mw *middleware.Middleware) {
	notificationRoutes := e.Group("/private/notifications", mw.AuthMiddleware())

	notificationRoutes.GET("", r.NotificationController.GetNotifications)
	notificationRoutes.GET("/unread-count", r.NotificationController.GetUnreadCount)
	notificationRoutes.PUT("/mark-read", r.NotificationController.MarkAsRead)
	notificationRoutes.PUT("/mark-all-read", r.NotificationController.MarkAllAsRead)
}
