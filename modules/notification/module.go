package notification

import (
	"smartschedule-api/core/constants"
	"smartschedule-api/core/database"
	"smartschedule-api/core/middleware"
	"smartschedule-api/modules/notification/controller"
	"smartschedule-api/modules/notification/repository"
	"smartschedule-api/modules/notification/router"
	"smartschedule-api/modules/notification/service"
	"smartschedule-api/modules/notification/worker"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
)

// Init initializes the notification module: routes, the asynq handler for
// delivery tasks, and the service handed to the scheduler.
func Init(e *echo.Group, db database.IDatabase, client *asynq.Client, mux *asynq.ServeMux, mw *middleware.Middleware) *service.NotificationService {
	repo := repository.NewNotificationRepository(db)
	svc := service.NewNotificationService(repo, client)
	ctrl := controller.NewNotificationController(svc)

	router.NewNotificationRouter(ctrl).Register(e, mw)

	deliveryWorker := worker.NewDeliveryWorker(repo)
	mux.HandleFunc(constants.TaskNotificationDeliver, deliveryWorker.HandleDeliver)

	return svc
}
