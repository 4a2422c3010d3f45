package controller

import (
	"smartschedule-api/core/controller"
	"smartschedule-api/core/errors"
	"smartschedule-api/core/params"
	"smartschedule-api/modules/notification/dto"
	"smartschedule-api/modules/notification/service"

	"github.com/labstack/echo/v4"
)

type NotificationController struct {
	service *service.NotificationService
	controller.BaseController
}

func NewNotificationController(service *service.NotificationService) *NotificationController {
	return &NotificationController{
		service:        service,
		BaseController: controller.NewBaseController(),
	}
}

// GetNotifications lists reminder notifications, newest first
// @Summary Lấy danh sách thông báo
// @Tags Notification
// @Security BearerAuth
// @Produce json
// @Param page query int false "Số trang"
// @Param limit query int false "Số lượng mỗi trang"
// @Success 200 {object} controller.SuccessResponse
// @Router /private/notifications [get]
func (c *NotificationController) GetNotifications(ctx echo.Context) error {
	queryParams := params.NewQueryParams(ctx)
	result, err := c.service.List(ctx.Request().Context(), *queryParams)
	if err != nil {
		return c.InternalServerError(errors.ErrInternalServer, "Failed to get notifications")
	}
	return c.SuccessResponse(ctx, result, "Notifications retrieved successfully")
}

// GetUnreadCount returns the number of unread notifications
// @Summary Đếm thông báo chưa đọc
// @Tags Notification
// @Security BearerAuth
// @Produce json
// @Success 200 {object} controller.SuccessResponse
// @Router /private/notifications/unread-count [get]
func (c *NotificationController) GetUnreadCount(ctx echo.Context) error {
	count, err := c.service.CountUnread(ctx.Request().Context())
	if err != nil {
		return c.InternalServerError(errors.ErrInternalServer, "Failed to count notifications")
	}
	return c.SuccessResponse(ctx, dto.UnreadCountResponse{Count: count}, "Unread count retrieved successfully")
}

// MarkAsRead marks specific notifications as read
// @Summary Đánh dấu đã đọc
// @Tags Notification
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.MarkAsReadRequest true "Danh sách ID thông báo"
// @Success 200 {object} controller.SuccessResponse
// @Failure 400 {object} controller.ErrorResponse
// @Router /private/notifications/mark-read [put]
func (c *NotificationController) MarkAsRead(ctx echo.Context) error {
	req := new(dto.MarkAsReadRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	if err := c.service.MarkAsRead(ctx.Request().Context(), req.IDs); err != nil {
		return c.InternalServerError(errors.ErrInternalServer, "Failed to mark as read")
	}
	return c.SuccessResponse(ctx, nil, "Marked as read successfully")
}

// MarkAllAsRead marks every unread notification as read
// @Summary Đánh dấu tất cả đã đọc
// @Tags Notification
// @Security BearerAuth
// @Produce json
// @Success 200 {object} controller.SuccessResponse
// @Router /private/notifications/mark-all-read [put]
func (c *NotificationController) MarkAllAsRead(ctx echo.Context) error {
	if err := c.service.MarkAllAsRead(ctx.Request().Context()); err != nil {
		return c.InternalServerError(errors.ErrInternalServer, "Failed to mark all as read")
	}
	return c.SuccessResponse(ctx, nil, "All marked as read successfully")
}
