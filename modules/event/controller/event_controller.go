package controller

import (
	"strconv"
	"time"

	"smartschedule-api/core/controller"
	"smartschedule-api/core/errors"
	"smartschedule-api/modules/event/dto"
	"smartschedule-api/modules/event/service"

	"github.com/labstack/echo/v4"
)

type EventController struct {
	service service.EventServiceInterface
	controller.BaseController
}

func NewEventController(service service.EventServiceInterface) *EventController {
	return &EventController{
		service:        service,
		BaseController: controller.NewBaseController(),
	}
}

// CreateEvent creates an event from a structured payload
// @Summary Tạo sự kiện
// @Description Tạo sự kiện mới, từ chối khi trùng thời gian ở độ phân giải phút
// @Tags Event
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateEventRequest true "Thông tin sự kiện"
// @Success 200 {object} controller.SuccessResponse
// @Failure 400 {object} controller.ErrorResponse
// @Failure 409 {object} controller.ErrorResponse
// @Router /private/events [post]
func (c *EventController) CreateEvent(ctx echo.Context) error {
	req := new(dto.CreateEventRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, appErr := c.service.Create(ctx.Request().Context(), req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Event created successfully")
}

// GetEvent retrieves a single event
// @Summary Lấy chi tiết sự kiện
// @Tags Event
// @Security BearerAuth
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} controller.SuccessResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /private/events/{id} [get]
func (c *EventController) GetEvent(ctx echo.Context) error {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id")
	}

	result, appErr := c.service.GetByID(ctx.Request().Context(), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Event retrieved successfully")
}

// ListEvents lists events, optionally for a single day
// @Summary Danh sách sự kiện
// @Description Trả về mọi sự kiện, hoặc các sự kiện của một ngày khi truyền ?date=YYYY-MM-DD
// @Tags Event
// @Security BearerAuth
// @Produce json
// @Param date query string false "Ngày (YYYY-MM-DD)"
// @Success 200 {object} controller.SuccessResponse
// @Router /private/events [get]
func (c *EventController) ListEvents(ctx echo.Context) error {
	var date *time.Time
	if raw := ctx.QueryParam("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return c.BadRequest(errors.ErrInvalidInput, "Invalid date, expected YYYY-MM-DD")
		}
		date = &parsed
	}

	result, appErr := c.service.List(ctx.Request().Context(), date)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Events retrieved successfully")
}

// UpdateEvent applies a partial edit
// @Summary Sửa sự kiện
// @Description Sửa sự kiện; đổi thời gian bắt đầu sẽ kiểm tra trùng lặp lại
// @Tags Event
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Event ID"
// @Param request body dto.UpdateEventRequest true "Các trường cần sửa"
// @Success 200 {object} controller.SuccessResponse
// @Failure 404 {object} controller.ErrorResponse
// @Failure 409 {object} controller.ErrorResponse
// @Router /private/events/{id} [put]
func (c *EventController) UpdateEvent(ctx echo.Context) error {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id")
	}

	req := new(dto.UpdateEventRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, appErr := c.service.Update(ctx.Request().Context(), id, req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Event updated successfully")
}

// DeleteEvent removes an event
// @Summary Xoá sự kiện
// @Description Xoá sự kiện; khi bảng rỗng, ID tiếp theo quay về 1
// @Tags Event
// @Security BearerAuth
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} controller.SuccessResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /private/events/{id} [delete]
func (c *EventController) DeleteEvent(ctx echo.Context) error {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id")
	}

	if appErr := c.service.Delete(ctx.Request().Context(), id); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Event deleted successfully")
}
