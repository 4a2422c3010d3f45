package controller

import (
	"smartschedule-api/core/controller"
	"smartschedule-api/core/errors"
	"smartschedule-api/modules/extract/dto"
	"smartschedule-api/modules/extract/service"

	"github.com/labstack/echo/v4"
)

type ExtractController struct {
	service service.ExtractServiceInterface
	controller.BaseController
}

func NewExtractController(service service.ExtractServiceInterface) *ExtractController {
	return &ExtractController{
		service:        service,
		BaseController: controller.NewBaseController(),
	}
}

// ParseText parses a sentence without creating anything
// @Summary Phân tích câu lệnh
// @Description Đọc câu tiếng Việt và trả về sự kiện sẽ được tạo, không lưu
// @Tags Extract
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.ParseRequest true "Câu cần phân tích"
// @Success 200 {object} controller.SuccessResponse
// @Failure 422 {object} controller.ErrorResponse
// @Router /private/extract/parse [post]
func (c *ExtractController) ParseText(ctx echo.Context) error {
	req := new(dto.ParseRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, appErr := c.service.Parse(ctx.Request().Context(), req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Text parsed successfully")
}

// CreateFromText creates an event from a sentence
// @Summary Tạo sự kiện từ câu lệnh
// @Description Đọc câu tiếng Việt ("Họp nhóm lúc 10h sáng mai ở phòng 302, nhắc trước 15 phút") và tạo sự kiện
// @Tags Extract
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.ParseRequest true "Câu mô tả sự kiện"
// @Success 200 {object} controller.SuccessResponse
// @Failure 409 {object} controller.ErrorResponse
// @Failure 422 {object} controller.ErrorResponse
// @Router /private/extract/events [post]
func (c *ExtractController) CreateFromText(ctx echo.Context) error {
	req := new(dto.ParseRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, appErr := c.service.CreateEvent(ctx.Request().Context(), req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Event created successfully")
}
