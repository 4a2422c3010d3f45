package middleware

import (
	"net/http"
	"strings"

	"smartschedule-api/core/constants"
	"smartschedule-api/core/controller"
	"smartschedule-api/core/errors"
	"smartschedule-api/core/utils"

	"github.com/labstack/echo/v4"
)

type Middleware struct{}

func New() *Middleware {
	return &Middleware{}
}

// AuthMiddleware validates the bearer token and stores the parsed claims on
// the request context.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrMissingAuthorizationHeader, "Missing Authorization header")
			}

			token := strings.TrimPrefix(header, "Bearer ")
			if token == header {
				return controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrInvalidTokenFormat, "Authorization header must be a Bearer token")
			}

			tokenData, err := utils.ValidateAndParseToken(token)
			if err != nil {
				if ae, ok := err.(*errors.AppError); ok {
					return controller.NewErrorResponse(http.StatusUnauthorized, ae.Code, ae.Message)
				}
				return controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrUnauthorized, "Unauthorized")
			}

			if tokenData.Scope != constants.ScopeTokenAccess {
				return controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrUnauthorized, "Token scope is not valid for this endpoint")
			}

			c.Set(constants.ContextTokenData, tokenData)
			return next(c)
		}
	}
}
