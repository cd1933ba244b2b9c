package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// SuccessResponse writes the payload as the raw response body.
func SuccessResponse(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

// BadRequestResponse writes a 400 error envelope.
func BadRequestResponse(c echo.Context, message interface{}) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "bad_request",
		Message: message,
	})
}

// NotFoundResponse writes the 404 error envelope.
func NotFoundResponse(c echo.Context) error {
	return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not_found"})
}

// InternalServerErrorResponse writes a 500 error envelope.
func InternalServerErrorResponse(c echo.Context, message interface{}) error {
	return c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "Internal server error",
		Message: message,
	})
}

// AppErrorResponse writes an application error with its own status.
func AppErrorResponse(c echo.Context, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Status == http.StatusBadRequest {
			return BadRequestResponse(c, appErr.Message)
		}
		return c.JSON(appErr.Status, ErrorResponse{
			Error:   appErr.Code,
			Message: appErr.Message,
		})
	}
	return InternalServerErrorResponse(c, err.Error())
}
