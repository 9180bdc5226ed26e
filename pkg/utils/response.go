package utils

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "worktrack-portal/pkg/errors"
)

type HttpResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int) error {
	response := &HttpResponse{
		Status:  true,
		Body:    body,
		Message: message,
	}
	return ctx.JSON(code, response)
}

// ErrorResponse подбирает HTTP-статус по типу ошибки и отдает единый конверт.
func ErrorResponse(ctx echo.Context, err error) error {
	message := err.Error()
	code := http.StatusInternalServerError

	var httpErr *apperrors.HttpError
	var inputErr *apperrors.InvalidInputError

	switch {
	case errors.As(err, &httpErr):
		code = httpErr.Code
		message = httpErr.Message
	case errors.As(err, &inputErr):
		code = http.StatusBadRequest
		message = inputErr.Message
	default:
		for known, statusCode := range apperrors.ErrorList {
			if errors.Is(err, known) {
				message = known.Error()
				code = statusCode
				break
			}
		}
	}

	response := &HttpResponse{
		Status:  false,
		Body:    struct{}{},
		Message: message,
	}
	return ctx.JSON(code, response)
}
