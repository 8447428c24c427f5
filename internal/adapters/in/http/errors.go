package http

import (
	"errors"
	"log/slog"
	"net/http"

	"parceltrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// writeError maps a use-case error onto the transport. Each error category
// carries a fixed status code; anything unrecognized is treated as internal
// and its details are logged rather than leaked to the client.
func writeError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrUnauthorized):
		return respond(ctx, http.StatusUnauthorized, err)
	case errors.Is(err, errs.ErrForbidden):
		return respond(ctx, http.StatusForbidden, err)
	case errors.Is(err, errs.ErrObjectNotFound):
		return respond(ctx, http.StatusNotFound, err)
	case errors.Is(err, errs.ErrConflict):
		return respond(ctx, http.StatusConflict, err)
	case errors.Is(err, errs.ErrValidationFailed),
		errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return respond(ctx, http.StatusBadRequest, err)
	default:
		slog.Error("request failed",
			"method", ctx.Request().Method,
			"path", ctx.Request().URL.Path,
			"error", err)
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "internal error",
		})
	}
}

func respond(ctx echo.Context, code int, err error) error {
	return ctx.JSON(code, ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}
