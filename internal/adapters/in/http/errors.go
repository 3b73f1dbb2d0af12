package http

import (
	"net/http"

	"ordering/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

func statusOf(kind errs.Kind) int {
	switch kind {
	case errs.KindValidation:
		return http.StatusBadRequest
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindConflict:
		return http.StatusConflict
	case errs.KindRegionUnavailable:
		return http.StatusUnprocessableEntity
	case errs.KindExternalService:
		return http.StatusBadGateway
	case errs.KindUnknown:
	}
	return http.StatusInternalServerError
}

// writeError renders err with the status of its kind. Unclassified errors are logged
// and hidden behind a generic message.
func writeError(c echo.Context, err error) error {
	kind := errs.KindOf(err)
	status := statusOf(kind)
	if status == http.StatusInternalServerError {
		c.Logger().Error(err)
		return c.JSON(status, errorResponse{Code: "INTERNAL", Message: "internal error"})
	}
	return c.JSON(status, errorResponse{Code: string(errs.CodeOf(err)), Message: err.Error()})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Code: string(errs.CodeInvalidValue), Message: message})
}
