package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"production/internal/core/domain/model/order"
	"production/internal/core/domain/services"
	"production/internal/core/ports"
	"production/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Error is the JSON body of every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var conflictErrors = []error{
	ports.ErrOrderAlreadyExists,
	ports.ErrOrderAlreadyAssigned,
	services.ErrFixtureDayFull,
	services.ErrFixtureDisabled,
	services.ErrFixtureIncompatible,
	services.ErrWeekdayExcluded,
	services.ErrAdjustmentDayOnly,
	services.ErrOrderNotSchedulable,
	services.ErrStockModelUnclassified,
}

var badRequestErrors = []error{
	errs.ErrValueIsRequired,
	errs.ErrValueIsInvalid,
	errs.ErrValueIsOutOfRange,
	errs.ErrVersionIsInvalid,
	order.ErrDepartmentMoveBackwards,
	services.ErrDateInPast,
}

// statusOf maps a use-case error to an HTTP status. A joined error carrying
// both a conflict and a validation failure is a conflict.
func statusOf(err error) int {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrs):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case isAny(err, conflictErrors):
		return http.StatusConflict
	case isAny(err, badRequestErrors):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func (s *Server) writeError(c echo.Context, err error) error {
	code := statusOf(err)
	if code == http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.JSON(code, Error{Code: code, Message: "Internal server error"})
	}

	return c.JSON(code, Error{Code: code, Message: describe(err)})
}

func describe(err error) string {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		msgs := make([]string, 0, len(validationErrs))
		for _, fe := range validationErrs {
			msgs = append(msgs, fmt.Sprintf("field '%s' failed on '%s'", fe.Field(), fe.Tag()))
		}
		return "Validation failed: " + strings.Join(msgs, "; ")
	}
	return strings.ReplaceAll(err.Error(), "\n", "; ")
}
