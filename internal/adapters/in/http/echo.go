package http

import (
	"net/http"
	"time"

	"production/internal/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// RequestValidator adapts go-playground/validator to echo.Validator.
type RequestValidator struct {
	validator *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validator: validator.New(validator.WithRequiredStructEnabled())}
}

func (v *RequestValidator) Validate(i any) error {
	return v.validator.Struct(i)
}

// NewEcho builds the echo instance with validation, panic recovery and zap
// request logging.
func NewEcho(log *zap.Logger) *echo.Echo {
	log = logger.Component(log, "http")

	e := echo.New()
	e.HideBanner = true
	e.Validator = NewRequestValidator()

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			log.Error("panic while serving request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.ByteString("stack", stack),
			)
			if !c.Response().Committed {
				return c.JSON(http.StatusInternalServerError, Error{
					Code:    http.StatusInternalServerError,
					Message: "Internal server error",
				})
			}
			return nil
		},
	}))

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			log.Debug("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency.Round(time.Microsecond)),
			)
			return nil
		},
	}))

	return e
}
