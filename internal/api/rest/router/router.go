package router

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/dtroode/otp-signup/internal/api/rest/handler"
	"github.com/dtroode/otp-signup/internal/api/rest/middleware"
	"github.com/dtroode/otp-signup/internal/logger"
	"github.com/dtroode/otp-signup/internal/upload"
)

const registerPath = "/register"

// CustomValidator adapts go-playground/validator to echo.
type CustomValidator struct {
	validator *validator.Validate
}

func NewCustomValidator(v *validator.Validate) *CustomValidator {
	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// Options holds the HTTP surface settings.
type Options struct {
	AllowedOrigins []string
	BodyLimit      string
}

// Router wires the registration handlers and middleware into an echo instance.
type Router struct {
	registration *handler.Registration
	validate     *validator.Validate
	options      Options
	logger       *logger.Logger
}

func New(registration *handler.Registration, validate *validator.Validate, options Options, logger *logger.Logger) *Router {
	return &Router{
		registration: registration,
		validate:     validate,
		options:      options,
		logger:       logger,
	}
}

// Register builds the echo instance with all routes and middleware.
func (r *Router) Register() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewCustomValidator(r.validate)
	e.HTTPErrorHandler = errorHandler

	logging := middleware.NewLogging(r.logger)

	e.Use(echoMiddleware.RequestID())
	e.Use(logging.Handle)
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins:     r.options.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowCredentials: true,
	}))
	e.Use(echoMiddleware.Secure())
	if r.options.BodyLimit != "" {
		e.Use(echoMiddleware.BodyLimit(r.options.BodyLimit))
	}

	e.GET("/", r.registration.Health)
	e.POST(registerPath, r.registration.Register)
	e.POST("/verify-otp", r.registration.VerifyOTP)

	return e
}

// errorHandler renders echo errors in the same shape as domain errors.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		if m, ok := httpErr.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(code)
		}
	}

	// A body over the limit on /register is an oversized upload.
	if code == http.StatusRequestEntityTooLarge && c.Path() == registerPath {
		code = http.StatusBadRequest
		message = upload.ReasonSize
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, handler.ErrorResponse{Success: false, Message: message})
}
