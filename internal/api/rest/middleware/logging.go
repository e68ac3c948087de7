package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/otp-signup/internal/logger"
)

// Logging logs every HTTP request with its outcome.
type Logging struct {
	logger *logger.Logger
}

func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// Handle logs method, path, status and duration of each request.
// Errors returned by the handler are passed to echo's error handler first so the logged status is final.
func (l *Logging) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)
		if err != nil {
			c.Error(err)
		}

		req := c.Request()
		res := c.Response()
		requestID := res.Header().Get(echo.HeaderXRequestID)
		if requestID == "" {
			requestID = req.Header.Get(echo.HeaderXRequestID)
		}

		args := []any{
			"method", req.Method,
			"path", req.URL.Path,
			"status", res.Status,
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", requestID,
		}
		if err != nil {
			l.logger.Error("HTTP request failed", append(args, "error", err.Error())...)
			return nil
		}
		l.logger.Info("HTTP request completed", args...)
		return nil
	}
}
