package middleware

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/otp-signup/internal/logger"
)

func TestLogging_Handle(t *testing.T) {
	tests := []struct {
		name       string
		handler    echo.HandlerFunc
		wantStatus int
		wantLog    []string
	}{
		{
			name: "success",
			handler: func(c echo.Context) error {
				return c.String(http.StatusOK, "ok")
			},
			wantStatus: http.StatusOK,
			wantLog:    []string{`msg="HTTP request completed"`, "status=200", "path=/register", "request_id=req-1"},
		},
		{
			name: "handler error",
			handler: func(c echo.Context) error {
				return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "too big")
			},
			wantStatus: http.StatusRequestEntityTooLarge,
			wantLog:    []string{`msg="HTTP request failed"`, "status=413"},
		},
		{
			name: "plain error",
			handler: func(c echo.Context) error {
				return errors.New("boom")
			},
			wantStatus: http.StatusInternalServerError,
			wantLog:    []string{`msg="HTTP request failed"`, "status=500", "error=boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			lg := NewLogging(logger.NewWithWriter(&buf, int(slog.LevelInfo), logger.FormatText))

			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/register", nil)
			req.Header.Set(echo.HeaderXRequestID, "req-1")
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := lg.Handle(tt.handler)(c)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, rec.Code)
			for _, want := range tt.wantLog {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}
