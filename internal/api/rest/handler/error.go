package handler

import (
	"errors"
	"net/http"
	"slices"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/otp-signup/internal/model"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

const (
	msgFileUpload     = "File upload failed!"
	msgFieldsRequired = "All fields are required!"
	msgVerifyRequired = "Token and OTP are required."
	msgInvalidToken   = "Invalid token."
	msgInvalidOTP     = "Invalid OTP."
	msgSendOTP        = "Failed to send OTP."
	msgGenerateToken  = "Failed to generate token."
	msgProcess        = "Failed to process registration."
	msgStore          = "Failed to store the data."
	msgInternal       = "internal server error"
)

var dependencyMessages = map[string]string{
	model.DependencyHasher:   msgProcess,
	model.DependencyCodes:    msgProcess,
	model.DependencyCodec:    msgGenerateToken,
	model.DependencyNotifier: msgSendOTP,
	model.DependencyStorage:  msgStore,
	model.DependencyGuard:    msgStore,
}

func writeError(c echo.Context, status int, message string) error {
	return c.JSON(status, ErrorResponse{Success: false, Message: message})
}

// handleError maps domain errors to HTTP responses.
// Token failures collapse into one message so clients cannot tell them apart.
func handleError(c echo.Context, err error) error {
	var vErr *model.ValidationError
	var rejection *model.UploadRejection
	var depErr *model.DependencyError

	switch {
	case errors.As(err, &vErr):
		switch {
		case slices.Contains(vErr.Fields, "file"):
			return writeError(c, http.StatusBadRequest, msgFileUpload)
		case slices.Contains(vErr.Fields, "token"), slices.Contains(vErr.Fields, "otp"):
			return writeError(c, http.StatusBadRequest, msgVerifyRequired)
		default:
			return writeError(c, http.StatusBadRequest, msgFieldsRequired)
		}
	case errors.As(err, &rejection):
		return writeError(c, http.StatusBadRequest, rejection.Reason)
	case errors.Is(err, model.ErrInvalidToken):
		return writeError(c, http.StatusBadRequest, msgInvalidToken)
	case errors.Is(err, model.ErrInvalidOTP):
		return writeError(c, http.StatusBadRequest, msgInvalidOTP)
	case errors.As(err, &depErr):
		msg, ok := dependencyMessages[depErr.Dependency]
		if !ok {
			msg = msgInternal
		}
		return writeError(c, http.StatusInternalServerError, msg)
	default:
		return writeError(c, http.StatusInternalServerError, msgInternal)
	}
}

// handleUploadError maps upload failures; a storage fault is reported as a failed upload.
func handleUploadError(c echo.Context, err error) error {
	var depErr *model.DependencyError
	if errors.As(err, &depErr) {
		return writeError(c, http.StatusInternalServerError, msgFileUpload)
	}
	return handleError(c, err)
}
