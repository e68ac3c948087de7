package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/otp-signup/internal/logger"
	"github.com/dtroode/otp-signup/internal/model"
)

// TokenCookie carries the pending registration token between /register and /verify-otp.
const TokenCookie = "token"

type RegistrationService interface {
	Submit(ctx context.Context, form model.RegistrationForm, file model.FileRef) (model.Submission, error)
	Verify(ctx context.Context, token, code string) (model.Confirmation, error)
}

type Uploader interface {
	Save(ctx context.Context, fh *multipart.FileHeader) (model.FileRef, error)
	Discard(ctx context.Context, ref model.FileRef) error
}

// CookieOptions controls the token cookie set on a successful registration.
type CookieOptions struct {
	Secure bool
	MaxAge time.Duration
}

type Registration struct {
	service   RegistrationService
	uploader  Uploader
	fileField string
	cookie    CookieOptions
	logger    *logger.Logger
}

func NewRegistration(service RegistrationService, uploader Uploader, fileField string, cookie CookieOptions, logger *logger.Logger) *Registration {
	return &Registration{
		service:   service,
		uploader:  uploader,
		fileField: fileField,
		cookie:    cookie,
		logger:    logger,
	}
}

type registerRequest struct {
	Name     string `form:"name" validate:"required"`
	Email    string `form:"email" validate:"required"`
	Mobile   string `form:"mobile" validate:"required"`
	Password string `form:"password" validate:"required"`
	City     string `form:"city" validate:"required"`
	Age      string `form:"age" validate:"required"`
	Role     string `form:"role"`
}

type registerResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
	File    string `json:"file"`
}

// otpValue accepts the code as a JSON string or number.
type otpValue string

func (v *otpValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = otpValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("otp must be a string or a number: %w", err)
	}
	*v = otpValue(n.String())
	return nil
}

type verifyRequest struct {
	OTP otpValue `json:"otp" form:"otp"`
}

type verifyResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	AuthToken string `json:"authToken"`
}

// Health answers the liveness probe.
func (h *Registration) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Server is running!")
}

// Register handles POST /register.
func (h *Registration) Register(c echo.Context) error {
	ctx := c.Request().Context()

	fh, err := c.FormFile(h.fileField)
	if err != nil {
		if tooLarge(err) {
			return err
		}
		h.logger.Info("Registration handler: no file in request",
			"error", err.Error())
		return handleError(c, model.NewValidationError("file upload failed", "file"))
	}

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return handleError(c, model.NewValidationError("all fields are required"))
	}
	if err := c.Validate(&req); err != nil {
		return handleError(c, model.NewValidationError("all fields are required"))
	}
	age, err := strconv.Atoi(strings.TrimSpace(req.Age))
	if err != nil {
		return handleError(c, model.NewValidationError("all fields are required", "Age"))
	}

	ref, err := h.uploader.Save(ctx, fh)
	if err != nil {
		h.logger.Info("Registration handler: upload refused",
			"file", fh.Filename,
			"error", err.Error())
		return handleUploadError(c, err)
	}

	form := model.RegistrationForm{
		Name:     req.Name,
		Email:    req.Email,
		Mobile:   req.Mobile,
		Password: req.Password,
		City:     req.City,
		Age:      age,
		Role:     req.Role,
	}

	sub, err := h.service.Submit(ctx, form, ref)
	if err != nil {
		if dErr := h.uploader.Discard(context.WithoutCancel(ctx), ref); dErr != nil {
			h.logger.Error("Registration handler: failed to discard upload",
				"file", ref.FileName,
				"error", dErr.Error())
		}
		return handleError(c, err)
	}

	c.SetCookie(&http.Cookie{
		Name:     TokenCookie,
		Value:    sub.Token,
		Path:     "/",
		MaxAge:   int(h.cookie.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteStrictMode,
	})

	return c.JSON(http.StatusOK, registerResponse{
		Success: true,
		Message: "Registration submitted!",
		Token:   sub.Token,
		File:    sub.File.FileName,
	})
}

// VerifyOTP handles POST /verify-otp.
func (h *Registration) VerifyOTP(c echo.Context) error {
	var token string
	if cookie, err := c.Cookie(TokenCookie); err == nil {
		token = cookie.Value
	}

	var req verifyRequest
	if err := c.Bind(&req); err != nil {
		if tooLarge(err) {
			return err
		}
		req.OTP = ""
	}
	code := string(req.OTP)
	if token == "" || code == "" {
		return handleError(c, model.NewValidationError("token and otp are required", "token", "otp"))
	}

	conf, err := h.service.Verify(c.Request().Context(), token, code)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(http.StatusOK, verifyResponse{
		Success:   true,
		Message:   "OTP verified successfully",
		AuthToken: conf.AuthToken,
	})
}

// tooLarge reports whether err comes from the body limit middleware.
func tooLarge(err error) bool {
	var httpErr *echo.HTTPError
	return errors.As(err, &httpErr) && httpErr.Code == http.StatusRequestEntityTooLarge
}
