package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/dtroode/otp-signup/internal/logger"
	"github.com/dtroode/otp-signup/internal/model"
	"github.com/dtroode/otp-signup/internal/otp"
)

// Registration runs the two-phase sign-up: Submit stages the registration in a
// pending token and mails the code, Verify checks the code and commits.
type Registration struct {
	hasher     model.Hasher
	codes      model.CodeGenerator
	pending    model.TokenCodec[model.PendingRegistration]
	notifier   model.Notifier
	committer  *Committer
	pendingTTL time.Duration
	validate   *validator.Validate
	logger     *logger.Logger
}

func NewRegistration(
	hasher model.Hasher,
	codes model.CodeGenerator,
	pending model.TokenCodec[model.PendingRegistration],
	notifier model.Notifier,
	committer *Committer,
	pendingTTL time.Duration,
	validate *validator.Validate,
	logger *logger.Logger,
) *Registration {
	return &Registration{
		hasher:     hasher,
		codes:      codes,
		pending:    pending,
		notifier:   notifier,
		committer:  committer,
		pendingTTL: pendingTTL,
		validate:   validate,
		logger:     logger,
	}
}

// Submit hashes the password, issues a code and seals everything into a pending token.
// The code is mailed only once the token exists; a delivery failure returns no token.
func (r *Registration) Submit(ctx context.Context, form model.RegistrationForm, file model.FileRef) (model.Submission, error) {
	if file.Empty() {
		return model.Submission{}, model.NewValidationError("file upload failed", "file")
	}
	if err := r.validateForm(form); err != nil {
		return model.Submission{}, err
	}

	r.logger.Debug("Registration service: submitting registration",
		"email", form.Email,
		"file", file.FileName)

	hash, err := r.hasher.Hash(form.Password)
	if err != nil {
		r.logger.Error("Registration service: failed to hash password",
			"email", form.Email,
			"error", err.Error())
		return model.Submission{}, model.NewDependencyError(model.DependencyHasher, err)
	}

	code, err := r.codes.Generate()
	if err != nil {
		r.logger.Error("Registration service: failed to generate code",
			"email", form.Email,
			"error", err.Error())
		return model.Submission{}, model.NewDependencyError(model.DependencyCodes, err)
	}

	role := form.Role
	if role == "" {
		role = model.DefaultRole
	}

	payload := model.PendingRegistration{
		Name:         form.Name,
		Email:        form.Email,
		Mobile:       form.Mobile,
		PasswordHash: hash,
		City:         form.City,
		Age:          form.Age,
		Role:         role,
		File:         file,
		OTP:          code,
	}

	token, err := r.pending.Encode(payload, r.pendingTTL)
	if err != nil {
		r.logger.Error("Registration service: failed to encode pending token",
			"email", form.Email,
			"error", err.Error())
		return model.Submission{}, model.NewDependencyError(model.DependencyCodec, err)
	}

	if err := r.notifier.SendCode(ctx, form.Email, code); err != nil {
		r.logger.Error("Registration service: failed to send code",
			"email", form.Email,
			"error", err.Error())
		return model.Submission{}, model.NewDependencyError(model.DependencyNotifier, err)
	}

	r.logger.Info("Registration service: registration staged",
		"email", form.Email,
		"file", file.FileName)

	return model.Submission{
		Token: token,
		File:  file,
	}, nil
}

// Verify decodes the pending token, checks the code and commits the registration.
// A mismatched code leaves the token usable for another attempt.
func (r *Registration) Verify(ctx context.Context, token, code string) (model.Confirmation, error) {
	if token == "" || code == "" {
		return model.Confirmation{}, model.NewValidationError("token and otp are required", "token", "otp")
	}

	envelope, err := r.pending.Decode(token)
	if err != nil {
		r.logger.Info("Registration service: rejected pending token",
			"error", err.Error())
		return model.Confirmation{}, err
	}

	if !otp.Verify(code, envelope.Payload.OTP) {
		r.logger.Info("Registration service: code mismatch",
			"email", envelope.Payload.Email,
			"token_id", envelope.ID)
		return model.Confirmation{}, model.ErrInvalidOTP
	}

	confirmation, err := r.committer.Commit(ctx, envelope)
	if err != nil {
		return model.Confirmation{}, err
	}

	r.logger.Info("Registration service: registration confirmed",
		"email", envelope.Payload.Email,
		"token_id", envelope.ID,
		"user_id", confirmation.UserID.String())

	return confirmation, nil
}

func (r *Registration) validateForm(form model.RegistrationForm) error {
	err := r.validate.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate registration: %w", err)
	}

	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field())
	}
	return model.NewValidationError("all fields are required", fields...)
}
