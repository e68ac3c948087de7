package model

import (
	"github.com/google/uuid"
)

// DefaultRole is stored when a registration does not name a role.
const DefaultRole = "user"

// RegistrationForm is the validated boundary shape of a registration request.
type RegistrationForm struct {
	Name     string `validate:"required"`
	Email    string `validate:"required"`
	Mobile   string `validate:"required"`
	Password string `validate:"required,max=72"`
	City     string `validate:"required"`
	Age      int    `validate:"required,gt=0"`
	Role     string
}

// FileRef points at an uploaded profile image owned by the upload collaborator.
type FileRef struct {
	FileName     string `json:"file_name"`
	OriginalName string `json:"org_name"`
	StoredPath   string `json:"file_path"`
}

// Empty reports whether the reference is missing any part of the triple.
func (f FileRef) Empty() bool {
	return f.FileName == "" || f.OriginalName == "" || f.StoredPath == ""
}

// PendingRegistration is the payload staged inside the pending token.
// It never carries the plaintext password.
type PendingRegistration struct {
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Mobile       string  `json:"mobile"`
	PasswordHash string  `json:"password"`
	City         string  `json:"city"`
	Age          int     `json:"age"`
	Role         string  `json:"role"`
	File         FileRef `json:"file"`
	OTP          string  `json:"otp"`
}

// ConfirmedIdentity is the payload of the long-lived auth token.
type ConfirmedIdentity struct {
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Mobile string    `json:"mobile"`
	City   string    `json:"city"`
	Age    int       `json:"age"`
	Role   string    `json:"role"`
	File   FileRef   `json:"file"`
}

// Identity derives the confirmed identity of a verified registration.
func (p PendingRegistration) Identity(userID uuid.UUID) ConfirmedIdentity {
	return ConfirmedIdentity{
		UserID: userID,
		Name:   p.Name,
		Email:  p.Email,
		Mobile: p.Mobile,
		City:   p.City,
		Age:    p.Age,
		Role:   p.Role,
		File:   p.File,
	}
}

// Submission is the outcome of a successful registration submit.
type Submission struct {
	Token string
	File  FileRef
}

// Confirmation is the outcome of a successful OTP verification.
type Confirmation struct {
	UserID    uuid.UUID
	AuthToken string
}
