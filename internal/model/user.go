package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore persists confirmed registrations.
type UserStore interface {
	Create(ctx context.Context, user User) (User, error)
}

// User is the durable row written once per confirmed registration.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	Mobile       string
	PasswordHash string
	City         string
	Age          int
	FileName     string
	OrgName      string
	FilePath     string
	Role         string
	Token        string
	CreatedAt    time.Time
}

// NewUser builds the durable row for a verified registration.
func NewUser(id uuid.UUID, p PendingRegistration, authToken string) User {
	return User{
		ID:           id,
		Name:         p.Name,
		Email:        p.Email,
		Mobile:       p.Mobile,
		PasswordHash: p.PasswordHash,
		City:         p.City,
		Age:          p.Age,
		FileName:     p.File.FileName,
		OrgName:      p.File.OriginalName,
		FilePath:     p.File.StoredPath,
		Role:         p.Role,
		Token:        authToken,
	}
}
