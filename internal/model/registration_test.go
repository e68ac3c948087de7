package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func pending() PendingRegistration {
	return PendingRegistration{
		Name:         "Ada",
		Email:        "ada@example.com",
		Mobile:       "+15550100",
		PasswordHash: "$2a$10$hash",
		City:         "London",
		Age:          36,
		Role:         DefaultRole,
		File: FileRef{
			FileName:     "profilePic-1-abcd.png",
			OriginalName: "me.png",
			StoredPath:   "/srv/uploads/profilePic-1-abcd.png",
		},
		OTP: "123456",
	}
}

func TestFileRef_Empty(t *testing.T) {
	full := pending().File

	tests := []struct {
		name string
		ref  FileRef
		want bool
	}{
		{name: "complete", ref: full, want: false},
		{name: "zero", ref: FileRef{}, want: true},
		{name: "no stored path", ref: FileRef{FileName: full.FileName, OriginalName: full.OriginalName}, want: true},
		{name: "no original name", ref: FileRef{FileName: full.FileName, StoredPath: full.StoredPath}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ref.Empty())
		})
	}
}

func TestPendingRegistration_Identity(t *testing.T) {
	p := pending()
	id := uuid.New()

	identity := p.Identity(id)

	assert.Equal(t, ConfirmedIdentity{
		UserID: id,
		Name:   p.Name,
		Email:  p.Email,
		Mobile: p.Mobile,
		City:   p.City,
		Age:    p.Age,
		Role:   p.Role,
		File:   p.File,
	}, identity)
}

func TestNewUser(t *testing.T) {
	p := pending()
	id := uuid.New()

	u := NewUser(id, p, "auth-token")

	assert.Equal(t, id, u.ID)
	assert.Equal(t, p.PasswordHash, u.PasswordHash)
	assert.Equal(t, p.File.FileName, u.FileName)
	assert.Equal(t, p.File.OriginalName, u.OrgName)
	assert.Equal(t, p.File.StoredPath, u.FilePath)
	assert.Equal(t, DefaultRole, u.Role)
	assert.Equal(t, "auth-token", u.Token)
	assert.True(t, u.CreatedAt.IsZero())
}
