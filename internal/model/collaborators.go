package model

import (
	"context"
	"time"
)

// Hasher one-way transforms a plaintext password.
type Hasher interface {
	Hash(plaintext string) (string, error)
}

// CodeGenerator produces fresh one-time passcodes.
type CodeGenerator interface {
	Generate() (string, error)
}

// Notifier delivers a passcode to the claimed address.
type Notifier interface {
	SendCode(ctx context.Context, address, code string) error
}

// ConsumptionGuard marks a pending token as consumed.
// Acquire returns false if the token was already consumed.
type ConsumptionGuard interface {
	Acquire(ctx context.Context, tokenID string, until time.Time) (bool, error)
	Release(ctx context.Context, tokenID string) error
}
