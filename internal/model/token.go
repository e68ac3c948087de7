package model

import "time"

// Token kinds bound into every signed token.
const (
	TokenKindPending  = "pending"
	TokenKindIdentity = "identity"
)

// Envelope is a decoded signed token together with its payload.
type Envelope[T any] struct {
	ID        string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Payload   T
}

// TokenCodec encodes payloads into signed expiring tokens and back.
type TokenCodec[T any] interface {
	Encode(payload T, ttl time.Duration) (string, error)
	Decode(token string) (Envelope[T], error)
}
