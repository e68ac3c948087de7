package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/otp-signup/internal/model"
)

// Claims carries a typed payload next to the registered JWT claims.
type Claims[T any] struct {
	jwt.RegisteredClaims
	// Expiry is the exact expiry in unix nanoseconds; exp only has second precision.
	Expiry int64  `json:"exp_ns"`
	Kind   string `json:"typ"`
	Data   T      `json:"data"`
}

var _ model.TokenCodec[model.PendingRegistration] = (*Codec[model.PendingRegistration])(nil)

// Codec signs payloads of one shape into HMAC-SHA256 JWTs bound to a kind.
type Codec[T any] struct {
	secretKey []byte
	kind      string
	now       func() time.Time
}

// Option configures a Codec.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the time source used for issuing and validating tokens.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// NewCodec creates a codec for tokens of the given kind.
func NewCodec[T any](secretKey string, kind string, opts ...Option) *Codec[T] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Codec[T]{
		secretKey: []byte(secretKey),
		kind:      kind,
		now:       o.now,
	}
}

// NewPendingCodec creates the codec for staged registrations.
func NewPendingCodec(secretKey string, opts ...Option) *Codec[model.PendingRegistration] {
	return NewCodec[model.PendingRegistration](secretKey, model.TokenKindPending, opts...)
}

// NewIdentityCodec creates the codec for auth tokens.
func NewIdentityCodec(secretKey string, opts ...Option) *Codec[model.ConfirmedIdentity] {
	return NewCodec[model.ConfirmedIdentity](secretKey, model.TokenKindIdentity, opts...)
}

// Encode signs payload into a token valid for ttl.
func (c *Codec[T]) Encode(payload T, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		return "", fmt.Errorf("token ttl must be positive, got %s", ttl)
	}

	now := c.now()
	expiry := now.Add(ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims[T]{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(ceilSecond(expiry)),
		},
		Expiry: expiry.UnixNano(),
		Kind:   c.kind,
		Data:   payload,
	})

	tokenString, err := token.SignedString(c.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", c.kind, err)
	}

	return tokenString, nil
}

// Decode verifies the signature and expiry of tokenString and returns its payload.
// The returned error always wraps model.ErrInvalidToken.
func (c *Codec[T]) Decode(tokenString string) (model.Envelope[T], error) {
	if tokenString == "" {
		return model.Envelope[T]{}, model.ErrMissingToken
	}

	claims := &Claims[T]{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return c.secretKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return model.Envelope[T]{}, classify(err)
	}

	if claims.Kind != c.kind {
		return model.Envelope[T]{}, fmt.Errorf("%w: token kind %q", model.ErrMalformedToken, claims.Kind)
	}
	if claims.ID == "" {
		return model.Envelope[T]{}, fmt.Errorf("%w: token id missing", model.ErrMalformedToken)
	}
	if claims.Expiry <= 0 {
		return model.Envelope[T]{}, fmt.Errorf("%w: exact expiry missing", model.ErrMalformedToken)
	}
	expiry := time.Unix(0, claims.Expiry)
	if !c.now().Before(expiry) {
		return model.Envelope[T]{}, fmt.Errorf("%w: expired at %s", model.ErrExpiredToken, expiry.Format(time.RFC3339Nano))
	}

	envelope := model.Envelope[T]{
		ID:        claims.ID,
		ExpiresAt: expiry,
		Payload:   claims.Data,
	}
	if claims.IssuedAt != nil {
		envelope.IssuedAt = claims.IssuedAt.Time
	}

	return envelope, nil
}

// ceilSecond rounds t up to the next whole second.
func ceilSecond(t time.Time) time.Time {
	truncated := t.Truncate(time.Second)
	if truncated.Before(t) {
		return truncated.Add(time.Second)
	}
	return truncated
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", model.ErrTamperedToken, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", model.ErrExpiredToken, err)
	default:
		return fmt.Errorf("%w: %v", model.ErrMalformedToken, err)
	}
}
