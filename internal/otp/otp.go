// Package otp generates and checks one-time passcodes. Codes carry no
// server-side state: the caller embeds them in a signed token.
package otp

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base32"
	"fmt"
	"math/big"
	"strings"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/hotp"

	"github.com/dtroode/otp-signup/internal/model"
)

// Supported alphabets.
const (
	AlphabetNumeric      = "numeric"
	AlphabetAlphanumeric = "alphanumeric"
)

// Length bounds.
const (
	MinLength     = 4
	MaxLength     = 8
	DefaultLength = 6
)

const (
	alphanumericChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	secretSize        = 20
)

var _ model.CodeGenerator = (*Generator)(nil)

// Generator produces fixed-length codes from a cryptographically strong source.
type Generator struct {
	length   int
	alphabet string
}

// NewGenerator creates a generator for codes of the given length and alphabet.
func NewGenerator(length int, alphabet string) (*Generator, error) {
	if length < MinLength || length > MaxLength {
		return nil, fmt.Errorf("otp length %d out of range [%d, %d]", length, MinLength, MaxLength)
	}
	switch alphabet {
	case AlphabetNumeric, AlphabetAlphanumeric:
	default:
		return nil, fmt.Errorf("unknown otp alphabet %q", alphabet)
	}
	return &Generator{length: length, alphabet: alphabet}, nil
}

// Generate returns a fresh code.
func (g *Generator) Generate() (string, error) {
	if g.alphabet == AlphabetAlphanumeric {
		return g.alphanumeric()
	}
	return g.numeric()
}

// numeric derives an HOTP code from a secret used exactly once.
func (g *Generator) numeric() (string, error) {
	secret := make([]byte, secretSize)
	if _, err := rand.Read(secret); err != nil {
		return "", fmt.Errorf("failed to read random secret: %w", err)
	}

	code, err := hotp.GenerateCodeCustom(
		base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(secret),
		0,
		hotp.ValidateOpts{
			Digits:    otp.Digits(g.length),
			Algorithm: otp.AlgorithmSHA1,
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate hotp code: %w", err)
	}

	return code, nil
}

func (g *Generator) alphanumeric() (string, error) {
	var sb strings.Builder
	sb.Grow(g.length)

	limit := big.NewInt(int64(len(alphanumericChars)))
	for range g.length {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("failed to read random index: %w", err)
		}
		sb.WriteByte(alphanumericChars[n.Int64()])
	}

	return sb.String(), nil
}

// Verify reports whether submitted equals expected byte for byte.
// An empty submission never matches.
func Verify(submitted, expected string) bool {
	if submitted == "" || expected == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(submitted), []byte(expected)) == 1
}
