// Package id generates random tokens for codes, slugs and legacy card numbers.
package id

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

const (
	// Upper-case alphanumerics used for activation codes.
	AlphabetCode = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// Lower-case base36 used for slug suffixes.
	AlphabetBase36 = "0123456789abcdefghijklmnopqrstuvwxyz"
	// Digits used for legacy numeric card codes.
	AlphabetDigits = "0123456789"
)

// Generate returns a cryptographically random token of length drawn from alphabet.
func Generate(alphabet string, length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("invalid token length %d", length)
	}
	if len(alphabet) < 2 {
		return "", fmt.Errorf("alphabet too small")
	}

	result := make([]byte, length)
	max := big.NewInt(int64(len(alphabet)))
	for i := range result {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = alphabet[n.Int64()]
	}
	return string(result), nil
}

// NewCode returns an upper-case alphanumeric activation code.
func NewCode(length int) (string, error) {
	return Generate(AlphabetCode, length)
}

// NewNumeric returns a numeric token that never starts with zero.
func NewNumeric(length int) (string, error) {
	first, err := Generate(AlphabetDigits[1:], 1)
	if err != nil {
		return "", err
	}
	if length == 1 {
		return first, nil
	}
	rest, err := Generate(AlphabetDigits, length-1)
	if err != nil {
		return "", err
	}
	return first + rest, nil
}

// NewBase36 returns a lower-case base36 token.
func NewBase36(length int) (string, error) {
	return Generate(AlphabetBase36, length)
}

// ErrSpaceExhausted means every attempt produced a token that was already taken.
var ErrSpaceExhausted = errors.New("token space exhausted")

// DefaultMaxAttempts bounds GenerateUnique when the caller passes zero.
const DefaultMaxAttempts = 10

// GenerateUnique draws tokens from next until taken reports one as free.
func GenerateUnique(ctx context.Context, maxAttempts int, next func() (string, error), taken func(ctx context.Context, token string) (bool, error)) (string, error) {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		token, err := next()
		if err != nil {
			return "", err
		}
		exists, err := taken(ctx, token)
		if err != nil {
			return "", fmt.Errorf("failed to check token uniqueness: %w", err)
		}
		if !exists {
			return token, nil
		}
	}
	return "", fmt.Errorf("%w after %d attempts", ErrSpaceExhausted, maxAttempts)
}
