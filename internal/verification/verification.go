// Package verification issues and checks the numeric codes mailed to users
// to confirm their email address.
package verification

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"time"
)

const (
	// CodeLength is the number of digits in a verification code.
	CodeLength = 6
	// MaxAttempts is how many wrong guesses a pending code survives.
	MaxAttempts = 5
)

// Store keeps at most one pending code per user.
type Store interface {
	// Save replaces any pending code of the user.
	Save(ctx context.Context, userID, code string, ttl time.Duration) error
	// Verify reports whether code matches the pending code. A matching code
	// is consumed, and so is a code that has seen MaxAttempts wrong guesses.
	// Concurrent calls with the right code succeed at most once.
	Verify(ctx context.Context, userID, code string) (bool, error)
}

// NewCode returns a random zero-padded numeric code.
func NewCode() (string, error) {
	limit := big.NewInt(1)
	for i := 0; i < CodeLength; i++ {
		limit.Mul(limit, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", fmt.Errorf("generate verification code: %w", err)
	}
	return fmt.Sprintf("%0*d", CodeLength, n.Int64()), nil
}

func codesEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
