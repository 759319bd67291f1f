// Package crypto hashes and verifies user passwords with bcrypt.
package crypto

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used when none is configured.
const DefaultCost = bcrypt.DefaultCost

// HashPassword hashes the provided password using bcrypt.
// A cost outside bcrypt's range falls back to DefaultCost.
func HashPassword(ctx context.Context, password string, cost int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("crypto.HashPassword: %w", err)
	}
	return string(hash), nil
}

// ComparePassword compares the hashed password with the provided password.
func ComparePassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
