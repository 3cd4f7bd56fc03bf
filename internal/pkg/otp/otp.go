package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Length matches the codes the email templates were written for.
const Length = 4

// Generate returns a zero-padded numeric one-time code.
func Generate() (string, error) {
	max := big.NewInt(1)
	for range Length {
		max.Mul(max, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}

	return fmt.Sprintf("%0*d", Length, n), nil
}
