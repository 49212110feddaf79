package postgres

import (
	"crypto/rand"
	"math/big"

	"github.com/oklog/ulid/v2"
)

// ULIDGenerator generates ULID-based entity IDs.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate generates a new ULID.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}

// AccountNumberGenerator produces random 12-digit account numbers.
// Uniqueness is enforced by the caller against the accounts table.
type AccountNumberGenerator struct{}

// NewAccountNumberGenerator creates a new AccountNumberGenerator.
func NewAccountNumberGenerator() *AccountNumberGenerator {
	return &AccountNumberGenerator{}
}

const accountNumberDigits = 12

// Generate returns a 12-digit numeric string, leading zeros included.
func (g *AccountNumberGenerator) Generate() string {
	digits := make([]byte, accountNumberDigits)
	max := big.NewInt(10)

	for i := range digits {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand failing means the platform RNG is broken;
			// nothing sensible to fall back to.
			panic(err)
		}
		digits[i] = byte('0' + n.Int64())
	}

	return string(digits)
}
