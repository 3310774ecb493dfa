package otp

import (
	"crypto/rand"
	"math/big"
)

const (
	codeMin  = 100000
	codeSpan = 900000
)

// Generator produces one-time numeric codes.
type Generator interface {
	// Generate returns a new 6-digit decimal code as a string.
	Generate() (string, error)
}

// NumericCode implements Generator using crypto/rand.
//
// Codes are uniformly distributed in [100000, 999999], so the string form is
// always exactly six digits.
type NumericCode struct{}

// NewNumericCode returns a NumericCode generator.
func NewNumericCode() *NumericCode {
	return &NumericCode{}
}

// Generate returns a new 6-digit decimal code as a string.
func (*NumericCode) Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpan))
	if err != nil {
		return "", err
	}

	return big.NewInt(codeMin + n.Int64()).String(), nil
}
