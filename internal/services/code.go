package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 5
)

// RandomCodeGenerator produces short human-enterable registration codes,
// each character drawn uniformly from A-Z0-9.
type RandomCodeGenerator struct{}

// NewRandomCodeGenerator creates a new code generator
func NewRandomCodeGenerator() *RandomCodeGenerator {
	return &RandomCodeGenerator{}
}

// Generate returns a fresh 5-character registration code
func (g *RandomCodeGenerator) Generate() (string, error) {
	alphabetSize := big.NewInt(int64(len(codeAlphabet)))
	code := make([]byte, codeLength)

	for i := range code {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("failed to generate registration code: %w", err)
		}
		code[i] = codeAlphabet[n.Int64()]
	}

	return string(code), nil
}
