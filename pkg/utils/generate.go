package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

// ==================== FILE NAMES ====================

// GenerateFileName returns a random name keeping the given extension (".jpg").
func GenerateFileName(ext string) string {
	return uuid.NewString() + ext
}

// ==================== EMAIL CODE ====================

// GenerateCode returns a numeric code of the given length, 6 when length <= 0.
func GenerateCode(length int) (string, error) {
	if length <= 0 {
		length = 6
	}

	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("generate code: %w", err)
		}
		code[i] = byte('0' + n.Int64())
	}

	return string(code), nil
}
