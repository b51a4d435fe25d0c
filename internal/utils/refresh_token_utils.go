package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashRefreshToken derives the SHA256 digest stored in place of the raw
// refresh token. Only the digest ever touches the database.
func HashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// CompareRefreshTokenHash reports whether a raw refresh token matches its
// stored digest.
func CompareRefreshTokenHash(token string, storedHash string) bool {
	return HashRefreshToken(token) == storedHash
}
