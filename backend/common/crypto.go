package common

import (
	"crypto/sha1"
	"encoding/hex"
)

// HashPassword returns the hex SHA-1 digest of a password. Login looks a
// user up by (email, digest) equality, which requires a deterministic
// unsalted digest rather than a salted KDF.
func HashPassword(password string) string {
	sum := sha1.Sum([]byte(password))
	return hex.EncodeToString(sum[:])
}
