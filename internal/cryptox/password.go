// Package cryptox wraps the primitives YogaTrack needs: password hashing and
// sealing of persisted documents.
package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/yogatrack/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	saltLen      = 16
)

var ErrMalformedHash = errors.New("malformed password hash")

// DeriveKey stretches password+pepper with argon2id.
func DeriveKey(password, pepper, salt []byte) []byte {
	material := make([]byte, 0, len(password)+len(pepper))
	material = append(material, password...)
	material = append(material, pepper...)
	defer common.WipeByteArray(material)

	return argon2.IDKey(material, salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

// HashPassword returns a self-describing hash "argon2id$<salt>$<key>" using a
// fresh random salt. pepper is the application-wide secret.
func HashPassword(password, pepper string) string {
	salt := common.GenerateRandByteArray(saltLen)
	key := DeriveKey([]byte(password), []byte(pepper), salt)

	enc := base64.RawStdEncoding
	return fmt.Sprintf("argon2id$%s$%s", enc.EncodeToString(salt), enc.EncodeToString(key))
}

// VerifyPassword checks password against a hash produced by HashPassword in
// constant time.
func VerifyPassword(encoded, password, pepper string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 3 || parts[0] != "argon2id" {
		return false, ErrMalformedHash
	}

	enc := base64.RawStdEncoding
	salt, err := enc.DecodeString(parts[1])
	if err != nil {
		return false, ErrMalformedHash
	}
	want, err := enc.DecodeString(parts[2])
	if err != nil {
		return false, ErrMalformedHash
	}

	got := DeriveKey([]byte(password), []byte(pepper), salt)
	return subtle.ConstantTimeCompare(want, got) == 1, nil
}
