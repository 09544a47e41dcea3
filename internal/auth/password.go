// Package auth hashes passwords and issues and verifies bearer tokens.
package auth

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor. It is fixed so every stored hash
// costs the same to verify.
const PasswordCost = 10

// bcryptMaxBytes is the longest input bcrypt accepts.
const bcryptMaxBytes = 72

// HashPassword returns a bcrypt hash of plain with a fresh random salt.
// Passwords of any length are accepted.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(bcryptInput(plain), PasswordCost)
	if err != nil {
		return "", fmt.Errorf("auth.HashPassword: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether plain matches the bcrypt hash.
func VerifyPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), bcryptInput(plain)) == nil
}

// VerifyNoUser runs the same bcrypt comparison VerifyPassword would and
// always reports false. Call it when the account does not exist so the
// failure takes as long as a wrong password.
func VerifyNoUser(plain string) bool {
	_ = VerifyPassword(plain, dummyHash())
	return false
}

var dummyHash = sync.OnceValue(func() string {
	hash, err := HashPassword(uuid.NewString())
	if err != nil {
		panic("auth: dummy hash: " + err.Error())
	}
	return hash
})

// bcryptInput passes short passwords through and reduces longer ones to a
// 44-byte digest, so no byte of a long password is ignored.
func bcryptInput(plain string) []byte {
	if len(plain) <= bcryptMaxBytes {
		return []byte(plain)
	}
	sum := sha256.Sum256([]byte(plain))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}
