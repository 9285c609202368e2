package util

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/crypto/argon2"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 72
)

// Argon2Params are the argon2id cost settings used for locally stored
// credentials.
type Argon2Params struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
	SaltLen int
	KeyLen  uint32
}

var DefaultArgon2Params = Argon2Params{
	Time:    1,
	Memory:  64 * 1024,
	Threads: 4,
	SaltLen: 16,
	KeyLen:  32,
}

var errEmptyPassword = errors.New("password cannot be empty")

// Derive hashes password under a fresh random salt.
func (p Argon2Params) Derive(password string) (hash, salt []byte, err error) {
	if password == "" {
		return nil, nil, errEmptyPassword
	}
	salt = make([]byte, p.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, fmt.Errorf("read salt: %w", err)
	}
	return p.key(password, salt), salt, nil
}

func (p Argon2Params) Verify(password string, salt, hash []byte) bool {
	if password == "" || len(salt) == 0 || len(hash) != int(p.KeyLen) {
		return false
	}
	return subtle.ConstantTimeCompare(p.key(password, salt), hash) == 1
}

func (p Argon2Params) key(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, p.Time, p.Memory, p.Threads, p.KeyLen)
}

// ValidatePassword enforces the password policy for new passwords and names
// every requirement the candidate misses.
func ValidatePassword(password string) error {
	switch n := len(password); {
	case n < minPasswordLength:
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	case n > maxPasswordLength:
		return fmt.Errorf("password must be at most %d characters long", maxPasswordLength)
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		hasUpper = hasUpper || unicode.IsUpper(r)
		hasLower = hasLower || unicode.IsLower(r)
		hasDigit = hasDigit || unicode.IsDigit(r)
		hasSpecial = hasSpecial || unicode.IsPunct(r) || unicode.IsSymbol(r)
	}

	var missing []string
	if !hasUpper {
		missing = append(missing, "an uppercase letter")
	}
	if !hasLower {
		missing = append(missing, "a lowercase letter")
	}
	if !hasDigit {
		missing = append(missing, "a number")
	}
	if !hasSpecial {
		missing = append(missing, "a special character")
	}
	if len(missing) > 0 {
		return errors.New("password must include " + strings.Join(missing, ", "))
	}
	return nil
}
