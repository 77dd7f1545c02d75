// Package credentials provides the single verification abstraction behind
// the three role login schemes: admins and customers hold bcrypt-hashed
// secrets, collectors authenticate with their phone number.
package credentials

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// Verifier checks a presented secret against a stored credential.
type Verifier interface {
	Verify(stored, presented string) bool
}

// HashedSecret verifies against a bcrypt hash.
type HashedSecret struct{}

func (HashedSecret) Verify(stored, presented string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(presented)) == nil
}

// Hash produces the bcrypt hash stored for admins and customers.
func Hash(secret string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DerivedFromField verifies by plain equality against a designated document
// field; collectors use their phone number as the password.
type DerivedFromField struct{}

func (DerivedFromField) Verify(stored, presented string) bool {
	if stored == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) == 1
}
