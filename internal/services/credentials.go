package services

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/matthewhartstonge/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Credentials encodes and checks customer passwords. The account store only
// talks to this interface, so the storage scheme can change without touching
// callers.
type Credentials interface {
	Hash(raw string) (string, error)
	Verify(stored, raw string) (bool, error)
}

// CredentialsFor returns the scheme named by PASSWORD_SCHEME.
func CredentialsFor(scheme string) (Credentials, error) {
	switch scheme {
	case "", "bcrypt":
		return BcryptCredentials{Cost: 12}, nil
	case "argon2":
		return Argon2Credentials{Config: argon2.DefaultConfig()}, nil
	case "plain":
		return PlainCredentials{}, nil
	default:
		return nil, fmt.Errorf("unknown password scheme %q", scheme)
	}
}

type BcryptCredentials struct{ Cost int }

func (b BcryptCredentials) Hash(raw string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(raw), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (BcryptCredentials) Verify(stored, raw string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(raw))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, err
	}
}

type Argon2Credentials struct{ Config argon2.Config }

func (a Argon2Credentials) Hash(raw string) (string, error) {
	encoded, err := a.Config.HashEncoded([]byte(raw))
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func (Argon2Credentials) Verify(stored, raw string) (bool, error) {
	return argon2.VerifyEncoded([]byte(raw), []byte(stored))
}

// PlainCredentials stores passwords as given. Only for legacy data.
type PlainCredentials struct{}

func (PlainCredentials) Hash(raw string) (string, error) { return raw, nil }

func (PlainCredentials) Verify(stored, raw string) (bool, error) {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(raw)) == 1, nil
}
