// Package auth provides a high-level API for persisting and retrieving the AfroRhythm session credential.
package auth

import (
	"errors"

	"github.com/zalando/go-keyring"
)

const (
	service = "afro"
	user    = "session-token"
)

// ErrNoSession indicates that no session credential is stored, i.e. the user is not logged in.
var ErrNoSession = errors.New("authentication required: no active session")

// SetToken persists the session token to the system keyring.
func SetToken(token string) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}
	return keyring.Set(service, user, token)
}

// Token retrieves the session token from the system keyring.
// Returns ErrNoSession when no credential is stored.
func Token() (string, error) {
	token, err := keyring.Get(service, user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNoSession
		}
		return "", err
	}
	return token, nil
}

// DeleteToken removes the session token from the system keyring.
func DeleteToken() error {
	err := keyring.Delete(service, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}

// HasToken reports whether a session credential is currently stored.
func HasToken() bool {
	_, err := Token()
	return err == nil
}
