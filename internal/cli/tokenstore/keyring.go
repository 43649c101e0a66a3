package tokenstore

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const service = "schedulr-cli"

// tokenKey returns the keyring key holding the bearer token for an environment
func tokenKey(env string) string {
	return fmt.Sprintf("token-%s", env)
}

// userKey returns the keyring key holding the serialized user for an environment
func userKey(env string) string {
	return fmt.Sprintf("user-%s", env)
}

// KeyringStore persists sessions in the OS keychain/credential manager.
type KeyringStore struct{}

// NewKeyringStore returns a Store backed by the OS keyring.
func NewKeyringStore() *KeyringStore {
	return &KeyringStore{}
}

func (k *KeyringStore) Save(env string, session Session) error {
	if err := keyring.Set(service, tokenKey(env), session.Token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	if err := keyring.Set(service, userKey(env), string(session.User)); err != nil {
		// Roll back the token so the stored pair stays consistent.
		_ = keyring.Delete(service, tokenKey(env))
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (k *KeyringStore) Load(env string) (Session, error) {
	token, err := keyring.Get(service, tokenKey(env))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return Session{}, nil
		}
		return Session{}, fmt.Errorf("failed to load token: %w", err)
	}

	user, err := keyring.Get(service, userKey(env))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return Session{}, nil
		}
		return Session{}, fmt.Errorf("failed to load user: %w", err)
	}

	if !validSession(token, []byte(user)) {
		return Session{}, nil
	}

	return Session{Token: token, User: []byte(user)}, nil
}

func (k *KeyringStore) Clear(env string) error {
	for _, key := range []string{tokenKey(env), userKey(env)} {
		if err := keyring.Delete(service, key); err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				continue // Already deleted
			}
			return fmt.Errorf("failed to delete %s: %w", key, err)
		}
	}
	return nil
}
