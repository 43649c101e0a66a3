// Package tokenstore persists the authenticated session ({token, user}) across
// CLI invocations. Two backends are provided: the OS keyring (default) and a
// local sqlite file for headless machines without a credential manager.
//
// A session is stored under two stable keys per environment, one for the
// bearer token and one for the serialized user object. Load never fails on
// missing or malformed data; it degrades to the empty session instead, since
// durable storage is untrusted input.
package tokenstore

import "encoding/json"

// Session is the durable authentication state: a bearer token and the
// serialized user object. The user is opaque to this package and is
// round-tripped as raw JSON.
type Session struct {
	Token string
	User  json.RawMessage
}

// Empty reports whether the session is the "not authenticated" sentinel.
func (s Session) Empty() bool {
	return s.Token == ""
}

// Store defines the interface for session storage operations.
// This allows us to mock the keyring in tests.
type Store interface {
	// Save persists the session for the given environment. Both keys are
	// written; on partial failure the token key is rolled back so a later
	// Load cannot observe a half-written session.
	Save(env string, session Session) error

	// Load returns the previously saved session, or the empty session if
	// either key is absent or the stored user is not valid JSON.
	Load(env string) (Session, error)

	// Clear removes both keys. Clearing an absent session is a no-op.
	Clear(env string) error
}

// validSession reports whether a loaded token/user pair is usable.
func validSession(token string, user []byte) bool {
	return token != "" && json.Valid(user)
}
