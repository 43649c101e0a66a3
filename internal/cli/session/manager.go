// Package session holds the client-side authentication state: the current
// {user, token} pair shared by every command, mirrored in durable storage.
//
// Contract:
//   - The manager is constructed once at startup and injected into consumers.
//   - It is either Unauthenticated (empty session) or Authenticated.
//   - Memory and durable storage never diverge observably: every commit
//     writes the store first and updates memory only on success.
//   - Subscribers see the new snapshot before the mutating call returns.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/schedulr-app/schedulr/internal/cli/tokenstore"
)

var (
	// ErrNotAuthenticated is returned when an operation requires an active
	// session. Hitting it is a precondition violation in the caller, not a
	// user-recoverable condition.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrSignInInFlight is returned when SignIn is called while another
	// sign-in attempt has not resolved yet.
	ErrSignInInFlight = errors.New("a sign-in is already in progress")
)

// Session is the in-memory authentication state. The user object is opaque
// and carried as raw JSON.
type Session struct {
	Token string
	User  json.RawMessage
}

// Authenticated reports whether a session is present.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Authenticator performs the sign-in network call.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (token string, user json.RawMessage, err error)
}

// Manager owns the process-wide session.
type Manager struct {
	auth  Authenticator
	store tokenstore.Store
	env   string

	mu          sync.Mutex
	current     Session
	subscribers []func(Session)
	signingIn   bool
}

// NewManager builds a Manager whose initial state comes from the token store,
// without any network round-trip. A stored token is trusted until the first
// authenticated call fails; validity is not verified at startup.
func NewManager(auth Authenticator, store tokenstore.Store, env string) (*Manager, error) {
	stored, err := store.Load(env)
	if err != nil {
		return nil, fmt.Errorf("failed to load stored session: %w", err)
	}

	return &Manager{
		auth:    auth,
		store:   store,
		env:     env,
		current: Session{Token: stored.Token, User: stored.User},
	}, nil
}

// Current returns a snapshot of the session.
func (m *Manager) Current() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Token returns the current bearer token. It satisfies client.TokenSource.
func (m *Manager) Token() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.current.Authenticated() {
		return "", ErrNotAuthenticated
	}
	return m.current.Token, nil
}

// Subscribe registers fn to be called with the new snapshot on every session
// change. Callbacks run synchronously before the mutating operation returns.
func (m *Manager) Subscribe(fn func(Session)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribers = append(m.subscribers, fn)
}

// SignIn authenticates and, on success, commits the session to durable
// storage and memory. On any failure the prior state is left untouched.
// Overlapping calls are serialized: a second SignIn while one is pending
// fails with ErrSignInInFlight.
func (m *Manager) SignIn(ctx context.Context, email, password string) error {
	m.mu.Lock()
	if m.signingIn {
		m.mu.Unlock()
		return ErrSignInInFlight
	}
	m.signingIn = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.signingIn = false
		m.mu.Unlock()
	}()

	token, user, err := m.auth.Authenticate(ctx, email, password)
	if err != nil {
		return err
	}

	next := Session{Token: token, User: user}
	return m.commit(next)
}

// SignOut clears the session from memory and durable storage. Calling it
// while already unauthenticated is a no-op.
func (m *Manager) SignOut() error {
	m.mu.Lock()
	if !m.current.Authenticated() {
		m.mu.Unlock()
		return nil
	}
	if err := m.store.Clear(m.env); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("failed to clear stored session: %w", err)
	}
	m.current = Session{}
	subs := slices.Clone(m.subscribers)
	m.mu.Unlock()

	for _, fn := range subs {
		fn(Session{})
	}
	return nil
}

// UpdateUser replaces the user object of the active session, keeping the
// token. It is the only mutation path for profile and avatar changes.
// Precondition: the manager is Authenticated; otherwise ErrNotAuthenticated.
func (m *Manager) UpdateUser(user json.RawMessage) error {
	m.mu.Lock()
	if !m.current.Authenticated() {
		m.mu.Unlock()
		return ErrNotAuthenticated
	}
	token := m.current.Token
	m.mu.Unlock()

	return m.commit(Session{Token: token, User: user})
}

// commit writes the session to the store and, only if that succeeds, to
// memory, then notifies subscribers.
func (m *Manager) commit(next Session) error {
	m.mu.Lock()
	err := m.store.Save(m.env, tokenstore.Session{Token: next.Token, User: next.User})
	if err != nil {
		m.mu.Unlock()
		return fmt.Errorf("failed to persist session: %w", err)
	}
	m.current = next
	subs := slices.Clone(m.subscribers)
	m.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return nil
}
