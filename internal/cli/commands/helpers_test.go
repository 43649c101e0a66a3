package commands

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/schedulr-app/schedulr/internal/cli/config"
	"github.com/schedulr-app/schedulr/internal/cli/toast"
	"github.com/schedulr-app/schedulr/internal/cli/toastwriter"
	"github.com/schedulr-app/schedulr/internal/cli/tokenstore"
)

// memoryStore is a simple in-memory token store for testing
type memoryStore struct {
	sessions map[string]tokenstore.Session
}

func newMemoryStore() *memoryStore {
	return &memoryStore{sessions: make(map[string]tokenstore.Session)}
}

func (m *memoryStore) Save(env string, s tokenstore.Session) error {
	m.sessions[env] = s
	return nil
}

func (m *memoryStore) Load(env string) (tokenstore.Session, error) {
	return m.sessions[env], nil
}

func (m *memoryStore) Clear(env string) error {
	delete(m.sessions, env)
	return nil
}

// newTestApp builds an App wired to the given API URL and token store,
// capturing all output in the returned buffer.
func newTestApp(t *testing.T, apiURL string, store tokenstore.Store) (*App, *bytes.Buffer) {
	t.Helper()

	// Keep user preferences written during the test out of the real home
	t.Setenv("HOME", t.TempDir())

	var buf bytes.Buffer
	app := &App{
		Out:    &buf,
		Logger: zerolog.Nop(),
		Toasts: toast.NewQueue(toast.WithTTL(time.Minute)),
		ResolveEnv: func(alias string) (*config.Environment, error) {
			return &config.Environment{Alias: "test", URL: apiURL}, nil
		},
		OpenStore: func() (tokenstore.Store, error) {
			return store, nil
		},
	}
	toastwriter.New(&buf, app.Toasts)
	t.Cleanup(app.Toasts.Close)

	return app, &buf
}
