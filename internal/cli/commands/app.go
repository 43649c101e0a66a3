package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/schedulr-app/schedulr/internal/cli/client"
	"github.com/schedulr-app/schedulr/internal/cli/config"
	"github.com/schedulr-app/schedulr/internal/cli/envselect"
	"github.com/schedulr-app/schedulr/internal/cli/session"
	"github.com/schedulr-app/schedulr/internal/cli/toast"
	"github.com/schedulr-app/schedulr/internal/cli/toastwriter"
	"github.com/schedulr-app/schedulr/internal/cli/tokenstore"
)

// App holds the long-lived client runtime: one session manager, one toast
// queue, one API client. It is constructed once at startup and injected into
// every command; commands never build their own shared state.
type App struct {
	Out    io.Writer
	Logger zerolog.Logger
	Toasts *toast.Queue

	// EnvAlias selects the environment (--env flag or SCHEDULR_ENV).
	EnvAlias string

	// ResolveEnv and OpenStore are swapped out in tests.
	ResolveEnv func(alias string) (*config.Environment, error)
	OpenStore  func() (tokenstore.Store, error)

	once     sync.Once
	initErr  error
	env      *config.Environment
	api      *client.Client
	sessions *session.Manager
}

// NewApp builds the runtime with production wiring.
func NewApp(out io.Writer, logger zerolog.Logger, settings config.Settings) *App {
	app := &App{
		Out:    out,
		Logger: logger,
		Toasts: toast.NewQueue(),
	}
	// The terminal renderer is the queue's only consumer in the CLI
	toastwriter.New(out, app.Toasts)

	app.ResolveEnv = func(alias string) (*config.Environment, error) {
		cfg, err := config.LoadFromCurrentDir()
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w\nCreate a %s file listing your environments", err, config.ConfigFileName)
		}
		return envselect.Resolve(cfg, alias)
	}

	app.OpenStore = func() (tokenstore.Store, error) {
		if settings.TokenBackend == "file" {
			path, err := tokenstore.DefaultSQLitePath()
			if err != nil {
				return nil, err
			}
			return tokenstore.OpenSQLite(path)
		}
		return tokenstore.NewKeyringStore(), nil
	}

	return app
}

// Session returns the process-wide session manager.
func (a *App) Session() (*session.Manager, error) {
	if err := a.initRuntime(); err != nil {
		return nil, err
	}
	return a.sessions, nil
}

// API returns the API client with the bearer token source attached.
func (a *App) API() (*client.Client, error) {
	if err := a.initRuntime(); err != nil {
		return nil, err
	}
	return a.api, nil
}

// Environment returns the resolved environment.
func (a *App) Environment() (*config.Environment, error) {
	if err := a.initRuntime(); err != nil {
		return nil, err
	}
	return a.env, nil
}

// initRuntime resolves the environment and wires client, store and session
// manager together. Runs at most once; resolution may prompt interactively,
// so it is deferred until a command actually needs the runtime.
func (a *App) initRuntime() error {
	a.once.Do(func() {
		env, err := a.ResolveEnv(a.EnvAlias)
		if err != nil {
			a.initErr = err
			return
		}
		a.env = env

		store, err := a.OpenStore()
		if err != nil {
			a.initErr = fmt.Errorf("failed to open token store: %w", err)
			return
		}

		api := client.New(env.URL)
		api.SetLogger(a.Logger)

		sessions, err := session.NewManager(&apiAuthenticator{api: api}, store, env.Alias)
		if err != nil {
			a.initErr = err
			return
		}
		api.SetTokenSource(sessions.Token)

		a.api = api
		a.sessions = sessions
	})
	return a.initErr
}

// apiAuthenticator adapts the API client to the session.Authenticator contract
type apiAuthenticator struct {
	api *client.Client
}

func (a *apiAuthenticator) Authenticate(ctx context.Context, email, password string) (string, json.RawMessage, error) {
	resp, err := a.api.Login(ctx, email, password)
	if err != nil {
		return "", nil, err
	}
	return resp.Token, resp.User, nil
}
