package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// ErrInvalidCredentials is returned when the server rejects the supplied
// email/password pair. Callers must not leak which of the two was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// TokenSource supplies the bearer token attached to authenticated calls.
type TokenSource func() (string, error)

// Client represents an HTTP client for the Schedulr API
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     zerolog.Logger
}

// New creates a new API client for the given base URL (e.g. https://api.schedulr.app)
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: zerolog.Nop(),
	}
}

// SetHTTPClient sets a custom HTTP client
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// SetTokenSource sets the source of the bearer token for authenticated calls
func (c *Client) SetTokenSource(tokens TokenSource) {
	c.tokens = tokens
}

// SetLogger sets the logger used for transport diagnostics
func (c *Client) SetLogger(logger zerolog.Logger) {
	c.logger = logger
}

// LoginRequest represents the sign-in request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents the sign-in response. The user object is opaque
// and round-tripped as raw JSON.
type LoginResponse struct {
	Token string          `json:"token"`
	User  json.RawMessage `json:"user"`
}

// Login authenticates the user and returns a bearer token plus the user object.
// A 4xx rejection maps to ErrInvalidCredentials; transport failures surface
// as wrapped errors. Both are ordinary failures from the caller's viewpoint.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	jsonData, err := json.Marshal(LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/sessions", c.baseURL), bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Msg("sign-in transport failure")
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		c.logger.Debug().Int("status", resp.StatusCode).Msg("sign-in rejected")
		return nil, ErrInvalidCredentials
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("login failed (status %d): %s", resp.StatusCode, string(body))
	}

	var loginResp LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if loginResp.Token == "" {
		return nil, fmt.Errorf("login response is missing a token")
	}

	return &loginResp, nil
}

// ProfileUpdate represents the profile update request. The password trio is
// only sent when the user is changing their password.
type ProfileUpdate struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	OldPassword          string `json:"oldPassword,omitempty"`
	Password             string `json:"password,omitempty"`
	PasswordConfirmation string `json:"password_confirmation,omitempty"`
}

// UpdateProfile updates the authenticated user's profile and returns the
// updated user object.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (json.RawMessage, error) {
	jsonData, err := json.Marshal(update)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := c.newAuthedRequest(ctx, http.MethodPut, "/profile", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.doUserRequest(req, "update profile")
}

// UpdateAvatar uploads a new avatar image as multipart form data and returns
// the updated user object.
func (c *Client) UpdateAvatar(ctx context.Context, filename string, avatar io.Reader) (json.RawMessage, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("avatar", filepath.Base(filename))
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, avatar); err != nil {
		return nil, fmt.Errorf("failed to read avatar file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := c.newAuthedRequest(ctx, http.MethodPatch, "/users/avatar", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.doUserRequest(req, "update avatar")
}

// Register creates a new account. The server signs the user up but does not
// issue a token; the caller signs in afterwards.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	jsonData, err := json.Marshal(map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/users", c.baseURL), bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("sign-up failed (status %d): %s", resp.StatusCode, string(body))
	}
	return nil
}

// ForgotPassword asks the server to send a password recovery email.
// No response body contract is relied upon beyond the status code.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	jsonData, err := json.Marshal(map[string]string{"email": email})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/password/forgot", c.baseURL), bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("password recovery failed (status %d): %s", resp.StatusCode, string(body))
	}
	return nil
}

// newAuthedRequest builds a request with the current bearer token attached.
// If the token was invalidated server-side the call fails; the client never
// retries or re-authenticates on its own.
func (c *Client) newAuthedRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	if c.tokens == nil {
		return nil, fmt.Errorf("not authenticated. Please run 'schedulr login' first")
	}
	token, err := c.tokens()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	return req, nil
}

// doUserRequest executes a request whose successful response body is an
// updated user object.
func (c *Client) doUserRequest(req *http.Request, action string) (json.RawMessage, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Str("action", action).Msg("transport failure")
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to %s (status %d): %s", action, resp.StatusCode, string(body))
	}

	user, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if !json.Valid(user) {
		return nil, fmt.Errorf("failed to %s: response is not valid JSON", action)
	}
	return user, nil
}
