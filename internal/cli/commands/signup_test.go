package commands

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSignup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/users" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if body["name"] != "Ana" || body["email"] != "user@x.com" {
			t.Errorf("unexpected body: %v", body)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	app, buf := newTestApp(t, server.URL, newMemoryStore())

	cmd := NewSignupCmd(app)
	cmd.SetArgs([]string{"--name", "Ana", "--email", "user@x.com", "--password", "secret123"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	if !strings.Contains(buf.String(), "✓ Account created") {
		t.Errorf("expected success toast, got %q", buf.String())
	}
}

func TestSignup_ShortPassword(t *testing.T) {
	app, buf := newTestApp(t, "http://127.0.0.1:0", newMemoryStore())

	cmd := NewSignupCmd(app)
	cmd.SetArgs([]string{"--name", "Ana", "--email", "user@x.com", "--password", "short"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(buf.String(), "password: must be at least 6 characters") {
		t.Errorf("expected field error, got %q", buf.String())
	}
}
