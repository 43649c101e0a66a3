package commands

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestWhoami_SignedIn(t *testing.T) {
	store := newMemoryStore()
	seedSession(store)
	app, buf := newTestApp(t, "http://127.0.0.1:0", store)

	cmd := NewWhoamiCmd(app)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("whoami failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "User:  Ana") || !strings.Contains(out, "Email: user@x.com") {
		t.Errorf("unexpected output: %q", out)
	}
	// Opaque token: no expiry line
	if strings.Contains(out, "Session expires") {
		t.Errorf("no expiry expected for an opaque token: %q", out)
	}
}

func TestWhoami_NotSignedIn(t *testing.T) {
	store := newMemoryStore()
	app, buf := newTestApp(t, "http://127.0.0.1:0", store)

	cmd := NewWhoamiCmd(app)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("whoami failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Not signed in.") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	got, ok := tokenExpiry(signed)
	if !ok {
		t.Fatal("expected an expiry")
	}
	if !got.Equal(exp) {
		t.Errorf("expected %v, got %v", exp, got)
	}

	if _, ok := tokenExpiry("not-a-jwt"); ok {
		t.Error("opaque tokens must not report an expiry")
	}
}
