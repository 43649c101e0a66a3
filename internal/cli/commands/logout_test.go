package commands

import (
	"strings"
	"testing"
)

func TestLogout(t *testing.T) {
	store := newMemoryStore()
	seedSession(store)
	app, buf := newTestApp(t, "http://127.0.0.1:0", store)

	cmd := NewLogoutCmd(app)
	cmd.SetArgs([]string{"--yes"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	if stored, _ := store.Load("test"); !stored.Empty() {
		t.Errorf("expected empty store after logout, got %+v", stored)
	}
	if !strings.Contains(buf.String(), "✓ Signed out.") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestLogout_AlreadySignedOut(t *testing.T) {
	store := newMemoryStore()
	app, buf := newTestApp(t, "http://127.0.0.1:0", store)

	cmd := NewLogoutCmd(app)
	cmd.SetArgs([]string{"--yes"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("logout of a signed-out session must be a no-op, got %v", err)
	}
	if !strings.Contains(buf.String(), "Not signed in.") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}
