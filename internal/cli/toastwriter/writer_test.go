package toastwriter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/schedulr-app/schedulr/internal/cli/toast"
)

func TestWriter_PrintsEachToastOnce(t *testing.T) {
	var buf bytes.Buffer
	q := toast.NewQueue(toast.WithTTL(time.Minute))
	defer q.Close()
	New(&buf, q)

	q.Add(toast.Toast{Type: toast.TypeSuccess, Title: "Profile updated"})
	id := q.Add(toast.Toast{Type: toast.TypeError, Title: "Authentication failed", Description: "Check your credentials."})
	q.Remove(id)

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), out)
	}
	if lines[0] != "✓ Profile updated" {
		t.Errorf("unexpected first line: %q", lines[0])
	}
	if lines[1] != "✗ Authentication failed: Check your credentials." {
		t.Errorf("unexpected second line: %q", lines[1])
	}
}

func TestWriter_InfoSymbol(t *testing.T) {
	var buf bytes.Buffer
	q := toast.NewQueue(toast.WithTTL(time.Minute))
	defer q.Close()
	New(&buf, q)

	q.Add(toast.Toast{Title: "Heads up"})
	if got := buf.String(); got != "• Heads up\n" {
		t.Errorf("unexpected output: %q", got)
	}
}
