// Package toastwriter renders the toast queue to a terminal. It is a pure
// consumer of the queue: it subscribes to changes and prints each toast once.
package toastwriter

import (
	"fmt"
	"io"
	"sync"

	"github.com/schedulr-app/schedulr/internal/cli/toast"
)

// Writer prints newly added toasts to out. Toasts already printed are
// skipped, so auto-expiry removals produce no output.
type Writer struct {
	mu   sync.Mutex
	out  io.Writer
	seen map[string]bool
}

// New creates a Writer and subscribes it to the queue.
func New(out io.Writer, q *toast.Queue) *Writer {
	w := &Writer{out: out, seen: make(map[string]bool)}
	q.Subscribe(w.render)
	return w
}

func (w *Writer) render(toasts []toast.Toast) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, t := range toasts {
		if w.seen[t.ID] {
			continue
		}
		w.seen[t.ID] = true

		if t.Description != "" {
			fmt.Fprintf(w.out, "%s %s: %s\n", symbol(t.Type), t.Title, t.Description)
		} else {
			fmt.Fprintf(w.out, "%s %s\n", symbol(t.Type), t.Title)
		}
	}
}

func symbol(t toast.Type) string {
	switch t {
	case toast.TypeSuccess:
		return "✓"
	case toast.TypeError:
		return "✗"
	default:
		return "•"
	}
}
