package toast

import (
	"sync"
	"testing"
	"time"
)

func ids(toasts []Toast) []string {
	out := make([]string, len(toasts))
	for i, t := range toasts {
		out[i] = t.ID
	}
	return out
}

func TestAdd_PreservesInsertionOrder(t *testing.T) {
	q := NewQueue(WithTTL(time.Minute))
	defer q.Close()

	first := q.Add(Toast{Type: TypeInfo, Title: "one"})
	second := q.Add(Toast{Type: TypeSuccess, Title: "two"})
	third := q.Add(Toast{Type: TypeError, Title: "three"})

	snapshot := q.Snapshot()
	if len(snapshot) != 3 {
		t.Fatalf("expected 3 toasts, got %d", len(snapshot))
	}
	got := ids(snapshot)
	want := []string{first, second, third}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestAdd_UniqueIDs(t *testing.T) {
	q := NewQueue(WithTTL(time.Minute))
	defer q.Close()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := q.Add(Toast{Title: "t"})
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}

func TestAdd_DefaultsToInfo(t *testing.T) {
	q := NewQueue(WithTTL(time.Minute))
	defer q.Close()

	q.Add(Toast{Title: "untyped"})
	if got := q.Snapshot()[0].Type; got != TypeInfo {
		t.Errorf("expected info, got %s", got)
	}
}

func TestRemove_CancelsTimer(t *testing.T) {
	q := NewQueue(WithTTL(30 * time.Millisecond))
	defer q.Close()

	var mu sync.Mutex
	var changes [][]Toast
	q.Subscribe(func(snapshot []Toast) {
		mu.Lock()
		changes = append(changes, snapshot)
		mu.Unlock()
	})

	id := q.Add(Toast{Title: "gone"})
	q.Remove(id)

	if got := len(q.Snapshot()); got != 0 {
		t.Fatalf("expected empty queue, got %d toasts", got)
	}

	// Wait past the TTL: the canceled timer must not fire a second removal.
	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(changes) != 2 {
		t.Errorf("expected exactly 2 change notifications (add, remove), got %d", len(changes))
	}
}

func TestRemove_UnknownIDIsNoOp(t *testing.T) {
	q := NewQueue(WithTTL(time.Minute))
	defer q.Close()

	q.Add(Toast{Title: "keep"})
	q.Remove("no-such-id")

	if got := len(q.Snapshot()); got != 1 {
		t.Errorf("expected 1 toast, got %d", got)
	}
}

func TestAutoExpiry(t *testing.T) {
	q := NewQueue(WithTTL(30 * time.Millisecond))
	defer q.Close()

	q.Add(Toast{Title: "fleeting"})

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(q.Snapshot()) == 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("toast did not auto-expire")
}

func TestAutoExpiry_Independent(t *testing.T) {
	q := NewQueue(WithTTL(60 * time.Millisecond))
	defer q.Close()

	q.Add(Toast{Title: "early"})
	time.Sleep(40 * time.Millisecond)
	late := q.Add(Toast{Title: "late"})

	// After the first TTL elapses only the early toast is gone.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		snapshot := q.Snapshot()
		if len(snapshot) == 1 {
			if snapshot[0].ID != late {
				t.Fatalf("wrong toast expired first: %+v", snapshot[0])
			}
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("early toast did not expire independently")
}

func TestCapacity_EvictsOldestFirst(t *testing.T) {
	q := NewQueue(WithTTL(time.Minute), WithCapacity(2))
	defer q.Close()

	q.Add(Toast{Title: "one"})
	two := q.Add(Toast{Title: "two"})
	three := q.Add(Toast{Title: "three"})

	snapshot := q.Snapshot()
	if len(snapshot) != 2 {
		t.Fatalf("expected 2 toasts, got %d", len(snapshot))
	}
	if snapshot[0].ID != two || snapshot[1].ID != three {
		t.Errorf("expected FIFO eviction, got %v", ids(snapshot))
	}
}

func TestSubscribe_ReceivesFullOrderedList(t *testing.T) {
	q := NewQueue(WithTTL(time.Minute))
	defer q.Close()

	var mu sync.Mutex
	var last []Toast
	q.Subscribe(func(snapshot []Toast) {
		mu.Lock()
		last = snapshot
		mu.Unlock()
	})

	q.Add(Toast{Title: "one"})
	q.Add(Toast{Title: "two"})

	mu.Lock()
	defer mu.Unlock()
	if len(last) != 2 || last[0].Title != "one" || last[1].Title != "two" {
		t.Errorf("unexpected snapshot: %+v", last)
	}
}
