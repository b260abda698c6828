package leaderboard

import (
	"context"
	"sync"
	"testing"
	"time"
)

// gateStore blocks the first Submit until release is closed and records every
// submission it sees.
type gateStore struct {
	*MemoryStore

	mu      sync.Mutex
	seen    []Entry
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func newGateStore() *gateStore {
	return &gateStore{
		MemoryStore: NewMemoryStore(),
		entered:     make(chan struct{}),
		release:     make(chan struct{}),
	}
}

func (g *gateStore) Submit(ctx context.Context, e Entry) error {
	g.mu.Lock()
	g.seen = append(g.seen, e)
	g.mu.Unlock()

	first := false
	g.once.Do(func() { first = true })
	if first {
		close(g.entered)
		select {
		case <-g.release:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return g.MemoryStore.Submit(ctx, e)
}

func (g *gateStore) submitted() []Entry {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Entry(nil), g.seen...)
}

func waitUpdate(t *testing.T, c *Client) []Entry {
	t.Helper()
	select {
	case list := <-c.Updates():
		return list
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for leaderboard update")
		return nil
	}
}

func TestClientSubmitThenRefreshes(t *testing.T) {
	c := NewClient(NewMemoryStore(), 3)
	defer c.Close()

	c.Submit(entry("ann", 77, 1))
	list := waitUpdate(t, c)
	if len(list) != 1 || list[0].Score != 77 {
		t.Fatalf("unexpected update %+v", list)
	}
}

func TestClientPendingSlotKeepsHighest(t *testing.T) {
	store := newGateStore()
	c := NewClient(store, DefaultTop)
	defer c.Close()

	c.Submit(entry("ann", 50, 1))
	select {
	case <-store.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("worker never reached the store")
	}

	c.Submit(entry("bob", 10, 2))
	c.Submit(entry("ann", 300, 3))
	c.Submit(entry("ann", 200, 4))
	close(store.release)

	list := waitUpdate(t, c)
	if got := scores(list); !equalInts(got, []int{300, 10}) {
		t.Fatalf("unexpected top list %v", got)
	}

	seen := store.submitted()
	want := []struct {
		id    string
		score int
	}{{"ann", 50}, {"bob", 10}, {"ann", 300}}
	if len(seen) != len(want) {
		t.Fatalf("expected %d submissions, got %+v", len(want), seen)
	}
	for i, w := range want {
		if seen[i].UserID != w.id || seen[i].Score != w.score {
			t.Fatalf("submission %d: got %s/%d, want %s/%d", i, seen[i].UserID, seen[i].Score, w.id, w.score)
		}
	}
}

func TestClientRefresh(t *testing.T) {
	store := NewMemoryStore()
	_ = store.Submit(context.Background(), entry("ann", 5, 1))

	c := NewClient(store, DefaultTop)
	defer c.Close()

	c.Refresh()
	if list := waitUpdate(t, c); len(list) != 1 {
		t.Fatalf("expected one entry, got %+v", list)
	}
}

func TestClientIgnoresInvalid(t *testing.T) {
	c := NewClient(NewMemoryStore(), DefaultTop)
	defer c.Close()

	c.Submit(Entry{UserID: "", Score: 10})
	select {
	case list := <-c.Updates():
		t.Fatalf("unexpected update %+v", list)
	case <-time.After(50 * time.Millisecond):
	}
}
