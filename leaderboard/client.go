package leaderboard

import (
	"context"
	"log"
	"sync"
	"time"
)

// requestTimeout bounds every store call made by the worker.
const requestTimeout = 5 * time.Second

// Client talks to a Store off the game loop. Submissions are queued with one
// pending slot per user that keeps only the highest score, and a single
// worker sends them in arrival order. Refreshed top lists arrive on Updates.
type Client struct {
	store Store
	n     int

	mu      sync.Mutex
	pending map[string]Entry
	order   []string
	refresh bool

	wake    chan struct{}
	updates chan []Entry
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewClient starts the worker. Close stops it.
func NewClient(store Store, n int) *Client {
	if n <= 0 {
		n = DefaultTop
	}
	ctx, cancel := context.WithCancel(context.Background())
	c := &Client{
		store:   store,
		n:       n,
		pending: make(map[string]Entry),
		wake:    make(chan struct{}, 1),
		updates: make(chan []Entry, 1),
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	go c.run(ctx)
	return c
}

// Submit queues e without blocking. A queued entry for the same user is
// replaced only by a higher score.
func (c *Client) Submit(e Entry) {
	if err := e.validate(); err != nil {
		log.Printf("leaderboard: submit: %v", err)
		return
	}
	c.mu.Lock()
	cur, queued := c.pending[e.UserID]
	switch {
	case !queued:
		c.order = append(c.order, e.UserID)
		c.pending[e.UserID] = e
	case e.Score > cur.Score:
		c.pending[e.UserID] = e
	}
	c.mu.Unlock()
	c.signal()
}

// Refresh asks the worker to fetch the top list.
func (c *Client) Refresh() {
	c.mu.Lock()
	c.refresh = true
	c.mu.Unlock()
	c.signal()
}

// Updates delivers the most recent top list. Stale lists are dropped when the
// reader falls behind.
func (c *Client) Updates() <-chan []Entry {
	return c.updates
}

func (c *Client) Close() {
	c.cancel()
	<-c.done
}

func (c *Client) signal() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

func (c *Client) run(ctx context.Context) {
	defer close(c.done)
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.wake:
		}

		for {
			e, ok := c.next()
			if !ok {
				break
			}
			if err := c.submit(ctx, e); err != nil {
				if ctx.Err() != nil {
					return
				}
				log.Printf("leaderboard: submit %s: %v", e.UserID, err)
				continue
			}
			c.mu.Lock()
			c.refresh = true
			c.mu.Unlock()
		}

		c.mu.Lock()
		refresh := c.refresh
		c.refresh = false
		c.mu.Unlock()
		if refresh {
			c.fetch(ctx)
		}
	}
}

func (c *Client) next() (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.order) == 0 {
		return Entry{}, false
	}
	id := c.order[0]
	c.order = c.order[1:]
	e := c.pending[id]
	delete(c.pending, id)
	return e, true
}

func (c *Client) submit(ctx context.Context, e Entry) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	return c.store.Submit(ctx, e)
}

func (c *Client) fetch(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	list, err := c.store.Top(ctx, c.n)
	if err != nil {
		log.Printf("leaderboard: top: %v", err)
		return
	}
	select {
	case <-c.updates:
	default:
	}
	c.updates <- list
}
