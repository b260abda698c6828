package identity

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"slices"
	"strings"
	"sync"
)

var ErrNoProfile = errors.New("identity: no profile name configured")

// User is a signed-in player.
type User struct {
	ID   string
	Name string
	// Avatar is an optional image reference stored with the player's scores;
	// empty when the profile has none.
	Avatar string
}

// Provider signs players in and out and reports changes. Listeners run on
// the goroutine that caused the change.
type Provider interface {
	Current() *User
	SignIn(ctx context.Context) error
	SignOut(ctx context.Context) error
	OnChange(fn func(*User))
}

// LocalProvider signs in a single local profile. The id is derived from the
// name so scores from the same name land on the same leaderboard row.
type LocalProvider struct {
	name   string
	avatar string

	mu        sync.Mutex
	current   *User
	listeners []func(*User)
}

func NewLocalProvider(name string) *LocalProvider {
	return &LocalProvider{name: strings.TrimSpace(name)}
}

// SetAvatar sets the avatar reference used from the next sign-in on.
func (p *LocalProvider) SetAvatar(ref string) {
	p.mu.Lock()
	p.avatar = strings.TrimSpace(ref)
	p.mu.Unlock()
}

// ProfileID returns the stable id for a display name.
func ProfileID(name string) string {
	h := fnv.New64a()
	h.Write([]byte(strings.ToLower(strings.TrimSpace(name))))
	return fmt.Sprintf("local-%016x", h.Sum64())
}

func (p *LocalProvider) Current() *User {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return nil
	}
	u := *p.current
	return &u
}

func (p *LocalProvider) SignIn(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.name == "" {
		return ErrNoProfile
	}
	p.mu.Lock()
	if p.current != nil {
		p.mu.Unlock()
		return nil
	}
	p.current = &User{ID: ProfileID(p.name), Name: p.name, Avatar: p.avatar}
	p.mu.Unlock()
	p.notify()
	return nil
}

func (p *LocalProvider) SignOut(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	if p.current == nil {
		p.mu.Unlock()
		return nil
	}
	p.current = nil
	p.mu.Unlock()
	p.notify()
	return nil
}

func (p *LocalProvider) OnChange(fn func(*User)) {
	if fn == nil {
		return
	}
	p.mu.Lock()
	p.listeners = append(p.listeners, fn)
	p.mu.Unlock()
}

func (p *LocalProvider) notify() {
	u := p.Current()
	p.mu.Lock()
	listeners := slices.Clone(p.listeners)
	p.mu.Unlock()
	for _, fn := range listeners {
		fn(u)
	}
}
