package identity

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestProfileIDStable(t *testing.T) {
	a := ProfileID("Ann")
	if a != ProfileID(" ann ") {
		t.Fatalf("expected case and space insensitive id")
	}
	if a == ProfileID("bob") {
		t.Fatalf("expected distinct ids")
	}
	if !strings.HasPrefix(a, "local-") || len(a) != len("local-")+16 {
		t.Fatalf("unexpected id format %q", a)
	}
}

func TestLocalProviderSignInOut(t *testing.T) {
	ctx := context.Background()
	p := NewLocalProvider("Ann")

	var changes []*User
	p.OnChange(func(u *User) { changes = append(changes, u) })

	if p.Current() != nil {
		t.Fatal("expected signed out at start")
	}
	if err := p.SignIn(ctx); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	// signing in twice is a no-op
	if err := p.SignIn(ctx); err != nil {
		t.Fatal(err)
	}
	u := p.Current()
	if u == nil || u.Name != "Ann" || u.ID != ProfileID("Ann") {
		t.Fatalf("unexpected user %+v", u)
	}
	if err := p.SignOut(ctx); err != nil {
		t.Fatal(err)
	}
	if p.Current() != nil {
		t.Fatal("expected signed out")
	}

	if len(changes) != 2 || changes[0] == nil || changes[1] != nil {
		t.Fatalf("unexpected notifications %v", changes)
	}
}

func TestLocalProviderAvatar(t *testing.T) {
	ctx := context.Background()
	p := NewLocalProvider("Ann")
	p.SetAvatar(" avatars/ann.png ")
	if err := p.SignIn(ctx); err != nil {
		t.Fatal(err)
	}
	if u := p.Current(); u == nil || u.Avatar != "avatars/ann.png" {
		t.Fatalf("unexpected user %+v", u)
	}

	// no avatar stays empty
	q := NewLocalProvider("Bob")
	if err := q.SignIn(ctx); err != nil {
		t.Fatal(err)
	}
	if u := q.Current(); u.Avatar != "" {
		t.Fatalf("expected empty avatar, got %q", u.Avatar)
	}
}

func TestLocalProviderNoProfile(t *testing.T) {
	p := NewLocalProvider("  ")
	if err := p.SignIn(context.Background()); !errors.Is(err, ErrNoProfile) {
		t.Fatalf("expected ErrNoProfile, got %v", err)
	}
}

func TestCurrentReturnsCopy(t *testing.T) {
	p := NewLocalProvider("ann")
	_ = p.SignIn(context.Background())
	p.Current().Name = "mallory"
	if p.Current().Name != "ann" {
		t.Fatal("Current must not expose internal state")
	}
}
