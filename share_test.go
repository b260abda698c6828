package main

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/milk9111/doodler/ecs"
	"github.com/milk9111/doodler/ecs/component"
	"github.com/milk9111/doodler/ecs/entity"
	"github.com/milk9111/doodler/identity"
	"github.com/milk9111/doodler/leaderboard"
)

func TestShareText(t *testing.T) {
	if got := shareText(1200, ""); got != "I scored 1200 in doodler!" {
		t.Fatalf("unexpected anonymous text %q", got)
	}
	if got := shareText(75, "Ann"); got != "Ann scored 75 in doodler!" {
		t.Fatalf("unexpected signed-in text %q", got)
	}
}

func TestLeaderboardText(t *testing.T) {
	if got := leaderboardText(nil, ""); got != "No scores yet" {
		t.Fatalf("unexpected empty text %q", got)
	}

	top := []leaderboard.Entry{
		{UserID: identity.ProfileID("Bob"), Name: "Bob", Score: 900},
		{UserID: identity.ProfileID("Ann"), Name: "Ann", Score: 40},
	}
	lines := strings.Split(leaderboardText(top, identity.ProfileID("Ann")), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %q", lines)
	}
	if !strings.HasPrefix(lines[1], "  1. Bob") || !strings.HasSuffix(lines[1], "900") {
		t.Fatalf("unexpected first row %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "> 2. Ann") {
		t.Fatalf("signed-in row must be marked, got %q", lines[2])
	}

	// the row was stored as "Bob"; signing in as "bob" is the same profile
	lines = strings.Split(leaderboardText(top, identity.ProfileID("bob")), "\n")
	if !strings.HasPrefix(lines[1], "> 1. Bob") || strings.HasPrefix(lines[2], ">") {
		t.Fatalf("expected the Bob row marked by id, got %q", lines)
	}
	if got := leaderboardText(top, ""); strings.Contains(got, ">") {
		t.Fatalf("signed-out list must not mark a row, got %q", got)
	}
}

func TestCauseText(t *testing.T) {
	cases := map[string]string{
		"fell":       "fell off the page",
		"monster":    "caught by a monster",
		"black_hole": "swallowed by a black hole",
		"ufo":        "abducted by a UFO",
	}
	for cause, want := range cases {
		if got := causeText(cause); got != want {
			t.Fatalf("causeText(%q) = %q, want %q", cause, got, want)
		}
	}
}

func TestCensusLine(t *testing.T) {
	w := ecs.NewWorld()
	if got := census(w); got != "" {
		t.Fatalf("expected empty census, got %q", got)
	}

	f := entity.NewFactory(nil, rand.New(rand.NewPCG(1, 1)))
	for i := 0; i < 2; i++ {
		if _, err := f.NewPlatform(w, 0, float64(i)*50, component.PlatformStatic); err != nil {
			t.Fatal(err)
		}
	}
	got := census(w)
	if !strings.Contains(got, "platform:2") || !strings.Contains(got, "body:2") {
		t.Fatalf("unexpected census %q", got)
	}
	if strings.Index(got, "body") > strings.Index(got, "platform") {
		t.Fatalf("census not sorted: %q", got)
	}
}
