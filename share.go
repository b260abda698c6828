package main

import (
	"fmt"
	"log"
	"sync"

	"golang.design/x/clipboard"
)

var (
	clipboardOnce sync.Once
	clipboardErr  error
)

func shareText(score int, user string) string {
	if user == "" {
		return fmt.Sprintf("I scored %d in doodler!", score)
	}
	return fmt.Sprintf("%s scored %d in doodler!", user, score)
}

// shareScore copies the final score of the last round to the clipboard.
func (g *Game) shareScore() {
	clipboardOnce.Do(func() {
		clipboardErr = clipboard.Init()
	})
	if clipboardErr != nil {
		log.Printf("game: clipboard: %v", clipboardErr)
		g.setStatus("clipboard unavailable")
		return
	}

	name := ""
	if u := g.identity.Current(); u != nil {
		name = u.Name
	}
	clipboard.Write(clipboard.FmtText, []byte(shareText(g.session.Result().Score, name)))
	g.setStatus("score copied")
}
