package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode (hot reload prefabs from disk)")
	user := flag.String("user", "", "local profile name used for the leaderboard")
	avatar := flag.String("avatar", "", "optional avatar reference stored with leaderboard scores")
	seed := flag.Uint64("seed", 0, "level seed (0 picks a random one)")
	scale := flag.Float64("scale", 1.5, "window scale")
	mute := flag.Bool("mute", false, "start with sound muted")
	appName := flag.String("app", "doodler", "name of the save data directory")
	flag.Parse()

	game, err := NewGame(Options{
		Debug:   *debug,
		User:    *user,
		Avatar:  *avatar,
		Seed:    *seed,
		Mute:    *mute,
		AppName: *appName,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	w, h := game.Size()
	ebiten.SetWindowSize(int(w*(*scale)), int(h*(*scale)))
	ebiten.SetWindowTitle("doodler")
	ebiten.SetTPS(60)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
