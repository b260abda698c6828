package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/doodler/session"
)

var (
	leftKeys  = []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}
	rightKeys = []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}
	shootKeys = []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW, ebiten.KeySpace}
	startKeys = []ebiten.Key{ebiten.KeyEnter, ebiten.KeySpace}
)

// Input maps keyboard and gamepad edges onto session operations. Movement
// is edge driven: a release only stops the player when it was moving that
// way.
type Input struct{}

func NewInput() *Input {
	return &Input{}
}

func (i *Input) Update(g *Game) {
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.toggleMute()
	}

	s := g.session
	if s.State() == session.StatePlaying {
		if anyJustPressed(leftKeys) || padJustPressed(ebiten.StandardGamepadButtonLeftLeft) {
			s.PressLeft()
		}
		if anyJustPressed(rightKeys) || padJustPressed(ebiten.StandardGamepadButtonLeftRight) {
			s.PressRight()
		}
		if anyJustReleased(leftKeys) || padJustReleased(ebiten.StandardGamepadButtonLeftLeft) {
			s.ReleaseLeft()
		}
		if anyJustReleased(rightKeys) || padJustReleased(ebiten.StandardGamepadButtonLeftRight) {
			s.ReleaseRight()
		}
		if anyJustPressed(shootKeys) || padJustPressed(ebiten.StandardGamepadButtonRightBottom) {
			s.Shoot()
		}
		return
	}

	if anyJustPressed(startKeys) || padJustPressed(ebiten.StandardGamepadButtonCenterRight) {
		g.start()
		return
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyL):
		g.signIn()
	case inpututil.IsKeyJustPressed(ebiten.KeyO):
		g.signOut()
	case inpututil.IsKeyJustPressed(ebiten.KeyC) && s.State() == session.StateGameOver:
		g.shareScore()
	}
}

func anyJustPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

func anyJustReleased(keys []ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustReleased(k) {
			return true
		}
	}
	return false
}

func padJustPressed(b ebiten.StandardGamepadButton) bool {
	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if inpututil.IsStandardGamepadButtonJustPressed(id, b) {
			return true
		}
	}
	return false
}

func padJustReleased(b ebiten.StandardGamepadButton) bool {
	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if inpututil.IsStandardGamepadButtonJustReleased(id, b) {
			return true
		}
	}
	return false
}
