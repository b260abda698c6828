package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/doodler/leaderboard"
	"github.com/milk9111/doodler/session"
	"golang.org/x/image/font/basicfont"
)

var (
	overlayText  = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	overlayMuted = color.NRGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}
)

// Overlay is the menu and game-over panel: a title, the last result, the
// leaderboard and the key hints.
type Overlay struct {
	title  *widget.Text
	result *widget.Text
	board  *widget.Text
	status *widget.Text
	hints  *widget.Text
	play   *widget.Button
}

// NewOverlayUI builds a centred panel from colored nine-slices and the
// built-in basic font, so no theme assets are needed.
func NewOverlayUI(g *Game) (*Overlay, *ebitenui.UI) {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnHover := imageui.NewNineSliceColor(color.NRGBA{R: 0x57, G: 0xe0, B: 0x48, A: 255})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	centered := widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter}))
	newText := func(c color.Color) *widget.Text {
		return widget.NewText(widget.TextOpts.Text("", &face, c), centered)
	}

	o := &Overlay{
		title:  newText(overlayText),
		result: newText(overlayText),
		board:  newText(overlayText),
		status: newText(overlayMuted),
		hints:  newText(overlayMuted),
	}
	o.play = widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Hover: btnHover, Pressed: btnHover}),
		widget.ButtonOpts.Text("Play", &face, &widget.ButtonTextColor{Idle: overlayText}),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			g.start()
		}),
	)

	width, height := g.Size()
	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 20, Right: 20}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(int(width*0.8), int(height/2)),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(o.title)
	panel.AddChild(o.result)
	panel.AddChild(o.play)
	panel.AddChild(o.board)
	panel.AddChild(o.status)
	panel.AddChild(o.hints)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)

	o.Refresh(g)
	return o, &ebitenui.UI{Container: root}
}

// Refresh copies the game state into the labels.
func (o *Overlay) Refresh(g *Game) {
	state := g.session.State()
	if state == session.StatePlaying {
		return
	}

	user, userID := "", ""
	if u := g.identity.Current(); u != nil {
		user, userID = u.Name, u.ID
	}

	switch state {
	case session.StateGameOver:
		r := g.session.Result()
		o.title.Label = "Game Over"
		o.result.Label = fmt.Sprintf("Score: %d   Best: %d\n%s", r.Score, g.session.HighScore(), causeText(r.Cause))
		o.hints.Label = "Enter: play again   C: copy score\n" + accountHint(user)
	default:
		o.title.Label = "Doodler"
		o.result.Label = fmt.Sprintf("Best: %d", g.session.HighScore())
		o.hints.Label = "Arrows/AD move   Up/W/Space shoot\nEnter: play   M: mute\n" + accountHint(user)
	}
	o.board.Label = leaderboardText(g.top, userID)
	o.status.Label = g.status
}

func accountHint(user string) string {
	if user == "" {
		return "L: sign in"
	}
	return "O: sign out (" + user + ")"
}

func causeText(cause string) string {
	switch cause {
	case "monster":
		return "caught by a monster"
	case "black_hole":
		return "swallowed by a black hole"
	case "ufo":
		return "abducted by a UFO"
	default:
		return "fell off the page"
	}
}

// leaderboardText renders the top list and marks the row owned by userID.
// Names differing only in case share one profile id, so rows match on id.
func leaderboardText(top []leaderboard.Entry, userID string) string {
	if len(top) == 0 {
		return "No scores yet"
	}
	var b strings.Builder
	b.WriteString("Top scores\n")
	for i, e := range top {
		marker := " "
		if userID != "" && e.UserID == userID {
			marker = ">"
		}
		fmt.Fprintf(&b, "%s%2d. %-12.12s %6d\n", marker, i+1, e.Name, e.Score)
	}
	return strings.TrimRight(b.String(), "\n")
}
