package memory

import (
	"fmt"
	"math"

	"github.com/carelink/brainarcade/internal/core"
)

// Render draws the HUD, the card grid, the footer buttons and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.engine == nil {
		return
	}

	w, h := dst.Width(), dst.Height()
	g.relayoutFor(w, h)

	if !g.layout.ok {
		g.renderTooSmall(dst)
		return
	}

	view := g.engine.View()
	g.renderHUD(dst, view)
	for _, c := range view.Cards {
		g.renderCard(dst, c, c.Index == g.cursor)
	}
	g.renderFooter(dst, view)

	switch {
	case g.paused:
		renderOverlay(dst, []string{"PAUSED", "", "P to resume"}, core.ColorBrightYellow)
	case view.Phase == PhaseComplete:
		r, _ := g.engine.Result()
		renderOverlay(dst, []string{
			"Game Completed!",
			"",
			fmt.Sprintf("Moves: %d", r.Moves),
			fmt.Sprintf("Score: %d", r.Score),
			"",
			"R to play again",
		}, core.ColorBrightGreen)
	}
}

func (g *Game) renderHUD(dst *core.Screen, v View) {
	matches := fmt.Sprintf("Matches: %d/%d", v.MatchedPairs, v.PairCount)
	moves := fmt.Sprintf("Moves: %d", v.Moves)
	dst.DrawTextColor(1, 0, matches, core.ColorBrightWhite)
	dst.DrawTextColor(dst.Width()-len(moves)-1, 0, moves, core.ColorBrightWhite)

	title := g.Title()
	dst.DrawTextColor((dst.Width()-len(title))/2, 0, title, core.ColorBrightCyan)

	hint := phaseHint(v.Phase)
	dst.DrawTextColor((dst.Width()-len(hint))/2, 1, hint, core.ColorGray)
}

func phaseHint(p Phase) string {
	switch p {
	case PhaseIdle:
		return "Press G or click Start to study the board"
	case PhasePreviewing:
		return "Memorize the cards..."
	case PhasePlaying, PhaseFlipping:
		return "Find the pairs"
	case PhaseResolving:
		return "Not a match"
	case PhaseComplete:
		return "All pairs matched"
	default:
		return ""
	}
}

func (g *Game) renderCard(dst *core.Screen, c CardView, selected bool) {
	full := g.layout.cardRect(c.Index)

	// Width follows the flip: full at rest, one column when edge-on.
	open := math.Abs(1 - 2*c.Face)
	visible := max(1, int(math.Round(open*float64(full.W))))
	frame := full.Inset((full.W - visible) / 2)

	border := core.ColorBlue
	label := "?"
	labelColor := core.ColorGray
	switch {
	case c.State == CardMatched && c.FaceUp():
		border = core.ColorGray
		label = c.Token.Label
		labelColor = core.ColorGray
	case c.FaceUp():
		border = c.Token.Color
		label = c.Token.Label
		labelColor = c.Token.Color
	}
	if selected {
		border = core.ColorBrightWhite
	}

	dst.DrawBoxColor(frame, border)

	inner := frame.W - 2
	if inner < 1 || frame.H < 3 {
		return
	}
	runes := []rune(label)
	if len(runes) > inner {
		runes = runes[:inner]
	}
	x := frame.X + 1 + (inner-len(runes))/2
	y := frame.Y + frame.H/2
	dst.DrawTextColor(x, y, string(runes), labelColor)
}

func (g *Game) renderFooter(dst *core.Screen, v View) {
	startColor := core.ColorGray
	if v.Phase == PhaseIdle {
		startColor = core.ColorBrightGreen
	}
	restartColor := core.ColorGray
	if !v.Phase.Busy() {
		restartColor = core.ColorBrightYellow
	}
	dst.DrawTextColor(g.buttons.start.X, g.buttons.start.Y, startLabel, startColor)
	dst.DrawTextColor(g.buttons.restart.X, g.buttons.restart.Y, restartLabel, restartColor)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	h := dst.Height()
	dst.DrawTextCentered(h/2-1, "Window too small")
	dst.DrawTextCentered(h/2, fmt.Sprintf("Need %dx%d, have %dx%d",
		g.layout.needW, g.layout.needH, dst.Width(), h))
}

// renderOverlay draws a boxed message in the middle of the screen.
func renderOverlay(dst *core.Screen, lines []string, c core.Color) {
	width := 0
	for _, l := range lines {
		width = max(width, len(l))
	}
	box := core.NewRect(
		(dst.Width()-width-4)/2,
		(dst.Height()-len(lines)-2)/2,
		width+4,
		len(lines)+2,
	)
	dst.DrawRect(box, ' ')
	dst.DrawBoxColor(box, c)
	for i, l := range lines {
		x := box.X + (box.W-len(l))/2
		dst.DrawTextColor(x, box.Y+1+i, l, c)
	}
}
