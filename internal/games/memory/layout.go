package memory

import "github.com/carelink/brainarcade/internal/core"

const (
	hudHeight    = 2 // status line and phase hint
	footerHeight = 1 // button row
	minCardW     = 9 // longest label plus borders
	maxCardW     = 13
	minCardH     = 3
	maxCardH     = 5
)

// layout places the card grid on screen.
type layout struct {
	x0, y0       int
	cardW, cardH int
	gapX, gapY   int
	cols, rows   int
	ok           bool // false when the grid does not fit
	needW, needH int  // smallest screen that fits
}

// computeLayout fits n cards in cols columns into a w x h screen, preferring
// larger cards and gaps and shrinking until the grid fits.
func computeLayout(w, h, n, cols int) layout {
	cols = max(1, min(cols, n))
	rows := (n + cols - 1) / cols
	l := layout{cols: cols, rows: rows}

	l.needW = cols*minCardW + (cols - 1)
	l.needH = hudHeight + rows*minCardH + footerHeight

	availH := h - hudHeight - footerHeight
	cardH, gapY, ok := fitHeight(rows, availH)
	if !ok {
		return l
	}
	l.cardH, l.gapY = cardH, gapY

	l.gapX = 2
	l.cardW = min(maxCardW, (w-(cols-1)*l.gapX)/cols)
	if l.cardW < minCardW {
		l.gapX = 1
		l.cardW = (w - (cols - 1)) / cols
	}
	if l.cardW < minCardW {
		return l
	}

	gridW := cols*l.cardW + (cols-1)*l.gapX
	gridH := rows*l.cardH + (rows-1)*l.gapY
	l.x0 = (w - gridW) / 2
	l.y0 = hudHeight + (availH-gridH)/2
	l.ok = true
	return l
}

// fitHeight picks the tallest card height and gap that fit rows into avail.
func fitHeight(rows, avail int) (cardH, gapY int, ok bool) {
	for cardH := maxCardH; cardH >= minCardH; cardH-- {
		for gapY := 1; gapY >= 0; gapY-- {
			if rows*cardH+(rows-1)*gapY <= avail {
				return cardH, gapY, true
			}
		}
	}
	return 0, 0, false
}

// cardRect returns the full-size frame of card i.
func (l layout) cardRect(i int) core.Rect {
	col, row := i%l.cols, i/l.cols
	return core.NewRect(
		l.x0+col*(l.cardW+l.gapX),
		l.y0+row*(l.cardH+l.gapY),
		l.cardW,
		l.cardH,
	)
}

// cardAt maps a screen cell to the card under it.
func (l layout) cardAt(x, y int) (int, bool) {
	if !l.ok {
		return 0, false
	}
	for i := range l.cols * l.rows {
		if l.cardRect(i).Contains(x, y) {
			return i, true
		}
	}
	return 0, false
}

// buttons holds the clickable footer controls.
type buttons struct {
	start   core.Rect
	restart core.Rect
}

const (
	startLabel   = "[ Start ]"
	restartLabel = "[ Restart ]"
)

func footerButtons(w, h int) buttons {
	y := h - 1
	total := len(startLabel) + 2 + len(restartLabel)
	x := (w - total) / 2
	return buttons{
		start:   core.NewRect(x, y, len(startLabel), 1),
		restart: core.NewRect(x+len(startLabel)+2, y, len(restartLabel), 1),
	}
}

func (g *Game) relayout() {
	g.relayoutFor(g.runtime.ScreenW, g.runtime.ScreenH)
}

func (g *Game) relayoutFor(w, h int) {
	n := 0
	if g.engine != nil {
		n = len(g.engine.deck)
	}
	g.layout = computeLayout(w, h, max(n, 1), g.cfg.Board.Columns)
	g.buttons = footerButtons(w, h)
}
