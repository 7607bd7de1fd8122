package tetris

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

const (
	cellWidth = 2 // each board cell is drawn as two characters
	hudWidth  = 18
	hudGap    = 2
)

var shapeColors = [engine.ShapeCount]core.Color{
	engine.ShapeI: core.ColorCyan,
	engine.ShapeO: core.ColorYellow,
	engine.ShapeT: core.ColorMagenta,
	engine.ShapeJ: core.ColorBlue,
	engine.ShapeL: core.ColorOrange,
	engine.ShapeS: core.ColorGreen,
	engine.ShapeZ: core.ColorRed,
}

// TagColor returns the display color of a grid tag.
func TagColor(tag engine.Tag) core.Color {
	k, ok := tag.Kind()
	if !ok {
		return core.ColorWhite
	}
	return shapeColors[k]
}

// layout is where the board and HUD land on the screen.
type layout struct {
	board core.Rect // including the border
	hud   core.Rect
}

func (g *Game) layout(dst *core.Screen, b engine.Bounds) (layout, bool) {
	boardW := b.Width*cellWidth + 2
	boardH := b.Height + 2
	total := dst.Bounds().CenterIn(boardW+hudGap+hudWidth, boardH)
	if total.W > dst.Width() || total.H > dst.Height() {
		return layout{}, false
	}
	return layout{
		board: core.NewRect(total.X, total.Y, boardW, boardH),
		hud:   core.NewRect(total.X+boardW+hudGap, total.Y, hudWidth, boardH),
	}, true
}

// Render draws the board, the ghost, the HUD and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	snap := g.rec.Engine().Snapshot()
	l, ok := g.layout(dst, snap.Bounds)
	if !ok {
		renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", snap.Bounds.Width*cellWidth+hudWidth+4, snap.Bounds.Height+2))
		return
	}

	dst.DrawBox(l.board, core.ColorGray)
	inner := l.board.Inset(1)

	if snap.Piece.Active {
		for _, c := range snap.Ghost.Cells {
			drawCell(dst, inner, snap.Bounds, c, "::", core.ColorDim)
		}
	}
	for _, c := range snap.Cells {
		drawCell(dst, inner, snap.Bounds, c.Coord, "[]", TagColor(c.Tag))
	}

	g.renderHUD(dst, l.hud, snap)

	switch {
	case snap.GameOver:
		renderOverlay(dst, "Game Over", "Press R to restart")
	case g.paused:
		renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// drawCell maps a board coordinate (row 0 near the middle, rows growing upward)
// onto the inner board rectangle.
func drawCell(dst *core.Screen, inner core.Rect, b engine.Bounds, c engine.Coord, glyph string, color core.Color) {
	if !b.Contains(c) {
		return
	}
	x := inner.X + (c.X-b.Min.X)*cellWidth
	y := inner.Y + (b.YMax() - 1 - c.Y)
	dst.DrawTextColor(x, y, glyph, color)
}

func (g *Game) renderHUD(dst *core.Screen, r core.Rect, snap engine.Snapshot) {
	y := r.Y
	line := func(text string, c core.Color) {
		dst.DrawTextColor(r.X, y, text, c)
		y++
	}

	line(g.title, core.ColorWhite)
	y++
	line(fmt.Sprintf("Lines   %d", snap.LinesCleared), core.ColorDefault)
	line(fmt.Sprintf("Pieces  %d", snap.PiecesLocked), core.ColorDefault)
	line(fmt.Sprintf("Time    %s", formatClock(snap.Clock)), core.ColorDefault)
	if snap.Piece.Active {
		line(fmt.Sprintf("Piece   %s", snap.Piece.Kind), shapeColors[snap.Piece.Kind])
	} else {
		y++
	}
	y++
	if g.flashTicks > 0 {
		line(fmt.Sprintf("+%d LINES", g.flashLines), core.ColorYellow)
	} else {
		y++
	}

	y = max(y+1, r.Bottom()-7)
	for _, hint := range []string{
		"←/→   move",
		"↓     soft drop",
		"space hard drop",
		"↑ z   rotate",
		"p     pause",
		"q     quit",
	} {
		line(hint, core.ColorGray)
	}
}

func formatClock(d time.Duration) string {
	s := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

// renderOverlay draws a centered message box.
func renderOverlay(dst *core.Screen, line1, line2 string) {
	textW := max(len([]rune(line1)), len([]rune(line2)))
	box := dst.Bounds().CenterIn(textW+4, 5)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorWhite)
	drawCentered(dst, box, box.Y+1, line1)
	drawCentered(dst, box, box.Y+3, line2)
}

func drawCentered(dst *core.Screen, box core.Rect, y int, text string) {
	x := box.X + (box.W-len([]rune(text)))/2
	dst.DrawText(x, y, text)
}
