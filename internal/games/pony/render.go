package pony

import (
	"fmt"
	"math"

	"github.com/vovakirdan/clapjump/internal/core"
)

// hintDistance is how close the finish must be before the HUD counts down.
const hintDistance = 900

// viewport maps world pixels onto screen cells.
type viewport struct {
	left   float64 // world x at column 0
	cellW  float64
	cellH  float64
	width  int
	height int
}

func (v viewport) col(x float64) int { return int(math.Floor((x - v.left) / v.cellW)) }
func (v viewport) row(y float64) int { return int(math.Floor(y / v.cellH)) }

// cols returns the first column and the column count covering [x, x+w).
func (v viewport) cols(x, w float64) (int, int) {
	c0 := v.col(x)
	return c0, max(1, v.col(x+w)-c0)
}

func (g *Game) viewport(dst *core.Screen) viewport {
	cellW := g.cfg.View.CellWidth
	if cellW <= 0 {
		cellW = 12
	}
	cellH := g.cfg.World.Height / float64(max(dst.Height(), 1))
	left := max(0, g.x-float64(g.cfg.View.PonyColumn)*cellW)
	return viewport{left: left, cellW: cellW, cellH: cellH, width: dst.Width(), height: dst.Height()}
}

// Render draws the visible part of the level.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	v := g.viewport(dst)
	groundRow := v.row(g.cfg.World.GroundY)

	for _, s := range g.level.Ground {
		c0, n := v.cols(s.From, s.To-s.From)
		dst.DrawHLine(c0, groundRow, n, '▀', core.ColorBrightGreen)
		dst.FillRect(core.NewRect(c0, groundRow+1, n, v.height-groundRow-1), '▓', core.ColorGreen)
	}
	for _, gap := range g.level.Gaps {
		if gap.Kind != River {
			continue
		}
		c0, n := v.cols(gap.Span.From, gap.Span.To-gap.Span.From)
		dst.FillRect(core.NewRect(c0, groundRow+1, n, v.height-groundRow-1), '≈', core.ColorBlue)
	}

	for _, c := range g.level.Clouds {
		c0, n := v.cols(c.Visual.X, c.Visual.W)
		r0 := v.row(c.Visual.Y)
		rows := max(1, v.row(c.Visual.Bottom())-r0)
		ch, color := '░', core.ColorGray
		if c.Platform {
			ch, color = '▒', core.ColorBrightWhite
		}
		dst.FillRect(core.NewRect(c0, r0, n, rows), ch, color)
	}

	for i, o := range g.level.Obstacles {
		ch, color := 'ψ', core.ColorGreen
		if o.Kind == Flower {
			ch, color = '✿', core.ColorBrightMagenta
		}
		if g.passed[i] {
			color = core.ColorGray
		}
		c0, n := v.cols(o.X, 22)
		dst.DrawHLine(c0, groundRow-1, n, ch, color)
	}

	g.drawFinish(dst, v)
	g.drawPony(dst, v)
	g.drawHUD(dst)

	st := g.State()
	switch {
	case st.Won:
		dst.DrawMessage("FINISH!", fmt.Sprintf("Score: %d  |  Press R to restart", st.Score), core.ColorBrightYellow)
	case st.GameOver:
		dst.DrawMessage("GAME OVER", fmt.Sprintf("%s  Score: %d  |  R to restart", g.message, st.Score), core.ColorBrightRed)
	case st.Paused:
		dst.DrawMessage("PAUSED", "Press P to resume", core.ColorWhite)
	}
}

func (g *Game) drawFinish(dst *core.Screen, v viewport) {
	size := g.cfg.World.FinishSize
	centerY := g.cfg.World.GroundY - size + size/12
	c0, n := v.cols(g.level.FinishX-size/2, size)
	r0 := v.row(centerY - size/2)
	rows := max(3, v.row(centerY+size/2)-r0)

	box := core.NewRect(c0, r0, n, rows)
	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorBrightRed)
	dst.DrawTextColored(c0+(n-4)/2, r0+rows/2, "GOAL", core.ColorBrightRed)
}

func (g *Game) drawPony(dst *core.Screen, v viewport) {
	col := v.col(g.x)
	legs := v.row(g.y) - 1

	dst.SetColored(col, legs-1, '~', core.ColorBrightMagenta)
	dst.SetColored(col+1, legs-1, '█', core.ColorBrightYellow)
	dst.SetColored(col+2, legs-1, '▙', core.ColorBrightYellow)

	leg1, leg2 := '╱', '╲'
	if g.grounded && (g.ticks/6)%2 == 1 {
		leg1, leg2 = '│', '│'
	}
	dst.SetColored(col, legs, leg1, core.ColorYellow)
	dst.SetColored(col+2, legs, leg2, core.ColorYellow)
}

func (g *Game) drawHUD(dst *core.Screen) {
	st := g.State()
	dst.DrawText(1, 0, fmt.Sprintf(" Score: %d   Combo: %d ", st.Score, g.combo))

	hint := "Clap to jump. Pits and rivers end the run."
	if remain := g.Remaining(); remain < hintDistance {
		hint = fmt.Sprintf("Finish in %dpx", int(remain))
	}
	dst.DrawText(1, 1, " "+hint+" ")
}
