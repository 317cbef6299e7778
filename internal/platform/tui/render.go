package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/clapjump/internal/clap"
	"github.com/vovakirdan/clapjump/internal/core"
)

func styleFor(c core.Color) lipgloss.Style {
	if c.IsDefault() {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.ANSI()))
}

var (
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("236"))
	statusOffStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Background(lipgloss.Color("236"))
	clapFlashStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("16")).Background(lipgloss.Color("11"))
)

// RenderScreen converts a Screen buffer to a styled string.
// Adjacent cells of one color are emitted as a single styled run.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < s.Width(); {
			color := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}
			sb.WriteString(styleFor(color).Render(run.String()))
		}
	}
	return sb.String()
}

// statusLine is the one-row mic summary shown under a game.
type statusLine struct {
	Text        string
	Listening   bool
	Sensitivity float64
	Claps       int
	Reading     clap.Reading
	Flash       bool // a clap fired recently
}

func (l statusLine) render(width int) string {
	style := statusOffStyle
	if l.Listening {
		style = statusStyle
	}

	left := " " + l.Text
	right := ""
	if l.Listening {
		right = fmt.Sprintf(" %s sens %.2f  claps %d ",
			levelBar(l.Reading.Peak, l.Reading.Threshold, 10), l.Sensitivity, l.Claps)
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		left = truncate(left, max(width-lipgloss.Width(right)-1, 0))
		gap = max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	}
	line := style.Render(left + strings.Repeat(" ", gap) + right)
	if l.Flash {
		line = clapFlashStyle.Render(" CLAP ") + style.Render(truncate(left+strings.Repeat(" ", gap)+right, max(width-6, 0)))
	}
	return line
}

// levelBar draws value on a scale where threshold sits at 60% of width.
// The threshold column is marked with '|'.
func levelBar(value, threshold float64, width int) string {
	if width <= 0 {
		return ""
	}
	full := threshold / 0.6
	if full <= 0 {
		full = 1
	}
	filled := int(math.Round(math.Min(value/full, 1) * float64(width)))
	mark := int(0.6 * float64(width))

	var b strings.Builder
	for i := range width {
		switch {
		case i == mark:
			b.WriteRune('|')
		case i < filled:
			b.WriteRune('█')
		default:
			b.WriteRune('·')
		}
	}
	return b.String()
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width])
}
