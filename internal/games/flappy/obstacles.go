package flappy

import (
	"math/rand/v2"

	"github.com/vovakirdan/clapjump/internal/config"
	"github.com/vovakirdan/clapjump/internal/core"
)

// Pipe is a pair of columns with a gap between them.
type Pipe struct {
	X         float64
	GapY      int
	GapHeight int
	Passed    bool
}

// rects returns the top and bottom column hitboxes.
func (p Pipe) rects(width, floorY int) (top, bottom core.Rect) {
	x := int(p.X)
	top = core.NewRect(x, 0, width, p.GapY)
	gapEnd := p.GapY + p.GapHeight
	bottom = core.NewRect(x, gapEnd, width, floorY-gapEnd)
	return top, bottom
}

// pipes spawns, scrolls and retires pipes.
type pipes struct {
	list       []Pipe
	rng        *rand.Rand
	cfg        config.FlappyObstacles
	difficulty *config.DifficultyManager
	screenW    int
	floorY     int
}

func newPipes(seed int64, cfg config.FlappyObstacles, diff *config.DifficultyManager, screenW, floorY int) *pipes {
	s := uint64(seed)
	return &pipes{
		rng:        rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15)),
		cfg:        cfg,
		difficulty: diff,
		screenW:    screenW,
		floorY:     floorY,
	}
}

// update scrolls by speed and returns how many pipes the bird passed.
func (p *pipes) update(speed float64, birdX, score, ticks int) int {
	passed := 0
	kept := p.list[:0]
	for _, pipe := range p.list {
		pipe.X -= speed
		if !pipe.Passed && int(pipe.X)+p.cfg.PipeWidth < birdX {
			pipe.Passed = true
			passed++
		}
		if int(pipe.X)+p.cfg.PipeWidth > 0 {
			kept = append(kept, pipe)
		}
	}
	p.list = kept

	spacing := p.difficulty.Spacing(p.cfg.PipeSpacing, score, ticks)
	if len(p.list) == 0 || int(p.list[len(p.list)-1].X) < p.screenW-spacing {
		p.spawn(score, ticks)
	}
	return passed
}

func (p *pipes) spawn(score, ticks int) {
	maxGap := max(p.difficulty.GapSize(p.cfg.MaxGapSize, score, ticks), p.cfg.MinGapSize)
	gap := p.cfg.MinGapSize + p.rng.IntN(maxGap-p.cfg.MinGapSize+1)

	lo := p.cfg.TopMargin
	hi := max(p.floorY-p.cfg.BottomMargin-gap, lo)
	gapY := lo + p.rng.IntN(hi-lo+1)

	p.list = append(p.list, Pipe{X: float64(p.screenW), GapY: gapY, GapHeight: gap})
}

// collides reports whether r touches any pipe.
func (p *pipes) collides(r core.Rect) bool {
	for _, pipe := range p.list {
		top, bottom := pipe.rects(p.cfg.PipeWidth, p.floorY)
		if r.Intersects(top) || r.Intersects(bottom) {
			return true
		}
	}
	return false
}
