// Package core holds the types shared by games and the platform: the
// screen buffer, input frames and simple geometry. It has no terminal or
// audio dependencies so game logic stays testable.
package core

// Rect is an integer axis-aligned box in screen cells.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a rectangle.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the exclusive right edge.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int { return r.Y + r.H }

// Intersects reports whether r and o overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Span is a closed interval on a world axis.
type Span struct {
	From, To float64
}

// Contains reports whether v lies within the span, ends included.
func (s Span) Contains(v float64) bool {
	return v >= s.From && v <= s.To
}

// Overlaps reports whether the spans share any point.
func (s Span) Overlaps(o Span) bool {
	return s.From <= o.To && o.From <= s.To
}

// Clamp restricts val to [lo, hi].
func Clamp(val, lo, hi int) int {
	return max(lo, min(hi, val))
}

// ClampF restricts val to [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	return max(lo, min(hi, val))
}

// Min returns the smaller of a and b.
func Min(a, b int) int { return min(a, b) }

// Max returns the larger of a and b.
func Max(a, b int) int { return max(a, b) }
