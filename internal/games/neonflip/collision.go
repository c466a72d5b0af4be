package neonflip

// Collides reports whether the ball hits any obstacle outside its gap.
// An obstacle is only considered while it horizontally overlaps the ball;
// the ball is safe as long as its vertical extent overlaps the gap at all.
// Both tests use strict inequalities, so merely touching an edge counts as
// no overlap.
func Collides(p PlayerState, obstacles []Obstacle) bool {
	h := p.HSpan()
	v := p.VSpan()

	for _, o := range obstacles {
		if !h.Overlaps(o.HSpan()) {
			continue
		}
		if !v.Overlaps(o.Gap()) {
			return true
		}
	}
	return false
}
