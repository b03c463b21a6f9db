package ink

// Spline is an ordered sequence of cubic Bézier segments in which
// consecutive segments share an endpoint exactly: s[i].P3 == s[i+1].P0.
// Splines produced by [FitSpline] maintain this invariant; tangent
// continuity at the joins is not automatic, see [Spline.Smoothed].
//
// A spline handed to a consumer is a finished artifact. Edits start a new
// fit from new input rather than mutating an existing spline.
type Spline []CubicBez

// Start returns the first control point of the spline.
func (s Spline) Start() Point {
	return s[0].P0
}

// End returns the last control point of the spline.
func (s Spline) End() Point {
	return s[len(s)-1].P3
}

// IsContinuous reports whether every pair of adjacent segments shares its
// boundary point exactly.
func (s Spline) IsContinuous() bool {
	for i := 1; i < len(s); i++ {
		if s[i].P0 != s[i-1].P3 {
			return false
		}
	}
	return true
}

// Smoothed returns a copy of the spline with each segment's first control
// point adjusted to mirror the previous segment's end tangent, making the
// joins G1 continuous. The adjustment trades some fit accuracy for
// smoothness. Positional continuity is preserved.
func (s Spline) Smoothed() Spline {
	out := make(Spline, len(s))
	copy(out, s)
	for i := 1; i < len(out); i++ {
		prev := out[i-1]
		tangent := prev.P3.Sub(prev.P2)
		out[i].P1 = out[i].P0.Translate(tangent)
	}
	return out
}
