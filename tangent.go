package ink

// Tangent estimation for segment endpoints and split boundaries. Estimates
// come from local neighbor displacement; a degenerate neighborhood (repeated
// or coincident samples) falls back to the chord between the slice
// endpoints, and a fully degenerate slice to the unit x vector. Degeneracy
// is never reported to callers.

// tangentWindow bounds how many neighbors are consulted, rejecting
// single-sample jitter without smearing genuine direction changes.
const tangentWindow = 2

// leftTangent estimates the unit tangent at pts[0], pointing into the curve.
func leftTangent(pts []Point) Vec2 {
	for i := 1; i < len(pts) && i <= tangentWindow; i++ {
		if v := pts[i].Sub(pts[0]); v.Hypot2() > 0 {
			return v.Normalize()
		}
	}
	return chordTangent(pts)
}

// rightTangent estimates the unit tangent at pts[len(pts)-1], pointing
// backward into the curve.
func rightTangent(pts []Point) Vec2 {
	last := len(pts) - 1
	for i := 1; i <= last && i <= tangentWindow; i++ {
		if v := pts[last-i].Sub(pts[last]); v.Hypot2() > 0 {
			return v.Normalize()
		}
	}
	return chordTangent(pts).Negate()
}

// centerTangent estimates the unit tangent at the interior point pts[i]
// where a segment is being split, averaging the incoming and outgoing
// displacement so both halves share a direction and join smoothly. Like
// [rightTangent], the result points backward, toward pts[0]; the right half
// of a split negates it.
func centerTangent(pts []Point, i int) Vec2 {
	v1 := pts[i-1].Sub(pts[i])
	v2 := pts[i].Sub(pts[i+1])
	avg := v1.Add(v2).Mul(0.5)
	if avg.Hypot2() > 0 {
		return avg.Normalize()
	}
	// The neighbors double back symmetrically; any average is zero. Use the
	// perpendicular of the incoming displacement.
	if v1.Hypot2() > 0 {
		return Vec(-v1.Y, v1.X).Normalize()
	}
	return chordTangent(pts).Negate()
}

// chordTangent returns the normalized chord between the slice endpoints, or
// the unit x vector if the endpoints coincide.
func chordTangent(pts []Point) Vec2 {
	v := pts[len(pts)-1].Sub(pts[0])
	if v.Hypot2() > 0 {
		return v.Normalize()
	}
	return Vec(1, 0)
}
