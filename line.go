package ink

// Line represents a line segment.
type Line struct {
	// The line's start point.
	P0 Point
	// The line's end point.
	P1 Point
}

// Length returns the length of the line.
func (l Line) Length() float64 {
	return l.P1.Sub(l.P0).Hypot()
}

func (l Line) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

// Nearest returns the squared distance from pt to the line segment, and the
// parameter of the closest point on the segment.
func (l Line) Nearest(pt Point) (distSq, t float64) {
	d := l.P1.Sub(l.P0)
	dotp := d.Dot(pt.Sub(l.P0))
	dSquared := d.Dot(d)
	if dotp <= 0.0 {
		return pt.Sub(l.P0).Hypot2(), 0.0
	} else if dotp >= dSquared {
		return pt.Sub(l.P1).Hypot2(), 1.0
	} else {
		t := dotp / dSquared
		dist := pt.Sub(l.Eval(t)).Hypot2()
		return dist, t
	}
}

// ToCubic raises the line to a cubic Bézier segment with the free control
// points at the third points of the chord. It is used as the fallback fit for
// sub-strokes too short or too degenerate for the least-squares fit.
func (l Line) ToCubic() CubicBez {
	return CubicBez{
		l.P0,
		l.P0.Lerp(l.P1, 1.0/3.0),
		l.P1.Lerp(l.P0, 1.0/3.0),
		l.P1,
	}
}
