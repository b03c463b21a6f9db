package ink

// QuadBez is a quadratic Bézier segment. The fitting engine never emits
// quadratics; they appear as the derivatives of cubics during Newton
// parameter refinement.
type QuadBez struct {
	P0 Point
	P1 Point
	P2 Point
}

func (q QuadBez) Eval(t float64) Point {
	mt := 1.0 - t
	a := Vec2(q.P0).Mul(mt * mt)
	b := Vec2(q.P1).Mul(mt * 2.0)
	c := Vec2(q.P2).Mul(t)
	d := b.Add(c)
	return Point(a.Add(d.Mul(t)))
}

// Differentiate returns the derivative of the quadratic. The result is a
// line whose points are derivative vectors; evaluate it to obtain the second
// derivative of the cubic the quadratic came from.
func (q QuadBez) Differentiate() Line {
	return Line{
		Point(q.P1.Sub(q.P0).Mul(2)),
		Point(q.P2.Sub(q.P1).Mul(2)),
	}
}
