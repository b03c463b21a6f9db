package ink

import (
	"math"
)

const (
	// Reparameterization rounds attempted per candidate before giving up
	// and splitting.
	maxReparamRounds = 4
	// Reparameterization is only worth trying while the error is within
	// this multiple of the tolerance.
	reparamErrorRatio = 4.0
	// Determinant magnitudes below this are treated as a singular system.
	singularEpsilon = 1e-12
	// Control-point offsets beyond this multiple of the chord length are
	// rejected as loop artifacts.
	maxOffsetRatio = 3.0
)

// fitResult is one evaluated candidate: the cubic, its maximum squared
// pointwise error, and the index of the worst-fit point.
type fitResult struct {
	c       CubicBez
	maxErr2 float64
	worst   int
}

// fitStats collects per-fit diagnostics across all segments of one
// sub-stroke.
type fitStats struct {
	segments      int
	depthExceeded int
}

// generateBezier solves for the cubic best fitting pts in the least-squares
// sense, given per-point parameters and unit tangents at the endpoints. The
// endpoints are fixed at pts[0] and pts[len(pts)-1]; the free control points
// are placed along tan0 and tan1 at offsets α₁, α₂ found by solving the 2×2
// normal-equation system derived from the cubic Bernstein basis.
//
// A near-singular system, or offsets that are negative or large enough to
// fold the curve back on itself, fall back to the Wu/Barsky heuristic of
// one third of the chord length. The function always returns a cubic.
func generateBezier(pts []Point, params []float64, tan0, tan1 Vec2) CubicBez {
	first := pts[0]
	last := pts[len(pts)-1]

	// Rows of the constraint matrix: how far each sample pulls the two free
	// control points along their tangents.
	a := make([][2]Vec2, len(pts))
	for i, u := range params {
		b := 1 - u
		a[i][0] = tan0.Mul(3 * u * b * b)
		a[i][1] = tan1.Mul(3 * u * u * b)
	}

	var c00, c01, c11, x0, x1 float64
	for i, u := range params {
		c00 += a[i][0].Dot(a[i][0])
		c01 += a[i][0].Dot(a[i][1])
		c11 += a[i][1].Dot(a[i][1])

		// Residual against the degenerate curve with both free control
		// points at the endpoints.
		b := 1 - u
		base := Vec2(first).Mul(b*b*b + 3*u*b*b).Add(Vec2(last).Mul(3*u*u*b + u*u*u))
		tmp := Vec2(pts[i]).Sub(base)
		x0 += a[i][0].Dot(tmp)
		x1 += a[i][1].Dot(tmp)
	}

	detC0C1 := c00*c11 - c01*c01
	var alpha1, alpha2 float64
	if math.Abs(detC0C1) > singularEpsilon {
		alpha1 = (x0*c11 - x1*c01) / detC0C1
		alpha2 = (c00*x1 - c01*x0) / detC0C1
	}

	chord := last.Distance(first)
	epsilon := 1e-6 * chord
	if alpha1 <= epsilon || alpha2 <= epsilon ||
		alpha1 > maxOffsetRatio*chord || alpha2 > maxOffsetRatio*chord {
		third := chord / 3.0
		alpha1, alpha2 = third, third
	}

	return CubicBez{
		first,
		first.Translate(tan0.Mul(alpha1)),
		last.Translate(tan1.Mul(alpha2)),
		last,
	}
}

// maxError computes the maximum squared distance from the samples to the
// curve evaluated at their parameters, and the index of the point achieving
// it. Ties keep the lowest index so results do not depend on scan order.
func maxError(pts []Point, c CubicBez, params []float64) (maxErr2 float64, worst int) {
	worst = len(pts) / 2
	for i, u := range params {
		if d := c.Eval(u).Sub(pts[i]).Hypot2(); d > maxErr2 {
			maxErr2 = d
			worst = i
		}
	}
	return maxErr2, worst
}

// fitOnce produces and evaluates a single candidate.
func fitOnce(pts []Point, params []float64, tan0, tan1 Vec2) fitResult {
	c := generateBezier(pts, params, tan0, tan1)
	maxErr2, worst := maxError(pts, c, params)
	return fitResult{c: c, maxErr2: maxErr2, worst: worst}
}

// reparameterize refines each point's parameter with one Newton–Raphson step
// toward the parameter minimizing distance to that point, correcting the
// chord-length estimate for non-uniform sample spacing. Steps that leave
// [0, 1] or hit a vanishing denominator keep the previous parameter, so the
// result is always usable.
func reparameterize(pts []Point, c CubicBez, params []float64) []float64 {
	out := make([]float64, len(params))
	d1 := c.Differentiate()
	d2 := d1.Differentiate()
	for i, u := range params {
		out[i] = newtonStep(c, d1, d2, pts[i], u)
	}
	return out
}

// newtonStep improves the estimate u of the parameter closest to pt on c.
// It finds a root of f(u) = (C(u) − pt) · C′(u), the derivative of the
// squared distance.
func newtonStep(c CubicBez, d1 QuadBez, d2 Line, pt Point, u float64) float64 {
	diff := c.Eval(u).Sub(pt)
	dv := Vec2(d1.Eval(u))
	ddv := Vec2(d2.Eval(u))
	num := diff.Dot(dv)
	den := dv.Hypot2() + diff.Dot(ddv)
	if math.Abs(den) < singularEpsilon {
		return u
	}
	next := u - num/den
	if math.IsNaN(next) || next < 0 || next > 1 {
		return u
	}
	return next
}

// fitCubic fits pts with one cubic if it can, splitting at the worst-fit
// point and recursing otherwise, and appends the accepted segments to out in
// input order. tan0 points into the curve at pts[0]; tan1 points backward
// into the curve at pts[len(pts)-1]. tol is the maximum allowed squared
// error; depth is the remaining recursion budget.
//
// Every call appends at least one segment unless pts has fewer than two
// points, in which case it is dropped as noise.
func fitCubic(pts []Point, tan0, tan1 Vec2, tol float64, depth int, out *Spline, stats *fitStats) {
	if len(pts) < 2 {
		return
	}
	if len(pts) == 2 {
		*out = append(*out, Line{pts[0], pts[1]}.ToCubic())
		stats.segments++
		return
	}

	params := Polyline(pts).Parameterize()
	res := fitOnce(pts, params, tan0, tan1)
	if res.maxErr2 > tol && res.maxErr2 <= tol*reparamErrorRatio {
		// Close enough that refined parameters may rescue the candidate
		// without splitting.
		for range maxReparamRounds {
			params = reparameterize(pts, res.c, params)
			res = fitOnce(pts, params, tan0, tan1)
			if res.maxErr2 <= tol {
				break
			}
		}
	}
	if res.maxErr2 <= tol || depth <= 0 {
		if res.maxErr2 > tol {
			stats.depthExceeded++
		}
		*out = append(*out, res.c)
		stats.segments++
		return
	}

	// Split at the worst point, clamped to the interior so both halves
	// shrink, and re-estimate the boundary tangent so the halves join
	// smoothly.
	worst := min(max(res.worst, 1), len(pts)-2)
	tanC := centerTangent(pts, worst)
	fitCubic(pts[:worst+1], tan0, tanC, tol, depth-1, out, stats)
	fitCubic(pts[worst:], tanC.Negate(), tan1, tol, depth-1, out, stats)
}
