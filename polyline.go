package ink

import (
	"errors"
)

// ErrInsufficientData is returned when, after preprocessing, fewer than two
// input points remain. It is the only error [FitSpline] returns.
var ErrInsufficientData = errors.New("ink: need at least two distinct input points")

// Polyline is an ordered sequence of points, in drawing order. A polyline
// must be treated as immutable while a fit over it is in flight.
type Polyline []Point

// Length returns the total arc length of the polyline.
func (pl Polyline) Length() float64 {
	total := 0.0
	for i := 1; i < len(pl); i++ {
		total += pl[i-1].Distance(pl[i])
	}
	return total
}

// Parameterize assigns each point a parameter proportional to its cumulative
// distance along the polyline, normalized to [0, 1] (chord-length
// parameterization). The result is monotonically non-decreasing. If the
// polyline has zero length, all parameters are zero.
func (pl Polyline) Parameterize() []float64 {
	params := make([]float64, len(pl))
	for i := 1; i < len(pl); i++ {
		params[i] = params[i-1] + pl[i-1].Distance(pl[i])
	}
	total := params[len(params)-1]
	if total == 0 {
		return params
	}
	inv := 1.0 / total
	for i := range params {
		params[i] = min(params[i]*inv, 1)
	}
	// Pin the endpoint; the normalization may round it below 1.
	params[len(params)-1] = 1.0
	return params
}

// Resample returns a copy of the polyline re-spaced so that consecutive
// points are spacing apart along the original polyline, stabilizing sample
// density for input with uneven pointer-event timing. The first and last
// points are always kept. A non-positive spacing or a degenerate polyline
// returns the polyline unchanged.
func (pl Polyline) Resample(spacing float64) Polyline {
	if spacing <= 0 || len(pl) < 3 {
		return pl
	}
	out := Polyline{pl[0]}
	pos := pl[0]    // current walk position
	need := spacing // arc distance until the next emission
	for i := 1; i < len(pl); i++ {
		seg := pos.Distance(pl[i])
		for seg >= need && seg > 0 {
			pos = pos.Lerp(pl[i], need/seg)
			out = append(out, pos)
			seg -= need
			need = spacing
		}
		need -= seg
		pos = pl[i]
	}
	if out[len(out)-1] != pl[len(pl)-1] {
		out = append(out, pl[len(pl)-1])
	}
	if len(out) < 2 {
		return pl
	}
	return out
}

// Preprocess cleans a raw sample stream into a Polyline: consecutive points
// closer than minDistance to the last kept point are dropped. The first
// point always survives; if the gesture's final point was dropped as a
// near-duplicate, it replaces the last kept point so the endpoint of the
// gesture is preserved exactly. With minDistance zero, nothing is dropped
// and exact duplicates are kept.
//
// Returns [ErrInsufficientData] if fewer than two points survive.
func Preprocess(points []Point, minDistance float64) (Polyline, error) {
	if len(points) == 0 {
		return nil, ErrInsufficientData
	}
	pl := Polyline{points[0]}
	for _, pt := range points[1:] {
		if pt.Distance(pl[len(pl)-1]) < minDistance {
			continue
		}
		pl = append(pl, pt)
	}
	if len(pl) >= 2 {
		if last := points[len(points)-1]; last != pl[len(pl)-1] {
			pl[len(pl)-1] = last
		}
	}
	if len(pl) < 2 {
		return nil, ErrInsufficientData
	}
	return pl, nil
}
