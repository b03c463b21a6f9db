package ink

import (
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Options configures one fit call. Options are plain values: pass them into
// each call rather than sharing them, and concurrent fits with different
// options coexist safely in one process.
type Options struct {
	// Tolerance is the maximum allowed squared distance from any sample to
	// the fitted curve before a segment is split.
	Tolerance float64
	// MaxDepth bounds the recursive splitting of each sub-stroke. When the
	// budget is exhausted a best-effort segment is emitted even if it
	// exceeds Tolerance.
	MaxDepth int
	// CornerThreshold is the direction change, in radians, above which an
	// interior sample is treated as a corner and the gesture is pre-split
	// into independent sub-strokes for parallel fitting. Zero disables
	// corner detection.
	CornerThreshold float64
	// SpanThreshold starts a new sub-stroke once the stroke wanders this
	// far from the current sub-stroke's start, bounding the extent each
	// fitted piece has to cover. Zero disables it.
	SpanThreshold float64
	// MinDistance is the preprocessing epsilon: consecutive samples closer
	// than this are dropped as duplicates or jitter.
	MinDistance float64
	// Resample, if positive, re-spaces the cleaned samples this far apart
	// along the stroke before fitting.
	Resample float64
	// Workers bounds how many sub-strokes are fit concurrently. Zero means
	// GOMAXPROCS.
	Workers int
	// Smooth runs the G1 smoothing post-pass (see [Spline.Smoothed]) on the
	// assembled spline.
	Smooth bool
}

// DefaultOptions returns the options used by [FitSpline], tuned for
// pixel-coordinate pointer input.
func DefaultOptions() Options {
	return Options{
		Tolerance:       1.0,
		MaxDepth:        16,
		CornerThreshold: math.Pi / 3,
		MinDistance:     1e-3,
	}
}

// FitSpline fits a piecewise cubic Bézier spline to an ordered sequence of
// points sampled from a drawing gesture, using [DefaultOptions] with the
// given tolerance and recursion bound. See [FitSplineOpts] for details and
// for the remaining knobs.
func FitSpline(points []Point, tolerance float64, maxDepth int) (Spline, error) {
	opts := DefaultOptions()
	opts.Tolerance = tolerance
	opts.MaxDepth = maxDepth
	return FitSplineOpts(points, opts)
}

// FitSplineOpts fits a piecewise cubic Bézier spline to an ordered sequence
// of points sampled from a drawing gesture.
//
// The returned spline starts at the first input point and ends at the last,
// and adjacent segments share their boundary point exactly. Every segment
// either fits its samples within opts.Tolerance or was emitted when the
// recursion budget ran out.
//
// Sub-strokes separated by corners are fit concurrently; the spline is
// assembled in input order regardless of completion order, so identical
// input and options yield a bit-identical spline on every run.
//
// The input slice must not be mutated while the call is in flight. The only
// error returned is [ErrInsufficientData]; every other input yields a valid
// spline.
func FitSplineOpts(points []Point, opts Options) (Spline, error) {
	pl, err := Preprocess(points, opts.MinDistance)
	if err != nil {
		return nil, err
	}
	if opts.Resample > 0 {
		pl = pl.Resample(opts.Resample)
	}
	parts := splitAtFeatures(pl, opts.CornerThreshold, opts.SpanThreshold)

	// Fan out one fit per sub-stroke. Each worker owns its part exclusively
	// and writes only its own slot; results are merged by input position
	// after the join, never by completion order.
	results := make([]Spline, len(parts))
	stats := make([]fitStats, len(parts))
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	var g errgroup.Group
	g.SetLimit(workers)
	for i, part := range parts {
		g.Go(func() error {
			if len(part) < 2 {
				// Degenerate sub-stroke; its slot stays empty and the
				// remaining parts still assemble.
				return nil
			}
			var s Spline
			fitCubic(part, leftTangent(part), rightTangent(part),
				opts.Tolerance, opts.MaxDepth, &s, &stats[i])
			results[i] = s
			return nil
		})
	}
	// Workers never fail; Wait is the join barrier.
	_ = g.Wait()

	var spline Spline
	depthExceeded := 0
	for i, s := range results {
		spline = append(spline, s...)
		depthExceeded += stats[i].depthExceeded
	}
	if depthExceeded > 0 {
		Logger().Debug("segments emitted at recursion depth cap",
			"count", depthExceeded, "max_depth", opts.MaxDepth)
	}
	Logger().Debug("fit complete",
		"points", len(pl), "sub_strokes", len(parts), "segments", len(spline))

	if opts.Smooth {
		spline = spline.Smoothed()
	}
	return spline, nil
}

// splitAtFeatures pre-splits the cleaned polyline into independently
// fittable sub-strokes at detected corners and at span-threshold crossings.
// Adjacent sub-strokes share their boundary point, preserving the spline's
// continuity invariant across the merge.
func splitAtFeatures(pl Polyline, cornerThreshold, spanThreshold float64) []Polyline {
	var parts []Polyline
	start := 0
	for i := 1; i < len(pl)-1; i++ {
		cut := cornerThreshold > 0 && corner(pl, i, cornerThreshold)
		if !cut && spanThreshold > 0 && pl[i].Distance(pl[start]) > spanThreshold {
			cut = true
		}
		if cut {
			parts = append(parts, pl[start:i+1])
			start = i
		}
	}
	return append(parts, pl[start:])
}

// corner reports whether the direction change at the interior point pl[i]
// exceeds threshold radians. Directions are measured across a small window
// of neighbors so that single-sample jitter does not masquerade as a corner.
func corner(pl Polyline, i int, threshold float64) bool {
	in := pl[i].Sub(pl[max(i-tangentWindow, 0)])
	out := pl[min(i+tangentWindow, len(pl)-1)].Sub(pl[i])
	if in.Hypot2() == 0 || out.Hypot2() == 0 {
		return false
	}
	angle := math.Atan2(math.Abs(in.Cross(out)), in.Dot(out))
	return angle > threshold
}
