package ink

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

// rightAngle traces a sharp 90° turn: along the x axis to (5, 0), then up
// the line x=5. The corner is at sample index 5.
func rightAngle() []Point {
	var pts []Point
	for i := range 6 {
		pts = append(pts, Pt(float64(i), 0))
	}
	for i := 1; i <= 5; i++ {
		pts = append(pts, Pt(5, float64(i)))
	}
	return pts
}

func TestFitSplineEndpoints(t *testing.T) {
	for _, pts := range [][]Point{
		wave(100),
		colinear(10),
		rightAngle(),
		{Pt(0, 0), Pt(1, 3)},
	} {
		s, err := FitSpline(pts, 0.01, 16)
		if err != nil {
			t.Fatal(err)
		}
		diff(t, pts[0], s.Start())
		diff(t, pts[len(pts)-1], s.End())
	}
}

func TestFitSplineColinear(t *testing.T) {
	// 10 evenly spaced colinear points fit in a single segment whose
	// control points lie on the line.
	pts := colinear(10)
	s, err := FitSpline(pts, 0.01, 16)
	if err != nil {
		t.Fatal(err)
	}
	if len(s) != 1 {
		t.Fatalf("got %d segments, want 1", len(s))
	}
	l := Line{pts[0], pts[len(pts)-1]}
	for _, pt := range []Point{s[0].P0, s[0].P1, s[0].P2, s[0].P3} {
		if distSq, _ := l.Nearest(pt); distSq > 0.01 {
			t.Errorf("control point %v is %g off the line", pt, distSq)
		}
	}
}

func TestFitSplineRightAngle(t *testing.T) {
	pts := rightAngle()
	s, err := FitSpline(pts, 0.01, 16)
	if err != nil {
		t.Fatal(err)
	}
	if len(s) < 2 {
		t.Fatalf("got %d segments, want at least 2", len(s))
	}
	// Some split boundary must sit at or adjacent to the corner.
	corner := Pt(5, 0)
	nearest := math.Inf(1)
	for _, seg := range s[:len(s)-1] {
		nearest = math.Min(nearest, seg.P3.Distance(corner))
	}
	if nearest > 1 {
		t.Errorf("nearest boundary is %g from the corner, want at most 1", nearest)
	}
}

func TestFitSplineContinuity(t *testing.T) {
	s, err := FitSpline(wave(200), 1e-4, 16)
	if err != nil {
		t.Fatal(err)
	}
	if len(s) < 2 {
		t.Fatalf("got %d segments, want several at this tolerance", len(s))
	}
	if !s.IsContinuous() {
		t.Error("adjacent segments do not share endpoints exactly")
	}
}

func TestFitSplineTolerance(t *testing.T) {
	const tol = 1e-3
	pts := wave(300)
	opts := DefaultOptions()
	opts.Tolerance = tol
	opts.MaxDepth = 16
	s, err := FitSplineOpts(pts, opts)
	if err != nil {
		t.Fatal(err)
	}
	// With a generous depth budget every segment meets the tolerance: the
	// samples of each accepted segment are within tol of the curve at
	// their fitted parameters. Checking against the rendered curve
	// directly, every input point must be close to some point of the
	// spline.
	for _, pt := range pts {
		best := math.Inf(1)
		for _, seg := range s {
			for i := range 33 {
				u := float64(i) / 32
				best = math.Min(best, seg.Eval(u).DistanceSquared(pt))
			}
		}
		if best > 0.05 {
			t.Errorf("point %v is %g off the spline", pt, best)
		}
	}
}

func TestFitSplineDeterminism(t *testing.T) {
	pts := append(wave(300), rightAngle()...)
	opts := DefaultOptions()
	opts.Tolerance = 1e-3
	opts.Workers = 4

	a, err := FitSplineOpts(pts, opts)
	if err != nil {
		t.Fatal(err)
	}
	b, err := FitSplineOpts(pts, opts)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, a, b)

	// Concurrent execution is bit-identical to sequential execution.
	opts.Workers = 1
	c, err := FitSplineOpts(pts, opts)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, a, c)
}

func TestFitSplineMergeOrder(t *testing.T) {
	// Two independent sub-strokes where the first costs far more to fit
	// than the second, so with two workers the second usually finishes
	// first. The merged spline must still follow input order.
	first := wave(2000)
	last := first[len(first)-1]
	// The wave leaves its endpoint heading down; straight up is a corner.
	second := []Point{last, Pt(last.X, last.Y+5), Pt(last.X, last.Y+10)}
	pts := append(first, second[1:]...)

	opts := DefaultOptions()
	opts.Tolerance = 1e-4
	opts.Workers = 2
	s, err := FitSplineOpts(pts, opts)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, pts[0], s.Start())
	diff(t, pts[len(pts)-1], s.End())

	opts.Workers = 1
	seq, err := FitSplineOpts(pts, opts)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, seq, s)
}

func TestFitSplineCoincident(t *testing.T) {
	// Two coincident points either fail with ErrInsufficientData (when
	// preprocessing drops the duplicate) or fit to a degenerate zero-length
	// curve. Neither path may crash.
	pts := []Point{Pt(2, 3), Pt(2, 3)}

	if _, err := FitSpline(pts, 0.01, 16); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("got %v, want ErrInsufficientData", err)
	}

	opts := DefaultOptions()
	opts.MinDistance = 0
	s, err := FitSplineOpts(pts, opts)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, Spline{{Pt(2, 3), Pt(2, 3), Pt(2, 3), Pt(2, 3)}}, s)
}

func TestFitSplineInsufficientData(t *testing.T) {
	for _, pts := range [][]Point{nil, {}, {Pt(1, 2)}} {
		if _, err := FitSpline(pts, 0.01, 16); !errors.Is(err, ErrInsufficientData) {
			t.Errorf("FitSpline(%v): got %v, want ErrInsufficientData", pts, err)
		}
	}
}

func TestFitSplineSmooth(t *testing.T) {
	opts := DefaultOptions()
	opts.Tolerance = 1e-4
	opts.Smooth = true
	s, err := FitSplineOpts(wave(200), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !s.IsContinuous() {
		t.Fatal("smoothing broke positional continuity")
	}
	for i := 1; i < len(s); i++ {
		diff(t, s[i-1].P3.Sub(s[i-1].P2), s[i].P1.Sub(s[i].P0),
			cmpopts.EquateApprox(0, 1e-9))
	}
}

func TestSplitAtFeatures(t *testing.T) {
	pts := rightAngle()
	parts := splitAtFeatures(pts, math.Pi/3, 0)
	if len(parts) != 2 {
		t.Fatalf("got %d parts, want 2", len(parts))
	}
	// The sub-strokes share the corner point.
	diff(t, Pt(5, 0), parts[0][len(parts[0])-1])
	diff(t, Pt(5, 0), parts[1][0])

	// A smooth stroke is a single part.
	parts = splitAtFeatures(wave(100), math.Pi/3, 0)
	if len(parts) != 1 {
		t.Fatalf("got %d parts, want 1", len(parts))
	}

	// The span threshold carves long strokes into bounded pieces.
	parts = splitAtFeatures(colinear(100), 0, 50)
	if len(parts) < 2 {
		t.Fatalf("got %d parts, want several", len(parts))
	}
	for i := 1; i < len(parts); i++ {
		diff(t, parts[i-1][len(parts[i-1])-1], parts[i][0])
	}
}
