// Package ink fits smooth piecewise cubic Bézier curves to freehand pointer
// input.
//
// The input is an ordered sequence of 2D points sampled during a drawing
// gesture; the output is a [Spline], an ordered sequence of [CubicBez]
// segments that approximates the input within a configurable error bound.
// Fitting is the package's only job: capturing pointer events, rendering the
// resulting curves, and persisting them are left to the caller.
//
// # Fitting
//
// [FitSpline] is the entry point. It cleans the raw samples, splits the
// gesture at sharp corners into independently fittable sub-strokes, and fits
// each sub-stroke by least squares: the two free control points of a cubic
// are solved for along estimated endpoint tangents, per-point curve
// parameters are refined by Newton–Raphson, and any sub-stroke whose maximum
// error still exceeds the tolerance is split at its worst-fit point and
// re-fit recursively. Recursion is hard-bounded by a depth cap, so fitting
// terminates for any input; a segment emitted at the cap may exceed the
// tolerance.
//
// Sub-strokes are fit concurrently, but results are merged by input position,
// so two runs over the same input and options produce bit-identical splines.
//
// The approach follows Philip J. Schneider's algorithm from Graphics Gems,
// "An Algorithm for Automatically Fitting Digitized Curves".
//
// # Logging
//
// The package produces no log output by default. Call [SetLogger] to receive
// debug-level diagnostics, such as the number of segments emitted at the
// recursion depth cap.
package ink
