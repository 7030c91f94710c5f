package anim

import (
	"fmt"

	"gonum.org/v1/gonum/interp"
)

// Curve shapes animation progress. Input and output are nominally in the
// 0 to 1 range; outputs outside it are allowed mid-flight (overshoot) but a
// curve must map 0 to 0 and 1 to 1.
type Curve func(float64) float64

// Standard curves matching Fyne's built-in animation curves.
var (
	Linear    Curve = func(t float64) float64 { return t }
	EaseIn    Curve = func(t float64) float64 { return t * t }
	EaseOut   Curve = func(t float64) float64 { return t * (2 - t) }
	EaseInOut Curve = func(t float64) float64 {
		if t < 0.5 {
			return 2 * t * t
		}
		return -1 + (4-2*t)*t
	}
)

// CurveByName resolves a curve from its style-file name.
func CurveByName(name string) (Curve, error) {
	switch name {
	case "", "ease-in-out":
		return EaseInOut, nil
	case "linear":
		return Linear, nil
	case "ease-in":
		return EaseIn, nil
	case "ease-out":
		return EaseOut, nil
	default:
		return nil, fmt.Errorf("unknown easing curve %q", name)
	}
}

// KeyframeCurve builds a curve passing through the given progress keyframes,
// interpolated with an Akima spline. The keyframes are output values at
// equally spaced times; the first must be 0 and the last 1, and at least two
// are required.
func KeyframeCurve(keyframes []float64) (Curve, error) {
	if len(keyframes) < 2 {
		return nil, fmt.Errorf("keyframe curve needs at least 2 keyframes, got %d", len(keyframes))
	}
	if keyframes[0] != 0 || keyframes[len(keyframes)-1] != 1 {
		return nil, fmt.Errorf("keyframe curve must start at 0 and end at 1")
	}

	xs := make([]float64, len(keyframes))
	ys := make([]float64, len(keyframes))
	step := 1.0 / float64(len(keyframes)-1)
	for i, y := range keyframes {
		xs[i] = float64(i) * step
		ys[i] = y
	}

	var spline interp.AkimaSpline
	if err := spline.Fit(xs, ys); err != nil {
		return nil, fmt.Errorf("fit keyframe spline: %w", err)
	}

	return func(t float64) float64 {
		switch {
		case t <= 0:
			return 0
		case t >= 1:
			return 1
		default:
			return spline.Predict(t)
		}
	}, nil
}

// evalClamped evaluates c with the endpoints pinned, so a transition always
// starts exactly at its source value and lands exactly on its target.
func evalClamped(c Curve, t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	default:
		return c(t)
	}
}
