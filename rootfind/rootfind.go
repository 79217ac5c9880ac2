// Package rootfind implements a deterministic one-dimensional root finder
// used to invert bond pricing formulas (price -> YTM) where no closed form
// exists. Brent's method is preferred for its superlinear convergence on
// smooth monotone functions; a bisection/secant hybrid guards the cases
// where Brent's inverse-quadratic step would misbehave.
package rootfind

import (
	"errors"
	"fmt"
	"math"
)

// ErrDidNotConverge is returned when the solver exhausts its iteration
// budget without reaching the requested tolerance.
var ErrDidNotConverge = errors.New("rootfind: did not converge")

// Result carries the solver's outcome, including on failure: the best
// estimate and its residual, so callers can report useful diagnostics.
type Result struct {
	Root       float64
	Residual   float64
	Iterations int
}

// Brent finds x in [lo, hi] such that |f(x)| <= tol, using Brent's method.
// f must be continuous on [lo, hi] with f(lo) and f(hi) of opposite sign
// (or exactly zero at an endpoint); the implementation is otherwise a direct,
// deterministic transcription of the classical algorithm (inverse
// quadratic interpolation, falling back to secant, falling back to
// bisection), so identical inputs always produce bitwise-identical output.
func Brent(f func(float64) float64, lo, hi, tol float64, maxIter int) (Result, error) {
	a, b := lo, hi
	fa, fb := f(a), f(b)

	if fa == 0 {
		return Result{Root: a, Residual: 0, Iterations: 0}, nil
	}
	if fb == 0 {
		return Result{Root: b, Residual: 0, Iterations: 0}, nil
	}
	if sameSign(fa, fb) {
		return Result{Root: b, Residual: fb, Iterations: 0},
			fmt.Errorf("rootfind: %w: f(%g)=%g and f(%g)=%g do not bracket a root", ErrDidNotConverge, a, fa, b, fb)
	}

	// Ensure |f(a)| >= |f(b)|: b is always the current best estimate.
	if math.Abs(fa) < math.Abs(fb) {
		a, b = b, a
		fa, fb = fb, fa
	}

	c, fc := a, fa
	mflag := true
	var d float64

	for iter := 1; iter <= maxIter; iter++ {
		if math.Abs(fb) <= tol {
			return Result{Root: b, Residual: fb, Iterations: iter - 1}, nil
		}

		var s float64
		if fa != fc && fb != fc {
			// Inverse quadratic interpolation.
			s = a*fb*fc/((fa-fb)*(fa-fc)) +
				b*fa*fc/((fb-fa)*(fb-fc)) +
				c*fa*fb/((fc-fa)*(fc-fb))
		} else {
			// Secant.
			s = b - fb*(b-a)/(fb-fa)
		}

		// Conditions under which Brent falls back to bisection.
		cond1 := (s-(3*a+b)/4)*(s-b) >= 0
		cond2 := mflag && math.Abs(s-b) >= math.Abs(b-c)/2
		cond3 := !mflag && math.Abs(s-b) >= math.Abs(c-d)/2
		cond4 := mflag && math.Abs(b-c) < tol
		cond5 := !mflag && math.Abs(c-d) < tol

		if cond1 || cond2 || cond3 || cond4 || cond5 {
			s = (a + b) / 2
			mflag = true
		} else {
			mflag = false
		}

		fs := f(s)
		d = c
		c, fc = b, fb

		if sameSign(fa, fs) {
			a, fa = s, fs
		} else {
			b, fb = s, fs
		}

		if math.Abs(fa) < math.Abs(fb) {
			a, b = b, a
			fa, fb = fb, fa
		}

		if math.Abs(fb) <= tol {
			return Result{Root: b, Residual: fb, Iterations: iter}, nil
		}
	}

	return Result{Root: b, Residual: fb, Iterations: maxIter},
		fmt.Errorf("rootfind: %w after %d iterations, residual=%g", ErrDidNotConverge, maxIter, fb)
}

func sameSign(x, y float64) bool {
	return (x > 0 && y > 0) || (x < 0 && y < 0)
}
