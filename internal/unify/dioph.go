// Package unify implements ordinary unification and one-way matching
// (spec.md §4.D), plus the backtracking AC/C unification built on top of
// them and the Diophantine basis solver AC unification needs.
package unify

import "github.com/pkg/errors"

// ErrTooManyBasis is returned by Basis when the enumerated solution set
// would exceed maxBasis rows. Per spec.md §4.D, callers treat this as
// "AC unification inapplicable here" and fall back to whatever
// caller-specific behavior is appropriate (e.g. skipping the inference),
// not as a hard engine failure.
var ErrTooManyBasis = errors.New("unify: too many basis vectors")

// Basis enumerates, in lexicographic order of characteristic vector, every
// minimal nonnegative-integer solution (x, y) to the linear homogeneous
// Diophantine equation sum(coefL[i]*x[i]) = sum(coefR[j]*y[j]), using
// Huet's bounded-search algorithm: every x[i] and y[j] is bounded above by
// the same cap, the larger of the two coefficient sums, and a candidate
// vector is minimal iff no previously accepted vector is coordinatewise <=
// it. maxBasis caps the number of rows kept; exceeding it returns
// ErrTooManyBasis (spec.md §4.D: "fails with TOO_MANY_BASIS if the buffer
// overflows").
func Basis(coefL, coefR []int, maxBasis int) ([][]int, [][]int, error) {
	nl, nr := len(coefL), len(coefR)
	if nl == 0 || nr == 0 {
		return nil, nil, nil
	}
	total := 0
	for _, c := range coefL {
		if c > total {
			total = c
		}
	}
	for _, c := range coefR {
		if c > total {
			total = c
		}
	}
	// Upper bound for each unknown: the equation's single biggest
	// coefficient sum gives a safe (if loose) per-coordinate cap.
	sumL, sumR := 0, 0
	for _, c := range coefL {
		sumL += c
	}
	for _, c := range coefR {
		sumR += c
	}
	cap := sumL
	if sumR > cap {
		cap = sumR
	}
	if cap == 0 {
		cap = 1
	}

	var xs, ys [][]int
	x := make([]int, nl)
	y := make([]int, nr)

	var rec func(i int) error
	rec = func(i int) error {
		if i == nl+nr {
			lhs, rhs := 0, 0
			for k, c := range coefL {
				lhs += c * x[k]
			}
			for k, c := range coefR {
				rhs += c * y[k]
			}
			if lhs != rhs || (lhs == 0 && rhs == 0) {
				return nil
			}
			if !minimal(xs, ys, x, y) {
				return nil
			}
			if len(xs) >= maxBasis {
				return ErrTooManyBasis
			}
			xs = append(xs, append([]int(nil), x...))
			ys = append(ys, append([]int(nil), y...))
			return nil
		}
		for v := 0; v <= cap; v++ {
			if i < nl {
				x[i] = v
			} else {
				y[i-nl] = v
			}
			if err := rec(i + 1); err != nil {
				return err
			}
		}
		if i < nl {
			x[i] = 0
		} else {
			y[i-nl] = 0
		}
		return nil
	}
	if err := rec(0); err != nil {
		return nil, nil, err
	}
	return xs, ys, nil
}

// minimal reports whether candidate (x, y) is not dominated (coordinatewise
// >=, with at least one strictly greater) by any already-accepted basis
// row — the minimality condition Huet's algorithm enforces so the basis
// stays the generating set rather than every solution.
func minimal(xs, ys [][]int, x, y []int) bool {
	allZero := true
	for _, v := range x {
		if v != 0 {
			allZero = false
		}
	}
	for _, v := range y {
		if v != 0 {
			allZero = false
		}
	}
	if allZero {
		return false
	}
	for k := range xs {
		if dominates(xs[k], ys[k], x, y) {
			return false
		}
	}
	return true
}

// dominates reports whether (ax, ay) <= (bx, by) coordinatewise (i.e. ax/ay
// is a sub-combination of bx/by), which would make bx/by non-minimal if ax
// is itself an accepted row.
func dominates(ax, ay, bx, by []int) bool {
	for i := range ax {
		if ax[i] > bx[i] {
			return false
		}
	}
	for i := range ay {
		if ay[i] > by[i] {
			return false
		}
	}
	return true
}
