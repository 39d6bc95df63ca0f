// Package bdr derives a Bounded-Delay Resource interface from a component's
// (budget, period) pair and evaluates its Supply-Bound Function.
package bdr

import "math"

// EPSILON is the floating-point tolerance used throughout the module for
// equality and close-to-zero comparisons.
const EPSILON = 1e-9

// Derive computes the (alpha, delta) BDR interface for a component with the
// given budget Q and period P. A non-positive period has no supply curve —
// such a component has no BDR interface and is treated as having zero
// supply; ok is false in that case and the returned value is the zero
// Interface.
func Derive(budget, period float64) (iface Interface, ok bool) {
	if period <= EPSILON {
		return Interface{}, false
	}
	return Interface{
		Alpha: budget / period,
		Delta: 2 * (period - budget),
	}, true
}

// Interface is the (alpha, delta) pair: after Delta time units, supply
// accrues at rate Alpha.
type Interface struct {
	Alpha float64
	Delta float64
}

// SupplyBound evaluates SBF(t) for the given interface: alpha*(t-delta) once
// t has reached delta, 0 before that. Equality against Delta is inclusive.
func SupplyBound(iface Interface, t float64) float64 {
	if t+EPSILON < iface.Delta {
		return 0
	}
	return iface.Alpha * (t - iface.Delta)
}

// SupplyBoundZero is the SBF of a component with no interface (P<=0): always
// zero, so it never admits any demand.
func SupplyBoundZero(float64) float64 { return 0 }

// CloseToZero reports whether v is within EPSILON of zero. Budget and
// exec-time comparisons use this rather than strict equality to avoid
// infinite loops from residual sub-epsilon float error.
func CloseToZero(v float64) bool {
	return math.Abs(v) < EPSILON
}
