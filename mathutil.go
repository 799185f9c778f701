package conveyor

import "golang.org/x/exp/constraints"

// clampOrdered returns v constrained to [lo, hi].
func clampOrdered[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
