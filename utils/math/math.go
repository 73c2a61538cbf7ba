package math

import "golang.org/x/exp/constraints"

func DivCeil[T constraints.Integer](dividend, divisor T) T {
	base := dividend / divisor
	if dividend%divisor == 0 {
		return base
	} else {
		return base + 1
	}
}

func Max[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}
