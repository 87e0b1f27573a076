package util

import "golang.org/x/exp/constraints"

type Number interface {
	constraints.Integer | constraints.Float
}

func SumG[T Number](arr []T) T {
	var sum T
	for _, v := range arr {
		sum += v
	}
	return sum
}

func MinG[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

// CopyG returns a copy of arr. A nil arr stays nil.
func CopyG[T any](arr []T) []T {
	if arr == nil {
		return nil
	}
	copyArr := make([]T, len(arr))
	copy(copyArr, arr)
	return copyArr
}

// SpliceG returns dst with the elements starting at index replaced by src.
// The result always has the length of dst, src elements past the end of dst are dropped.
// dst is left untouched.
func SpliceG[T any](dst, src []T, index int) []T {
	out := make([]T, 0, len(dst))
	out = append(out, dst[:index]...)
	n := MinG(len(src), len(dst)-index)
	out = append(out, src[:n]...)
	if index+len(src) < len(dst) {
		out = append(out, dst[index+len(src):]...)
	}
	return out
}
