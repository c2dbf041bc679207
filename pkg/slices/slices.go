package slices

func Contains[T comparable, S ~[]T](ss S, s T) bool {
	return Index(ss, s) != -1
}

func Index[T comparable, S ~[]T](ss S, s T) int {
	for i, b := range ss {
		if b == s {
			return i
		}
	}
	return -1
}

// Transforms a slice of T into a slice of R using the given mapping function.
func Map[R any, T any, S ~[]T](ss S, mapping func(T) R) []R {
	if len(ss) == 0 {
		return nil
	}

	res := make([]R, len(ss))
	for i, s := range ss {
		res[i] = mapping(s)
	}
	return res
}

// Returns the elements of the slice for which the selector returns true,
// preserving order.
func Select[T any, S ~[]T](ss S, selector func(T) bool) S {
	var res S
	for _, s := range ss {
		if selector(s) {
			res = append(res, s)
		}
	}
	return res
}
