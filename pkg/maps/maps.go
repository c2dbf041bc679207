package maps

// Returns a new map containing the entries for which the selector returns true.
func Select[K comparable, V any, M ~map[K]V](m M, selector func(K, V) bool) M {
	if m == nil {
		return nil
	}

	res := make(M, len(m))
	for k, v := range m {
		if selector(k, v) {
			res[k] = v
		}
	}
	return res
}

// Maps a map to a slice. Note that iteration order over a map is not defined,
// so make no assumptions about the order of the items in the resulting slice.
func MapToSlice[T any, K comparable, V any, M ~map[K]V](m M, mapping func(K, V) T) []T {
	if len(m) == 0 {
		return nil
	}

	res := make([]T, 0, len(m))
	for k, v := range m {
		res = append(res, mapping(k, v))
	}
	return res
}

func Keys[K comparable, V any, M ~map[K]V](m M) []K {
	return MapToSlice(m, func(k K, _ V) K { return k })
}
