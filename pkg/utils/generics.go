package utils

import (
	"cmp"
	"slices"
)

func Pointer[T any](t T) *T {
	return &t
}

// ConvertSlice converts the elements of a slice to an assignable
// type, typically an interface.
func ConvertSlice[D, S any](in []S) []D {
	r := make([]D, len(in))
	for i, e := range in {
		r[i] = any(e).(D)
	}
	return r
}

func TransformSlice[E any, A ~[]E, T any](in A, m func(E) T) []T {
	r := make([]T, len(in))
	for i, v := range in {
		r[i] = m(v)
	}
	return r
}

// OrderedMapElements returns the map values ordered by their keys.
func OrderedMapElements[K cmp.Ordered, V any](m map[K]V) []V {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return TransformSlice(keys, func(k K) V {
		return m[k]
	})
}
