package utils

import (
	"sync/atomic"
)

// AtomicValue is a typed atomic.Value. Load must not be called
// before a value has been stored.
type AtomicValue[T any] struct {
	value atomic.Value
}

func (v *AtomicValue[T]) Load() T {
	return v.value.Load().(T)
}

func (v *AtomicValue[T]) Store(new T) {
	v.value.Store(new)
}
