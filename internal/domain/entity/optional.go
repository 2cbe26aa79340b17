package entity

// Optional holds a value that may be absent from a wire payload.
// The zero value is absent.
type Optional[T any] struct {
	value T
	set   bool
}

// Some returns a present Optional holding v
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// Get returns the stored value, which is the zero value of T if nothing was ever set
func (o Optional[T]) Get() T {
	return o.value
}

// Lookup returns the stored value and whether it is present
func (o Optional[T]) Lookup() (T, bool) {
	return o.value, o.set
}

func (o Optional[T]) IsSet() bool {
	return o.set
}

func (o *Optional[T]) Set(v T) {
	o.value = v
	o.set = true
}

// Unset marks the value absent. The value itself is kept.
func (o *Optional[T]) Unset() {
	o.set = false
}
