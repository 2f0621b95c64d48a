package relq

// Option is an explicit optional value. The zero value is absent.
//
// Optional record fields use Option rather than a sentinel number so
// that "absent" is distinct from every legitimate value, including
// zero. Predicates over an Option can only observe presence through
// IsSome or Get; there is no sentinel to collide with.
type Option[T any] struct {
	value T
	ok    bool
}

// Some wraps a present value.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, ok: true}
}

// None is the absent value.
func None[T any]() Option[T] {
	return Option[T]{}
}

// IsSome reports whether a value is present.
func (o Option[T]) IsSome() bool {
	return o.ok
}

// Get returns the value and whether it is present.
// When absent, the returned value is the zero value of T.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.ok
}

// OrZero returns the value, or the zero value of T when absent.
func (o Option[T]) OrZero() T {
	return o.value
}
