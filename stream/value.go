package stream

// Result carries a value or an item-level failure through a cursor.
type Result[T any] struct {
	Value T
	Err   error
}

// Ok wraps a successful value.
func Ok[T any](v T) Result[T] { return Result[T]{Value: v} }

// Err wraps an item-level failure.
func Err[T any](err error) Result[T] { return Result[T]{Err: err} }

// IsErr reports whether the result holds a failure.
func (r Result[T]) IsErr() bool { return r.Err != nil }

// Unwrap returns the value and the failure, if any.
func (r Result[T]) Unwrap() (T, error) { return r.Value, r.Err }

// Option is a value that may be absent.
// The zero value is absent.
type Option[T any] struct {
	value T
	ok    bool
}

// Some returns a present option holding v.
func Some[T any](v T) Option[T] { return Option[T]{value: v, ok: true} }

// None returns an absent option.
func None[T any]() Option[T] { return Option[T]{} }

// Get returns the value and whether it is present.
func (o Option[T]) Get() (T, bool) { return o.value, o.ok }

// IsSome reports whether the value is present.
func (o Option[T]) IsSome() bool { return o.ok }

// OrElse returns the value when present, otherwise fallback.
func (o Option[T]) OrElse(fallback T) T {
	if o.ok {
		return o.value
	}
	return fallback
}

// FlattenOption collapses a nested option into a single level.
func FlattenOption[T any](o Option[Option[T]]) Option[T] {
	if !o.ok {
		return None[T]()
	}
	return o.value
}
