package stream

import "fmt"

// Kind is the state reported by a single cursor advance.
type Kind uint8

const (
	// KindNotYet means progress was made but no item is available yet.
	// The caller re-polls immediately.
	KindNotYet Kind = iota
	// KindReady means exactly one item is available.
	KindReady
	// KindDone means the cursor is exhausted.
	KindDone
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNotYet:
		return "not_yet"
	case KindReady:
		return "ready"
	case KindDone:
		return "done"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Step is the tri-state result of advancing a cursor once.
// The zero value is NotYet.
type Step[T any] struct {
	kind Kind
	item T
}

// NotYet returns a step that carries no item and does not end the cursor.
func NotYet[T any]() Step[T] { return Step[T]{kind: KindNotYet} }

// Ready returns a step carrying v.
func Ready[T any](v T) Step[T] { return Step[T]{kind: KindReady, item: v} }

// Done returns the terminal step.
func Done[T any]() Step[T] { return Step[T]{kind: KindDone} }

// Kind returns the state of the step.
func (s Step[T]) Kind() Kind { return s.kind }

// IsNotYet reports whether the step carries no item and is not terminal.
func (s Step[T]) IsNotYet() bool { return s.kind == KindNotYet }

// IsReady reports whether the step carries an item.
func (s Step[T]) IsReady() bool { return s.kind == KindReady }

// IsDone reports whether the step is terminal.
func (s Step[T]) IsDone() bool { return s.kind == KindDone }

// Item returns the carried item and true for a Ready step.
func (s Step[T]) Item() (T, bool) {
	if s.kind != KindReady {
		var zero T
		return zero, false
	}
	return s.item, true
}

func (s Step[T]) String() string {
	if s.kind == KindReady {
		return fmt.Sprintf("ready(%v)", s.item)
	}
	return s.kind.String()
}

// MapStep transforms the payload of a Ready step. NotYet and Done pass through.
func MapStep[T, U any](s Step[T], fn func(T) U) Step[U] {
	switch s.kind {
	case KindReady:
		return Ready(fn(s.item))
	case KindDone:
		return Done[U]()
	default:
		return NotYet[U]()
	}
}

// AndThen replaces a Ready step with the step returned by fn.
// NotYet and Done pass through.
func AndThen[T, U any](s Step[T], fn func(T) Step[U]) Step[U] {
	switch s.kind {
	case KindReady:
		return fn(s.item)
	case KindDone:
		return Done[U]()
	default:
		return NotYet[U]()
	}
}

// Transpose converts a step carrying a fallible value into a fallible step.
// A failed item yields its error together with a NotYet step, so the caller
// can still tell that the cursor has not finished.
func Transpose[T any](s Step[Result[T]]) (Step[T], error) {
	switch s.kind {
	case KindReady:
		if s.item.Err != nil {
			return NotYet[T](), s.item.Err
		}
		return Ready(s.item.Value), nil
	case KindDone:
		return Done[T](), nil
	default:
		return NotYet[T](), nil
	}
}
