package morsel

import (
	"fmt"

	"github.com/kbukum/streamfusion/stream"
)

// Morsel is a fixed-capacity batch of items pulled from one source.
// Only the first Len items are valid.
type Morsel[T any] struct {
	items  []T
	length int
}

func newMorsel[T any](capacity int) Morsel[T] {
	return Morsel[T]{items: make([]T, capacity)}
}

// Len returns the number of valid items.
func (m Morsel[T]) Len() int { return m.length }

// Cap returns the capacity the morsel was allocated with.
func (m Morsel[T]) Cap() int { return len(m.items) }

// At returns the i-th valid item. It panics if i is outside [0, Len()).
func (m Morsel[T]) At(i int) T {
	if i < 0 || i >= m.length {
		panic(fmt.Sprintf("morsel: index %d out of range [0, %d)", i, m.length))
	}
	return m.items[i]
}

// Items returns the valid items. The returned slice cannot be appended to
// without copying.
func (m Morsel[T]) Items() []T { return m.items[:m.length:m.length] }

// Cursor returns a cursor over the valid items.
func (m Morsel[T]) Cursor() *stream.SliceCursor[T] { return stream.FromSlice(m.Items()) }

func (m *Morsel[T]) push(v T) {
	m.items[m.length] = v
	m.length++
}

func (m Morsel[T]) full() bool { return m.length == len(m.items) }
