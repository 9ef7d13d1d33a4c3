package protocols

import "errors"

var ErrExhausted = errors.New("iterator exhausted")

type Iterator[T any] interface {
	Next() (T, error)
	HasNext() bool
}

type Aggregate[T any] interface{ CreateIterator() Iterator[T] }

type sliceIterator[T any] struct {
	items []T
	next  int
}

// FromSlice iterates items in order. The slice is not copied.
func FromSlice[T any](items []T) Iterator[T] {
	return &sliceIterator[T]{items: items}
}

func (it *sliceIterator[T]) HasNext() bool { return it.next < len(it.items) }

func (it *sliceIterator[T]) Next() (T, error) {
	if !it.HasNext() {
		var zero T
		return zero, ErrExhausted
	}
	item := it.items[it.next]
	it.next++
	return item, nil
}

// Collect drains it into a slice.
func Collect[T any](it Iterator[T]) []T {
	var out []T
	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			break
		}
		out = append(out, item)
	}
	return out
}
