package entity

import (
	"iter"
	"slices"
)

// History is an append-only ordered sequence.
type History[T any] struct {
	items []T
}

func (that *History[T]) Append(item T) {
	that.items = append(that.items, item)
}

func (that *History[T]) Len() int {
	return len(that.items)
}

// At returns the i-th item in insertion order.
func (that *History[T]) At(i int) (T, bool) {
	if i < 0 || i >= len(that.items) {
		var zero T
		return zero, false
	}

	return that.items[i], true
}

// Entries returns a copy of all items in insertion order.
func (that *History[T]) Entries() []T {
	return slices.Clone(that.items)
}

// All iterates over the items in insertion order.
func (that *History[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, item := range that.items {
			if !yield(i, item) {
				return
			}
		}
	}
}
