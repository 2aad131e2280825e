package internal

import (
	"iter"
)

// IterSeq2Concat concatenates multiple dual-return iterators into a single iterator sequence.
func IterSeq2Concat[T1 any, T2 any](seqs ...iter.Seq2[T1, T2]) iter.Seq2[T1, T2] {
	return func(yield func(T1, T2) bool) {
		for _, seq := range seqs {
			for val1, val2 := range seq {
				if !yield(val1, val2) {
					return // Stop if the consumer stops
				}
			}
		}
	}
}

// IterSeq2Offset renumbers the keys of a sequence starting at base, in yield order.
func IterSeq2Offset[T any](base int, seq iter.Seq2[int, T]) iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		n := base
		for _, val := range seq {
			if !yield(n, val) {
				return
			}
			n++
		}
	}
}
