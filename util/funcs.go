package util

import (
	"cmp"
	"fmt"
	"iter"
	"strings"

	"github.com/hashicorp/go-set/v3"
)

// JoinString renders elems separated by sep, using each element's String()
func JoinString[A fmt.Stringer](elems []A, sep string) string {
	strs := make([]string, len(elems))
	for i, elem := range elems {
		strs[i] = elem.String()
	}
	return strings.Join(strs, sep)
}

func ConcatIter[A any](iter ...iter.Seq[A]) iter.Seq[A] {
	return func(yield func(A) bool) {
		for _, thisIter := range iter {
			for v := range thisIter {
				if !yield(v) {
					return
				}
			}
		}
	}
}

func ComparingHashable[A set.Hasher[B], B set.Hash](a, b A) int {
	return cmp.Compare(a.Hash(), b.Hash())
}
