package partition

import (
	"iter"

	"github.com/matzehuels/funcstructs/pkg/core/seq"
	fserrors "github.com/matzehuels/funcstructs/pkg/errors"
)

// Enumerator walks every partition of n into l parts, pull style. The first
// call to Next positions it on the balanced minimal partition.
type Enumerator struct {
	part  *Partition // nil when there is nothing to enumerate
	index int
	done  bool
}

// NewEnumerator returns an enumerator over the partitions of n into l
// parts. It fails with INVALID_ARGUMENTS when n or l is negative. Pairs with
// no partitions produce an enumerator that is immediately done.
func NewEnumerator(n, l int) (*Enumerator, error) {
	if err := fserrors.ValidatePartitionArgs(n, l); err != nil {
		return nil, err
	}
	e := &Enumerator{}
	if n < l || (l == 0 && n > 0) {
		e.done = true
		return e, nil
	}
	p, err := Minimal(n, l)
	if err != nil {
		return nil, err
	}
	e.part = p
	return e, nil
}

// Next advances to the next partition and reports whether there is one.
func (e *Enumerator) Next() bool {
	if e.done {
		return false
	}
	if e.index == 0 {
		e.index = 1
		return true
	}
	ok, err := e.part.Next()
	if err != nil {
		// Unreachable: done is set the first time Next reports no successor.
		panic(err)
	}
	if !ok {
		e.done = true
		return false
	}
	e.index++
	return true
}

// Index returns the 1-based position of the current partition, or 0 before
// the first call to Next.
func (e *Enumerator) Index() int { return e.index }

// Partition returns the current partition. It is mutated by the following
// Next and is nil for empty enumerations.
func (e *Enumerator) Partition() *Partition { return e.part }

// Item returns the current partition as an indexed view.
func (e *Enumerator) Item() seq.Item {
	var v seq.View
	if e.part != nil {
		v = e.part.Components()
	}
	return seq.Item{Index: e.index, View: v}
}

// Enumerate returns the partitions of n into exactly l parts as a lazy
// sequence, in ascending lexicographic order.
//
// Each range over the returned sequence starts again from the minimal
// partition. Items share one buffer: an item's view is only valid until the
// loop body returns.
//
// Enumerate fails with INVALID_ARGUMENTS when n or l is negative. Otherwise
// it yields p(n, l) items, which may be zero.
func Enumerate(n, l int) (iter.Seq[seq.Item], error) {
	if _, err := NewEnumerator(n, l); err != nil {
		return nil, err
	}
	return func(yield func(seq.Item) bool) {
		e, _ := NewEnumerator(n, l)
		for e.Next() {
			if !yield(e.Item()) {
				return
			}
		}
	}, nil
}
