package rootedtree

import (
	"iter"

	"github.com/matzehuels/funcstructs/pkg/core/seq"
	fserrors "github.com/matzehuels/funcstructs/pkg/errors"
)

// Enumerator walks every tree on n nodes, pull style:
//
//	e, err := rootedtree.NewEnumerator(n)
//	...
//	for e.Next() {
//	    use(e.Item())
//	}
//
// The first call to Next positions the enumerator on the path tree.
type Enumerator struct {
	tree  *Tree
	index int
	done  bool
}

// NewEnumerator returns an enumerator over the trees on n nodes.
// It fails with INVALID_SIZE when n < 1.
func NewEnumerator(n int) (*Enumerator, error) {
	t, err := New(n)
	if err != nil {
		return nil, err
	}
	return &Enumerator{tree: t}, nil
}

// Next advances to the next tree and reports whether there is one.
func (e *Enumerator) Next() bool {
	if e.done {
		return false
	}
	if e.index == 0 {
		e.index = 1
		return true
	}
	if e.tree.IsTerminal() {
		e.done = true
		return false
	}
	if err := e.tree.Next(); err != nil {
		// IsTerminal was checked above.
		panic(err)
	}
	e.index++
	return true
}

// Index returns the 1-based position of the current tree, or 0 before the
// first call to Next.
func (e *Enumerator) Index() int { return e.index }

// Tree returns the current tree. It is mutated by the following Next.
func (e *Enumerator) Tree() *Tree { return e.tree }

// Item returns the current tree as an indexed view.
func (e *Enumerator) Item() seq.Item {
	return seq.Item{Index: e.index, View: e.tree.Levels()}
}

// Enumerate returns the trees on n nodes as a lazy sequence.
//
// Each range over the returned sequence starts again from the path tree, so
// ranging twice yields identical output. Items share one buffer: an item's
// view is only valid until the loop body returns.
//
// Enumerate fails with INVALID_SIZE when n < 1.
func Enumerate(n int) (iter.Seq[seq.Item], error) {
	if err := fserrors.ValidateTreeSize(n); err != nil {
		return nil, err
	}
	return func(yield func(seq.Item) bool) {
		e, _ := NewEnumerator(n)
		for e.Next() {
			if !yield(e.Item()) {
				return
			}
		}
	}, nil
}

// Forests returns every forest of unlabeled rooted trees with n nodes in
// total. Each forest is the list of root subtrees of one tree on n+1 nodes,
// in dominant order; the forest on zero nodes is empty.
//
// Forests fails with INVALID_SIZE when n < 0.
func Forests(n int) (iter.Seq[[]*Tree], error) {
	if n < 0 {
		return nil, fserrors.New(fserrors.ErrCodeInvalidSize, "forest size cannot be negative, got %d", n)
	}
	return func(yield func([]*Tree) bool) {
		e, _ := NewEnumerator(n + 1)
		for e.Next() {
			if !yield(e.Tree().Subtrees()) {
				return
			}
		}
	}, nil
}
