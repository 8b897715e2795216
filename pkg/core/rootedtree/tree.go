package rootedtree

import (
	"slices"

	"github.com/matzehuels/funcstructs/pkg/core/seq"
	fserrors "github.com/matzehuels/funcstructs/pkg/errors"
)

// Tree is an unlabeled rooted tree stored as a level sequence.
//
// The node count is fixed at construction. The sequence is owned by the Tree
// and is never handed out except through a read-only [seq.View] or a copy.
type Tree struct {
	levels []int
}

// New returns the first tree on n nodes in enumeration order: the path
// [1 2 ... n], the tree of maximum height.
//
// New fails with INVALID_SIZE when n < 1.
func New(n int) (*Tree, error) {
	if err := fserrors.ValidateTreeSize(n); err != nil {
		return nil, err
	}
	levels := make([]int, n)
	for i := range levels {
		levels[i] = i + 1
	}
	return &Tree{levels: levels}, nil
}

// FromLevels builds a tree from an explicit level sequence. The input is
// copied. It fails with INVALID_SIZE for an empty sequence and
// INVALID_ARGUMENTS when the sequence does not encode a single rooted tree.
//
// The sequence need not be dominant; see [Dominant] for canonicalization.
func FromLevels(levels []int) (*Tree, error) {
	if err := Validate(levels); err != nil {
		return nil, err
	}
	return &Tree{levels: slices.Clone(levels)}, nil
}

// Validate checks that levels encodes a rooted tree in preorder.
func Validate(levels []int) error {
	if len(levels) == 0 {
		return fserrors.New(fserrors.ErrCodeInvalidSize, "tree needs at least one node, got 0")
	}
	if levels[0] != 1 {
		return fserrors.New(fserrors.ErrCodeInvalidArguments, "root must have level 1, got %d", levels[0])
	}
	for i := 1; i < len(levels); i++ {
		if levels[i] < 2 || levels[i] > levels[i-1]+1 {
			return fserrors.New(fserrors.ErrCodeInvalidArguments,
				"level %d at position %d does not follow level %d", levels[i], i, levels[i-1])
		}
	}
	return nil
}

// Len returns the number of nodes.
func (t *Tree) Len() int { return len(t.levels) }

// Levels returns a read-only view of the level sequence. The view reflects
// later calls to Next.
func (t *Tree) Levels() seq.View { return seq.NewView(t.levels) }

// Clone returns an independent copy of t.
func (t *Tree) Clone() *Tree {
	return &Tree{levels: slices.Clone(t.levels)}
}

// Equal reports whether t and o have identical level sequences.
func (t *Tree) Equal(o *Tree) bool {
	return slices.Equal(t.levels, o.levels)
}

// Height returns the depth of the deepest node.
func (t *Tree) Height() int {
	return slices.Max(t.levels)
}

// String renders the level sequence, e.g. "[1 2 3 2]".
func (t *Tree) String() string { return t.Levels().String() }

// IsTerminal reports whether t is the last tree of its enumeration: the star
// [1 2 2 ... 2]. Trees on one or two nodes are always terminal.
func (t *Tree) IsTerminal() bool {
	return len(t.levels) <= 2 || t.levels[1] == t.levels[2]
}

// Next replaces t, in place, with the next tree in enumeration order.
//
// Next fails with PRECONDITION_VIOLATED, leaving t unchanged, when t is
// terminal. The successor is only guaranteed to visit every tree when t is in
// dominant form, which holds for every tree produced from [New].
func (t *Tree) Next() error {
	if t.IsTerminal() {
		return fserrors.New(fserrors.ErrCodePreconditionViolated, "no tree follows the star %s", t)
	}
	lv := t.levels
	n := len(lv)

	// Rightmost node not hanging directly off the root. Exists because lv[2] != lv[1].
	p := n - 1
	for lv[p] == lv[1] {
		p--
	}
	// Its nearest preorder ancestor-level node; lv[0] == 1 bounds the scan.
	q := p - 1
	for lv[q] >= lv[p] {
		q--
	}
	period := p - q
	for i := p; i < n; i++ {
		lv[i] = lv[i-period]
	}
	return nil
}
