package rootedtree

import (
	"slices"
	"strings"

	fserrors "github.com/matzehuels/funcstructs/pkg/errors"
)

// Parents returns the tree as a parent array over preorder node indices:
// parents[0] is 0 (the root maps to itself) and every other node maps to
// the index of its parent. This is the endofunction form of the tree.
func (t *Tree) Parents() []int {
	parents := make([]int, len(t.levels))
	// last[h] is the most recent node seen at level h; new nodes graft onto last[h-1].
	last := make([]int, t.Height()+1)
	for i := 1; i < len(t.levels); i++ {
		h := t.levels[i]
		parents[i] = last[h-1]
		last[h] = i
	}
	return parents
}

// FromParents rebuilds a tree from its endofunction form: the root is the
// one node with parents[root] == root and every other node must reach it by
// following parents. Node numbering is free, so any labelling of the same
// tree gives the same result. The tree is returned in dominant form, which
// makes FromParents(t.Parents()) equal t for every enumerated tree.
//
// It fails with INVALID_SIZE for an empty slice and INVALID_ARGUMENTS when
// parents does not describe a single rooted tree.
func FromParents(parents []int) (*Tree, error) {
	n := len(parents)
	if n == 0 {
		return nil, fserrors.New(fserrors.ErrCodeInvalidSize, "tree needs at least one node, got 0")
	}
	root := -1
	children := make([][]int, n)
	for i, p := range parents {
		if p < 0 || p >= n {
			return nil, fserrors.New(fserrors.ErrCodeInvalidArguments, "node %d has parent %d outside 0..%d", i, p, n-1)
		}
		if p == i {
			if root >= 0 {
				return nil, fserrors.New(fserrors.ErrCodeInvalidArguments, "nodes %d and %d are both roots", root, i)
			}
			root = i
			continue
		}
		children[p] = append(children[p], i)
	}
	if root < 0 {
		return nil, fserrors.New(fserrors.ErrCodeInvalidArguments, "no root: every node has a distinct parent")
	}

	levels := make([]int, 0, n)
	type frame struct{ node, level int }
	stack := []frame{{root, 1}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		levels = append(levels, f.level)
		for _, c := range slices.Backward(children[f.node]) {
			stack = append(stack, frame{c, f.level + 1})
		}
	}
	// Nodes on a cycle away from the root are never reached.
	if len(levels) != n {
		return nil, fserrors.New(fserrors.ErrCodeInvalidArguments, "%d of %d nodes do not reach the root", n-len(levels), n)
	}
	return &Tree{levels: dominant(levels)}, nil
}

// branches splits the levels following the root of levels into the
// sequences of the root's children, keeping absolute levels.
func branches(levels []int) [][]int {
	if len(levels) < 2 {
		return nil
	}
	child := levels[0] + 1
	var out [][]int
	start := 1
	for i := 2; i <= len(levels); i++ {
		if i == len(levels) || levels[i] == child {
			out = append(out, levels[start:i])
			start = i
		}
	}
	return out
}

// Branches returns copies of the level sequences of the root's child
// subtrees, in preorder, with their absolute levels (each starts at 2).
func (t *Tree) Branches() [][]int {
	bs := branches(t.levels)
	out := make([][]int, len(bs))
	for i, b := range bs {
		out[i] = slices.Clone(b)
	}
	return out
}

// Subtrees returns the root's child subtrees as independent trees, each
// re-rooted at level 1.
func (t *Tree) Subtrees() []*Tree {
	bs := branches(t.levels)
	out := make([]*Tree, len(bs))
	for i, b := range bs {
		levels := make([]int, len(b))
		for j, h := range b {
			levels[j] = h - 1
		}
		out[i] = &Tree{levels: levels}
	}
	return out
}

// dominant returns the lexicographically largest reordering of levels that
// encodes the same unordered tree.
func dominant(levels []int) []int {
	bs := branches(levels)
	canon := make([][]int, len(bs))
	for i, b := range bs {
		canon[i] = dominant(b)
	}
	slices.SortFunc(canon, func(a, b []int) int { return slices.Compare(b, a) })

	out := make([]int, 0, len(levels))
	out = append(out, levels[0])
	for _, c := range canon {
		out = append(out, c...)
	}
	return out
}

// Dominant returns the canonical form of the tree encoded by levels: every
// subtree in dominant form, siblings in descending lexicographic order. Two
// level sequences encode isomorphic trees exactly when their dominant forms
// are equal.
func Dominant(levels []int) (*Tree, error) {
	if err := Validate(levels); err != nil {
		return nil, err
	}
	return &Tree{levels: dominant(levels)}, nil
}

// IsDominant reports whether t is already in canonical form.
func (t *Tree) IsDominant() bool {
	return slices.Equal(t.levels, dominant(t.levels))
}

// degeneracy counts the automorphisms of a dominant tree: identical sibling
// subtrees can be permuted freely, and each subtree contributes its own.
func degeneracy(levels []int) int {
	deg := 1
	bs := branches(levels)
	run := 0
	for i, b := range bs {
		deg *= degeneracy(b)
		if i > 0 && slices.Equal(b, bs[i-1]) {
			run++
		} else {
			run = 1
		}
		deg *= run
	}
	return deg
}

// Degeneracy returns the size of the automorphism group of t: the number of
// ways to permute its nodes that preserve the tree. For a tree on n nodes
// there are n!/Degeneracy distinct labellings.
func (t *Tree) Degeneracy() int {
	return degeneracy(dominant(t.levels))
}

// Brackets renders t as nested brackets, one pair per node, children in
// preorder. The single node renders as "[]" and the path on three nodes as
// "[[[]]]".
func (t *Tree) Brackets() string {
	var b strings.Builder
	writeBrackets(&b, t.levels)
	return b.String()
}

func writeBrackets(b *strings.Builder, levels []int) {
	b.WriteByte('[')
	for _, br := range branches(levels) {
		writeBrackets(b, br)
	}
	b.WriteByte(']')
}
