package partition

import (
	"slices"

	"github.com/matzehuels/funcstructs/pkg/core/seq"
	fserrors "github.com/matzehuels/funcstructs/pkg/errors"
)

// Partition is a partition of n into a fixed number of positive parts,
// advanced in place by Next.
type Partition struct {
	n     int
	parts []int

	// cursor is one more than the number of trailing parts known to equal 1,
	// or 1 when none are known. Only minimizeTail writes it.
	cursor int

	exhausted bool
}

// Minimal returns the balanced minimal partition of n into l parts: the
// first n mod l parts are n/l+1 and the rest are n/l.
//
// Minimal fails with INVALID_ARGUMENTS when n or l is negative or when no
// partition of n into l parts exists (n < l, or l == 0 with n > 0). The
// empty partition of 0 into 0 parts is valid.
func Minimal(n, l int) (*Partition, error) {
	if err := fserrors.ValidatePartitionArgs(n, l); err != nil {
		return nil, err
	}
	if n < l || (l == 0 && n > 0) {
		return nil, fserrors.New(fserrors.ErrCodeInvalidArguments, "no partition of %d into %d parts", n, l)
	}
	p := &Partition{n: n, parts: make([]int, l), cursor: 1}
	if l > 0 {
		p.minimizeTail(n, l)
	}
	return p, nil
}

// Validate checks that parts is a partition: every part positive and no
// part larger than the one before it. The empty slice is the partition of 0.
func Validate(parts []int) error {
	for i, x := range parts {
		if x < 1 {
			return fserrors.New(fserrors.ErrCodeInvalidArguments, "part %d at position %d is not positive", x, i)
		}
		if i > 0 && x > parts[i-1] {
			return fserrors.New(fserrors.ErrCodeInvalidArguments,
				"part %d at position %d exceeds the part %d before it", x, i, parts[i-1])
		}
	}
	return nil
}

// MinimalComponents returns the parts of the balanced minimal partition of
// n into l parts, or nil if there is none.
func MinimalComponents(n, l int) []int {
	p, err := Minimal(n, l)
	if err != nil {
		return nil
	}
	return p.parts
}

// minimizeTail overwrites the last length parts with the balanced minimal
// partition of sum into length parts and updates the trailing-ones cursor.
// Parts are assigned, never accumulated.
func (p *Partition) minimizeTail(sum, length int) {
	start := len(p.parts) - length
	binsize := sum / length
	overstuffed := sum - length*binsize
	regular := length - overstuffed

	tail := p.parts[start:]
	for i := 0; i < overstuffed; i++ {
		tail[i] = binsize + 1
	}
	for i := overstuffed; i < length; i++ {
		tail[i] = binsize
	}

	if binsize == 1 {
		p.cursor = regular + 1
	} else {
		p.cursor = 1
	}
}

// Next replaces p, in place, with the lexicographically next partition of
// the same n into the same number of parts.
//
// It returns (true, nil) after advancing and (false, nil) when p is already
// the maximal partition, which marks p exhausted and leaves it unchanged.
// Calling Next on an exhausted partition fails with PRECONDITION_VIOLATED.
func (p *Partition) Next() (bool, error) {
	if p.exhausted {
		return false, fserrors.New(fserrors.ErrCodePreconditionViolated, "partition %s is exhausted", p)
	}
	c := p.parts
	l := len(c)
	j := p.cursor

	// The smallest block (width k=2) already spans every part.
	if j+1 > l {
		p.exhausted = true
		return false, nil
	}

	// base is the part just left of the known run of trailing 1s. The
	// run and one unit of the base part are freed; one unit is kept back
	// for the increment below.
	base := l - j
	s := (j - 1) + c[base] - 1
	k := 2
	for j+k-1 < l && c[base-k] == c[base-1] {
		s += c[base-1]
		k++
	}
	k--

	c[base-k]++
	p.minimizeTail(s, j+k-1)
	return true, nil
}

// Exhausted reports whether Next has already reported that no successor
// exists.
func (p *Partition) Exhausted() bool { return p.exhausted }

// Components returns a read-only view of the parts, largest first. The view
// reflects later calls to Next.
func (p *Partition) Components() seq.View { return seq.NewView(p.parts) }

// Len returns the number of parts.
func (p *Partition) Len() int { return len(p.parts) }

// Sum returns n, the integer being partitioned.
func (p *Partition) Sum() int { return p.n }

// Clone returns an independent copy of p, including its exhaustion state.
func (p *Partition) Clone() *Partition {
	c := *p
	c.parts = slices.Clone(p.parts)
	return &c
}

// String renders the parts, e.g. "[3 3 2 2]".
func (p *Partition) String() string { return p.Components().String() }

// Conjugate returns the conjugate of a non-increasing partition: part i of
// the result counts the parts of the input that exceed i. Conjugation
// transposes the Ferrers diagram, so a partition of n into L parts maps to a
// partition of n whose largest part is L.
func Conjugate(parts []int) []int {
	if len(parts) == 0 {
		return []int{}
	}
	out := make([]int, parts[0])
	for _, x := range parts {
		for i := 0; i < x; i++ {
			out[i]++
		}
	}
	return out
}
