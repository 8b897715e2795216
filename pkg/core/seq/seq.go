// Package seq provides the read-only result plumbing shared by the
// enumeration engines in pkg/core.
//
// Enumerators mutate a single owned integer slice in place. Rather than
// copying that slice for every object produced, they hand out a [View] over
// it, paired with the 1-based position of the object in the enumeration
// ([Item]). A View is only valid until the enumerator that produced it
// advances; callers that need to keep an object must [View.Clone] it.
package seq

import (
	"iter"
	"slices"
	"strconv"
	"strings"
)

// View is a read-only window over an integer sequence owned by someone else.
// The zero View is empty.
type View struct {
	s []int
}

// NewView wraps s. The caller keeps ownership of s; the View never writes
// through it.
func NewView(s []int) View {
	return View{s: s}
}

// Len returns the number of entries in the view.
func (v View) Len() int { return len(v.s) }

// At returns the i-th entry. It panics if i is out of range.
func (v View) At(i int) int { return v.s[i] }

// Values iterates the entries in order.
func (v View) Values() iter.Seq[int] {
	return func(yield func(int) bool) {
		for _, x := range v.s {
			if !yield(x) {
				return
			}
		}
	}
}

// Clone returns an independent copy of the viewed entries.
// Clone of an empty view returns a non-nil empty slice.
func (v View) Clone() []int {
	out := make([]int, len(v.s))
	copy(out, v.s)
	return out
}

// Equal reports whether the view holds exactly the entries of s.
func (v View) Equal(s []int) bool {
	return slices.Equal(v.s, s)
}

// String renders the view as "[a b c]", matching fmt's slice formatting.
func (v View) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, x := range v.s {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(x))
	}
	b.WriteByte(']')
	return b.String()
}

// Item is one object produced by an enumeration.
type Item struct {
	// Index is the 1-based position of the object in its enumeration.
	Index int
	View
}

// Collect drains seq and returns an independent copy of every item.
func Collect(items iter.Seq[Item]) [][]int {
	var out [][]int
	for it := range items {
		out = append(out, it.Clone())
	}
	return out
}

// Count drains seq and returns the number of items it produced.
func Count(items iter.Seq[Item]) int {
	n := 0
	for range items {
		n++
	}
	return n
}
