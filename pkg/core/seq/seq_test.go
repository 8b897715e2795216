package seq_test

import (
	"fmt"
	"iter"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/matzehuels/funcstructs/pkg/core/seq"
)

func TestView(t *testing.T) {
	backing := []int{1, 2, 3, 2}
	v := seq.NewView(backing)

	assert.Equal(t, 4, v.Len())
	assert.Equal(t, 3, v.At(2))
	assert.Equal(t, "[1 2 3 2]", v.String())
	assert.Equal(t, fmt.Sprint(backing), v.String())
	assert.True(t, v.Equal([]int{1, 2, 3, 2}))
	assert.False(t, v.Equal([]int{1, 2, 3}))
	assert.Equal(t, backing, slices.Collect(v.Values()))

	c := v.Clone()
	c[0] = 9
	assert.Equal(t, 1, v.At(0), "clone must not alias the backing slice")

	// The view tracks the owner's writes.
	backing[3] = 3
	assert.Equal(t, "[1 2 3 3]", v.String())
}

func TestView_Empty(t *testing.T) {
	var v seq.View
	assert.Zero(t, v.Len())
	assert.Equal(t, "[]", v.String())
	assert.NotNil(t, v.Clone())
	assert.Empty(t, v.Clone())
	assert.True(t, v.Equal(nil))
}

func TestView_ValuesStopsEarly(t *testing.T) {
	v := seq.NewView([]int{5, 6, 7})
	var got []int
	for x := range v.Values() {
		got = append(got, x)
		if x == 6 {
			break
		}
	}
	assert.Equal(t, []int{5, 6}, got)
}

// counter mimics an enumerator that reuses one buffer.
func counter(n int) iter.Seq[seq.Item] {
	return func(yield func(seq.Item) bool) {
		buf := []int{0}
		for i := 1; i <= n; i++ {
			buf[0] = i
			if !yield(seq.Item{Index: i, View: seq.NewView(buf)}) {
				return
			}
		}
	}
}

func TestCollect(t *testing.T) {
	assert.Equal(t, [][]int{{1}, {2}, {3}}, seq.Collect(counter(3)))
	assert.Nil(t, seq.Collect(counter(0)))
}

func TestCount(t *testing.T) {
	assert.Equal(t, 7, seq.Count(counter(7)))
	assert.Zero(t, seq.Count(counter(0)))
}
