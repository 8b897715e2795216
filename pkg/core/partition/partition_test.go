package partition_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/funcstructs/pkg/core/partition"
	"github.com/matzehuels/funcstructs/pkg/core/seq"
	fserrors "github.com/matzehuels/funcstructs/pkg/errors"
)

func collect(t *testing.T, n, l int) [][]int {
	t.Helper()
	parts, err := partition.Enumerate(n, l)
	require.NoError(t, err)
	return seq.Collect(parts)
}

// brute lists the partitions of n into l parts, each part at most max,
// in descending lexicographic order.
func brute(n, l, max int) [][]int {
	if l == 0 {
		if n == 0 {
			return [][]int{{}}
		}
		return nil
	}
	var out [][]int
	for first := min(n, max); first >= 1; first-- {
		for _, rest := range brute(n-first, l-1, first) {
			out = append(out, append([]int{first}, rest...))
		}
	}
	return out
}

func TestEnumerate_TenIntoFour(t *testing.T) {
	want := [][]int{
		{3, 3, 2, 2}, {3, 3, 3, 1}, {4, 2, 2, 2},
		{4, 3, 2, 1}, {4, 4, 1, 1}, {5, 2, 2, 1},
		{5, 3, 1, 1}, {6, 2, 1, 1}, {7, 1, 1, 1},
	}
	assert.Equal(t, want, collect(t, 10, 4))
	assert.Equal(t, 9, partition.Count(10, 4))
}

func TestEnumerate_Degenerate(t *testing.T) {
	tests := []struct {
		name string
		n, l int
		want [][]int
	}{
		{"empty partition of zero", 0, 0, [][]int{{}}},
		{"no parts for positive n", 5, 0, nil},
		{"fewer units than parts", 3, 5, nil},
		{"single part", 7, 1, [][]int{{7}}},
		{"single part of zero", 0, 1, nil},
		{"all ones", 4, 4, [][]int{{1, 1, 1, 1}}},
		{"one and one", 1, 1, [][]int{{1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, collect(t, tt.n, tt.l))
		})
	}
}

func TestEnumerate_InvalidArguments(t *testing.T) {
	for _, args := range [][2]int{{-1, 0}, {0, -1}, {-5, -2}} {
		parts, err := partition.Enumerate(args[0], args[1])
		assert.Nil(t, parts)
		assert.True(t, fserrors.Is(err, fserrors.ErrCodeInvalidArguments), "%v: %v", args, err)

		e, err := partition.NewEnumerator(args[0], args[1])
		assert.Nil(t, e)
		assert.Error(t, err)
	}
}

func TestEnumerate_MatchesBruteForce(t *testing.T) {
	for n := 0; n <= 16; n++ {
		for l := 0; l <= n+2; l++ {
			want := brute(n, l, n)
			slices.Reverse(want) // ascending lexicographic order
			got := collect(t, n, l)
			assert.Equal(t, want, got, "n=%d L=%d", n, l)
			assert.Equal(t, partition.Count(n, l), len(got), "n=%d L=%d", n, l)
		}
	}
}

func TestEnumerate_Invariants(t *testing.T) {
	for n := 1; n <= 20; n++ {
		for l := 1; l <= n; l++ {
			var prev []int
			for _, p := range collect(t, n, l) {
				require.Len(t, p, l)
				sum := 0
				for i, x := range p {
					assert.GreaterOrEqual(t, x, 1)
					if i > 0 {
						assert.LessOrEqual(t, x, p[i-1], "n=%d L=%d: %v not non-increasing", n, l, p)
					}
					sum += x
				}
				assert.Equal(t, n, sum)
				if prev != nil {
					assert.Negative(t, slices.Compare(prev, p), "n=%d L=%d: %v then %v", n, l, prev, p)
				}
				prev = p
			}
			require.NotNil(t, prev)
			want := append([]int{n - l + 1}, slices.Repeat([]int{1}, l-1)...)
			assert.Equal(t, want, prev, "last partition must be maximal")
		}
	}
}

func TestEnumerate_Deterministic(t *testing.T) {
	parts, err := partition.Enumerate(20, 6)
	require.NoError(t, err)
	assert.Equal(t, seq.Collect(parts), seq.Collect(parts))
}

func TestEnumerate_Indices(t *testing.T) {
	parts, err := partition.Enumerate(12, 3)
	require.NoError(t, err)
	want := 1
	for p := range parts {
		assert.Equal(t, want, p.Index)
		want++
	}
	assert.Equal(t, partition.Count(12, 3)+1, want)
}

func TestMinimal(t *testing.T) {
	tests := []struct {
		n, l int
		want []int
	}{
		{10, 4, []int{3, 3, 2, 2}},
		{12, 4, []int{3, 3, 3, 3}},
		{7, 3, []int{3, 2, 2}},
		{5, 5, []int{1, 1, 1, 1, 1}},
		{9, 1, []int{9}},
		{0, 0, []int{}},
	}
	for _, tt := range tests {
		p, err := partition.Minimal(tt.n, tt.l)
		require.NoError(t, err)
		assert.Equal(t, tt.want, p.Components().Clone(), "n=%d L=%d", tt.n, tt.l)
		assert.Equal(t, tt.n, p.Sum())
		assert.Equal(t, tt.l, p.Len())
		assert.Equal(t, tt.want, partition.MinimalComponents(tt.n, tt.l))
	}

	_, err := partition.Minimal(3, 5)
	assert.True(t, fserrors.Is(err, fserrors.ErrCodeInvalidArguments))
	_, err = partition.Minimal(-1, 2)
	assert.True(t, fserrors.Is(err, fserrors.ErrCodeInvalidArguments))
	assert.Nil(t, partition.MinimalComponents(2, 0))
}

func TestNext_ExhaustionThenPrecondition(t *testing.T) {
	p, err := partition.Minimal(6, 3)
	require.NoError(t, err)

	var seen []string
	for {
		seen = append(seen, p.String())
		ok, err := p.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
	}
	assert.Equal(t, []string{"[2 2 2]", "[3 2 1]", "[4 1 1]"}, seen)
	assert.True(t, p.Exhausted())
	assert.Equal(t, "[4 1 1]", p.String(), "exhaustion leaves the maximal partition in place")

	ok, err := p.Next()
	assert.False(t, ok)
	assert.True(t, fserrors.Is(err, fserrors.ErrCodePreconditionViolated))
}

func TestNext_EmptyPartition(t *testing.T) {
	p, err := partition.Minimal(0, 0)
	require.NoError(t, err)
	ok, err := p.Next()
	assert.False(t, ok)
	assert.NoError(t, err)
}

func TestClone_Independent(t *testing.T) {
	p, err := partition.Minimal(8, 3)
	require.NoError(t, err)
	c := p.Clone()

	ok, err := p.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "[3 3 2]", c.String())
	assert.Equal(t, "[4 2 2]", p.String())

	// The clone keeps its own cursor and walks the same sequence.
	ok, err = c.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, p.String(), c.String())
}

func TestEnumerator_StaysDone(t *testing.T) {
	e, err := partition.NewEnumerator(5, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, e.Index())
	for e.Next() {
	}
	assert.Equal(t, 2, e.Index())
	assert.False(t, e.Next())
	assert.Equal(t, "[4 1]", e.Partition().String())

	empty, err := partition.NewEnumerator(2, 3)
	require.NoError(t, err)
	assert.False(t, empty.Next())
	assert.Nil(t, empty.Partition())
	assert.Equal(t, 0, empty.Item().Len())
}

func TestConjugate(t *testing.T) {
	assert.Equal(t, []int{4, 2, 1}, partition.Conjugate([]int{3, 2, 1, 1}))
	assert.Equal(t, []int{1, 1, 1}, partition.Conjugate([]int{3}))
	assert.Equal(t, []int{}, partition.Conjugate(nil))

	// Conjugation is an involution on partitions of 10 into 4 parts.
	for _, p := range collect(t, 10, 4) {
		c := partition.Conjugate(p)
		assert.Equal(t, 4, c[0])
		assert.Equal(t, p, partition.Conjugate(c))
	}
}

func BenchmarkEnumerate(b *testing.B) {
	for i := 0; i < b.N; i++ {
		e, _ := partition.NewEnumerator(60, 8)
		for e.Next() {
		}
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, partition.Validate(nil))
	assert.NoError(t, partition.Validate([]int{3, 3, 2, 2}))
	assert.True(t, fserrors.Is(partition.Validate([]int{2, 3}), fserrors.ErrCodeInvalidArguments))
	assert.True(t, fserrors.Is(partition.Validate([]int{2, 0}), fserrors.ErrCodeInvalidArguments))
}
