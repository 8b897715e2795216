package partition

// Count returns p(n, l), the number of partitions of n into exactly l
// positive parts, using p(n, l) = p(n-1, l-1) + p(n-l, l). It returns 0 for
// negative arguments.
func Count(n, l int) int {
	if n < 0 || l < 0 || l > n {
		return 0
	}
	if l == 0 {
		if n == 0 {
			return 1
		}
		return 0
	}
	// row[m] holds p(m, k) for the current k; prev holds p(m, k-1).
	prev := make([]int, n+1)
	prev[0] = 1
	row := make([]int, n+1)
	for k := 1; k <= l; k++ {
		for m := range row {
			row[m] = 0
			if m >= k {
				row[m] = prev[m-1] + row[m-k]
			}
		}
		prev, row = row, prev
	}
	return prev[n]
}

// Numbers returns the partition numbers p(0), ..., p(n) (OEIS A000041),
// computed with Euler's pentagonal number theorem in O(n^1.5). For n < 0 it
// returns nil.
func Numbers(n int) []int {
	if n < 0 {
		return nil
	}
	p := make([]int, n+1)
	p[0] = 1
	for m := 1; m <= n; m++ {
		sum := 0
		for k := 1; ; k++ {
			g1 := k * (3*k - 1) / 2
			if g1 > m {
				break
			}
			sign := 1
			if k%2 == 0 {
				sign = -1
			}
			sum += sign * p[m-g1]
			if g2 := k * (3*k + 1) / 2; g2 <= m {
				sum += sign * p[m-g2]
			}
		}
		p[m] = sum
	}
	return p
}
