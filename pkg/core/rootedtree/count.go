package rootedtree

import "math/bits"

// MaxCountSize is the largest n whose tree count fits in an int64.
// T(46) = 6325843306177425928; T(47) exceeds math.MaxInt64.
const MaxCountSize = 46

// u128 is an unsigned 128-bit accumulator for the recurrence below. Its
// intermediate sums reach (m-1)*T(m), which leaves int64 from m = 43.
type u128 struct{ hi, lo uint64 }

// addMul returns a + x*y.
func (a u128) addMul(x u128, y uint64) u128 {
	hi, lo := bits.Mul64(x.lo, y)
	hi += x.hi * y
	lo, c := bits.Add64(a.lo, lo, 0)
	hi, _ = bits.Add64(a.hi, hi, c)
	return u128{hi, lo}
}

// Counts returns T[0..n], where T[m] is the number of unlabeled rooted trees
// on m nodes (OEIS A000081). T[0] is 0.
//
// The table is built from the divisor-sum recurrence
//
//	T(m) = 1/(m-1) * sum_{i=1}^{m-1} (sum_{d|i} d*T(d)) * T(m-i)
//
// (Finch, "Mathematical Constants", section 5.6), accumulated in 128 bits so
// every entry up to MaxCountSize is exact. Entries above MaxCountSize do not
// fit in an int and are left 0. For n < 0, Counts returns nil.
func Counts(n int) []int {
	if n < 0 {
		return nil
	}
	t := make([]int, n+1)
	if n == 0 {
		return t
	}
	t[1] = 1
	// s[i] = sum of d*T(d) over divisors d of i, filled in as T grows.
	s := make([]u128, n+1)
	for m := 2; m <= min(n, MaxCountSize); m++ {
		i := m - 1
		for d := 1; d*d <= i; d++ {
			if i%d != 0 {
				continue
			}
			s[i] = s[i].addMul(u128{lo: uint64(d)}, uint64(t[d]))
			if e := i / d; e != d {
				s[i] = s[i].addMul(u128{lo: uint64(e)}, uint64(t[e]))
			}
		}
		var sum u128
		for i := 1; i < m; i++ {
			sum = sum.addMul(s[i], uint64(t[m-i]))
		}
		q, _ := bits.Div64(sum.hi, sum.lo, uint64(m-1))
		t[m] = int(q)
	}
	return t
}

// Count returns the number of unlabeled rooted trees on n nodes, which is
// also the number of items [Enumerate] produces for n. Count returns 0 for
// n < 1 and for n > MaxCountSize.
func Count(n int) int {
	if n < 1 || n > MaxCountSize {
		return 0
	}
	return Counts(n)[n]
}
