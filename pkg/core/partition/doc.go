// Package partition enumerates the partitions of an integer n into exactly L
// positive parts.
//
// A partition is stored as its L parts in non-increasing order. Enumeration
// starts from the balanced minimal partition, whose parts differ by at most
// one, and proceeds in ascending lexicographic order to the maximal partition
// [n-L+1 1 ... 1]:
//
//	parts, err := partition.Enumerate(10, 4)
//	if err != nil {
//	    return err
//	}
//	for p := range parts {
//	    fmt.Println(p.Index, p.View) // 1 [3 3 2 2] ... 9 [7 1 1 1]
//	}
//
// Each step ([Partition.Next]) increments one part, then refills the suffix
// after it with the balanced minimal partition of whatever it freed. The
// length of the trailing run of 1s is carried from step to step, so no step
// rescans the array.
//
// Degenerate inputs never construct state: negative n or L is an error,
// L == 0 yields only the empty partition of 0, and n < L yields nothing.
//
// [Count] and [Numbers] count partitions without enumerating them.
package partition
