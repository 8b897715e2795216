// Package rootedtree enumerates unlabeled rooted trees by their level
// sequences.
//
// # Level Sequences
//
// A rooted tree on n nodes is encoded by listing, in preorder, the depth of
// every node (the root has depth 1). A sequence encodes a rooted tree exactly
// when it starts with 1 and every later entry is at least 2 and at most one
// more than its predecessor. Each unlabeled tree has many such encodings; the
// lexicographically largest one is called its dominant (canonical) form, and
// that is the form this package enumerates.
//
// # Enumeration Order
//
// Trees are produced in strictly decreasing lexicographic order of their
// dominant level sequences: the path [1 2 ... n] comes first and the star
// [1 2 2 ... 2] comes last. The successor ([Tree.Next]) rewrites the tail of
// the sequence in place and costs amortized O(1) over a full enumeration
// (Beyer and Hedetniemi, "Constant time generation of rooted trees", 1980).
//
//	trees, err := rootedtree.Enumerate(5)
//	if err != nil {
//	    return err
//	}
//	for t := range trees {
//	    fmt.Println(t.Index, t.View) // 1 [1 2 3 4 5] ... 9 [1 2 2 2 2]
//	}
//
// # Structure Helpers
//
// Beyond enumeration, a [Tree] can be decomposed into its root's subtrees,
// canonicalized ([Dominant]), converted to a parent array ([Tree.Parents]),
// measured for symmetry ([Tree.Degeneracy]), and rendered as Graphviz DOT or
// SVG. [Count] computes the number of trees on n nodes without enumerating.
//
// # Concurrency
//
// A Tree or Enumerator must not be shared between goroutines while it is
// being advanced. The package has no global state, so independent
// enumerators may run concurrently.
package rootedtree
