// Package io reads and writes enumeration output.
//
// # Formats
//
// Text output has one object per line in bracketed form:
//
//	[1 2 3 3]
//	[1 2 3 2]
//
// JSON Lines output has one record per line:
//
//	{"kind":"tree","index":1,"seq":[1,2,3,3]}
//	{"kind":"partition","index":1,"seq":[3,3,2,2]}
//
// For trees, seq is the level sequence; for partitions it holds the parts,
// largest first.
//
// # Round Trip
//
// [ReadJSONLines] decodes records written by [WriteJSONLines] and
// re-validates every sequence: level sequences must encode a rooted tree and
// partitions must be non-increasing with positive parts. This lets external
// tools feed stored output back into the command-line tooling.
//
// Writers take the lazy sequences produced by the enumerators and never
// retain an item past the call that receives it.
package io
