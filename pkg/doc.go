// Package pkg provides the libraries behind funcstructs.
//
// # Overview
//
// Funcstructs enumerates two families of combinatorial objects in constant
// amortized time per object: unlabeled rooted trees, encoded as canonical
// level sequences, and partitions of an integer into a fixed number of parts.
// The pkg directory is organized into three areas:
//
//  1. [core] - Enumeration engines and counting formulas
//  2. [infra] - Caching, configuration, metrics and errors
//  3. [pipeline] - Orchestration shared by the CLI and the HTTP API
//
// # Architecture
//
// The typical data flow through funcstructs:
//
//	(kind, n, L)
//	     ↓
//	[core/rootedtree] or [core/partition] (successor walk)
//	     ↓
//	[core/seq] views, one per object
//	     ↓
//	[pipeline] (limits, formats, verification counts, cache)
//	     ↓
//	text, JSON Lines, DOT/SVG or HTTP responses
//
// # Quick Start
//
// List the partitions of 10 into 4 parts:
//
//	import "github.com/matzehuels/funcstructs/pkg/core/partition"
//
//	parts, err := partition.Enumerate(10, 4)
//	if err != nil {
//	    return err
//	}
//	for p := range parts {
//	    fmt.Println(p.Index, p.View)
//	}
//
// Count the rooted trees on 12 nodes by walking the successor and compare
// with the closed form:
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	res, err := runner.Count(ctx, pipeline.Options{Kind: pipeline.KindTrees, N: 12})
//	fmt.Println(res.Count, res.Formula) // 4766 4766
//
// # Package Organization
//
// Core:
//   - [core/seq]: read-only views and indexed items
//   - [core/rootedtree]: level-sequence trees, counts, structure, Graphviz
//   - [core/partition]: fixed-length partitions, counts, conjugates
//
// Infrastructure:
//   - [errors]: coded errors and input validation
//   - [cache]: file, memory, Redis and MongoDB count caches
//   - [config]: TOML configuration file
//   - [observability]: hooks and Prometheus metrics
//   - [io]: text and JSON Lines export and import
//   - [buildinfo]: version information
//
// Front ends:
//   - [pipeline]: enumeration, counts and censuses
//   - [api]: HTTP API
//
// [core]: https://pkg.go.dev/github.com/matzehuels/funcstructs/pkg/core
// [infra]: https://pkg.go.dev/github.com/matzehuels/funcstructs/pkg/cache
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/funcstructs/pkg/pipeline
// [core/seq]: https://pkg.go.dev/github.com/matzehuels/funcstructs/pkg/core/seq
// [core/rootedtree]: https://pkg.go.dev/github.com/matzehuels/funcstructs/pkg/core/rootedtree
// [core/partition]: https://pkg.go.dev/github.com/matzehuels/funcstructs/pkg/core/partition
// [errors]: https://pkg.go.dev/github.com/matzehuels/funcstructs/pkg/errors
// [cache]: https://pkg.go.dev/github.com/matzehuels/funcstructs/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/funcstructs/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/funcstructs/pkg/observability
// [io]: https://pkg.go.dev/github.com/matzehuels/funcstructs/pkg/io
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/funcstructs/pkg/buildinfo
// [api]: https://pkg.go.dev/github.com/matzehuels/funcstructs/pkg/api
package pkg
