// Package pkg provides the core libraries for bisect, a Kernighan–Lin graph
// bisection tool.
//
// # Overview
//
// Bisect takes a weighted graph whose nodes are split into two equal halves
// and improves the split: it swaps nodes between the halves until no sequence
// of swaps lowers the cut, the total weight of entries crossing between them.
//
// # Architecture
//
// The typical data flow:
//
//	graph JSON
//	     ↓
//	[graph] package (decode, validate, build)
//	     ↓
//	[partition] package (graph model, costs)
//	     ↓
//	[partition/kl] package (passes, exchanges, rollback)
//	     ↓
//	report JSON, optimized graph, or diagram ([render/nodelink])
//
// [pipeline] runs these steps with caching and is what both the CLI and the
// HTTP API call.
//
// # Quick Start
//
//	import (
//	    "context"
//	    "fmt"
//
//	    "github.com/matzehuels/bisect/pkg/graph"
//	    "github.com/matzehuels/bisect/pkg/partition/kl"
//	)
//
//	b, _ := graph.Build(graph.Reference())
//	opt, _ := kl.New(b.Graph, b.A, b.B, kl.Options{})
//	res, _ := opt.Run(context.Background())
//	fmt.Println(res.InitialCut, "→", res.FinalCut)
//
// # Main Packages
//
// [partition] - Mutable graph of named nodes, weighted one-way connections
// and disjoint partitions. Computes internal, external and D costs.
//
// [partition/kl] - The optimizer: gain, max-gain pair selection, best prefix
// and the pass loop.
//
// [graph] - JSON form of graphs and results, and conversion to and from
// [partition].
//
// [pipeline] - Load, validate, optimize and render with result caching.
//
// [cache] - File, Redis and null backends behind one interface.
//
// [render/nodelink] - DOT generation and Graphviz rendering to SVG and PNG.
//
// [config], [errors], [observability] and [buildinfo] hold the ambient
// pieces: settings, coded errors, hooks and version data.
//
// [partition]: https://pkg.go.dev/github.com/matzehuels/bisect/pkg/partition
// [partition/kl]: https://pkg.go.dev/github.com/matzehuels/bisect/pkg/partition/kl
// [graph]: https://pkg.go.dev/github.com/matzehuels/bisect/pkg/graph
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/bisect/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/bisect/pkg/cache
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/bisect/pkg/render/nodelink
// [config]: https://pkg.go.dev/github.com/matzehuels/bisect/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/bisect/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/bisect/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/bisect/pkg/buildinfo
package pkg
