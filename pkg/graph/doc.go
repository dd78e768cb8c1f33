// Package graph provides the serialization types for bipartitioning problems
// and their results.
//
// This package defines the JSON wire format used for input files, API
// requests, cached results and exports.
//
// # Architecture
//
// The package sits at the serialization boundary:
//
//   - [Graph], [Node], [Edge]: input format (this package)
//   - [Result]: optimizer report with the final assignment (this package)
//   - pkg/partition.Graph: internal graph representation
//
// Use [Build] and [FromPartition] to convert between them, and [NewResult] to
// turn a kl.Result into its serialized form.
//
// # Graph Serialization
//
// Graphs use a node-link format where each node carries its starting
// partition label:
//
//	{
//	  "nodes": [{"id": "a", "partition": "A"}, {"id": "c", "partition": "B"}],
//	  "edges": [{"from": "a", "to": "c", "weight": 64}]
//	}
//
// Edges without "directed": true add both directions. Exactly two labels
// must appear.
//
// Common operations:
//
//	gj, _ := graph.ReadGraphFile("graph.json")  // File → Graph
//	b, _ := graph.Build(gj)                      // Graph → partition.Graph
//	graph.WriteGraphFile(gj, "copy.json")       // Graph → File
//	data, _ := graph.MarshalGraph(gj)           // Graph → []byte
package graph
