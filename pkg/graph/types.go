package graph

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/bisect/pkg/partition"
)

var (
	// ErrPartitionCount is returned by [Build] unless the nodes carry exactly
	// two distinct partition labels.
	ErrPartitionCount = errors.New("graph must use exactly two partition labels")

	// ErrMissingPartition is returned by [Build] for a node without a partition label.
	ErrMissingPartition = errors.New("node has no partition label")

	// ErrUnknownEndpoint is returned by [Build] when an edge names a node
	// that is not declared in Nodes.
	ErrUnknownEndpoint = errors.New("edge references unknown node")
)

// =============================================================================
// Graph - Serialization Format
// =============================================================================

// Graph is the JSON form of a bipartitioning problem:
//
//	{
//	  "nodes": [{"id": "a", "partition": "A"}, {"id": "c", "partition": "B"}],
//	  "edges": [{"from": "a", "to": "c", "weight": 64}]
//	}
//
// Edges are undirected unless Directed is set, in which case only the
// from -> to entry is stored.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node is a named vertex and its initial partition label.
type Node struct {
	ID        string `json:"id"`
	Partition string `json:"partition"`
}

// Edge is a weighted connection between two nodes.
type Edge struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Weight   int    `json:"weight"`
	Directed bool   `json:"directed,omitempty"`
}

// Labels returns the distinct partition labels in order of first appearance.
func (g Graph) Labels() []string {
	var labels []string
	for _, n := range g.Nodes {
		if n.Partition != "" && !slices.Contains(labels, n.Partition) {
			labels = append(labels, n.Partition)
		}
	}
	return labels
}

// =============================================================================
// Bisection - Built Graph
// =============================================================================

// Bisection is a built graph together with its two partitions. A is the
// partition whose label appears first in the input.
type Bisection struct {
	Graph *partition.Graph
	A, B  *partition.Partition
}

// Build converts the serialized form into a partition graph.
func Build(gj Graph) (*Bisection, error) {
	labels := gj.Labels()
	if len(labels) != 2 {
		return nil, fmt.Errorf("%w: found %d (%s)", ErrPartitionCount, len(labels), strings.Join(labels, ", "))
	}

	g := partition.NewGraph()
	parts := make(map[string]*partition.Partition, 2)
	for _, l := range labels {
		p, err := g.NewPartition(l)
		if err != nil {
			return nil, fmt.Errorf("partition %s: %w", l, err)
		}
		parts[l] = p
	}

	for _, n := range gj.Nodes {
		if n.Partition == "" {
			return nil, fmt.Errorf("node %s: %w", n.ID, ErrMissingPartition)
		}
		if _, err := g.AddNode(n.ID, parts[n.Partition]); err != nil {
			return nil, fmt.Errorf("add node %q: %w", n.ID, err)
		}
	}

	for _, e := range gj.Edges {
		from, ok := g.NodeByName(e.From)
		if !ok {
			return nil, fmt.Errorf("edge %s-%s: %w: %s", e.From, e.To, ErrUnknownEndpoint, e.From)
		}
		to, ok := g.NodeByName(e.To)
		if !ok {
			return nil, fmt.Errorf("edge %s-%s: %w: %s", e.From, e.To, ErrUnknownEndpoint, e.To)
		}
		var err error
		if e.Directed {
			err = g.AddConnection(from, to, e.Weight)
		} else {
			err = g.Connect(from, to, e.Weight)
		}
		if err != nil {
			return nil, fmt.Errorf("add edge %s-%s: %w", e.From, e.To, err)
		}
	}

	return &Bisection{Graph: g, A: parts[labels[0]], B: parts[labels[1]]}, nil
}

// FromPartition converts a partition graph to its serialization format using
// the current assignment. Nodes are sorted by ID and every directed entry is
// emitted as a directed edge sorted by (from, to), so the output does not
// depend on insertion order and Build(FromPartition(g)) reproduces the same
// nodes, entries and assignment (NodeIDs may differ).
func FromPartition(g *partition.Graph) Graph {
	out := Graph{
		Nodes: make([]Node, 0, g.NodeCount()),
		Edges: make([]Edge, 0, g.EdgeCount()),
	}

	for _, id := range g.Nodes() {
		p, _ := g.PartitionOf(id)
		out.Nodes = append(out.Nodes, Node{ID: g.Name(id), Partition: p.Name()})
	}
	slices.SortFunc(out.Nodes, func(a, b Node) int { return strings.Compare(a.ID, b.ID) })

	for _, id := range g.Nodes() {
		for _, c := range g.Connections(id) {
			out.Edges = append(out.Edges, Edge{
				From:     g.Name(id),
				To:       g.Name(c.To),
				Weight:   c.Weight,
				Directed: true,
			})
		}
	}
	slices.SortFunc(out.Edges, func(a, b Edge) int {
		if c := strings.Compare(a.From, b.From); c != 0 {
			return c
		}
		return strings.Compare(a.To, b.To)
	})
	return out
}
