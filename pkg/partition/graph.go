package partition

import (
	"errors"
	"slices"
	"strings"
)

var (
	// ErrInvalidNodeName is returned by [Graph.AddNode] when the name is empty
	// or consists only of whitespace.
	ErrInvalidNodeName = errors.New("node name must not be empty")

	// ErrDuplicateNodeName is returned by [Graph.AddNode] when a node with the
	// same name already exists. Names are unique across the whole graph.
	ErrDuplicateNodeName = errors.New("duplicate node name")

	// ErrDuplicatePartition is returned by [Graph.NewPartition] when a partition
	// with the same name already exists.
	ErrDuplicatePartition = errors.New("duplicate partition name")

	// ErrUnknownNode is returned when a NodeID does not refer to a node of the
	// graph it is passed to.
	ErrUnknownNode = errors.New("unknown node")

	// ErrUnknownPartition is returned when a *Partition was created by a
	// different graph (or is nil).
	ErrUnknownPartition = errors.New("unknown partition")

	// ErrNotFound is returned when a node is removed from a partition it is
	// not a member of. Seeing it means membership and the node's owner disagree.
	ErrNotFound = errors.New("node not found in partition")

	// ErrInvalidSwap is returned when two nodes in the same partition are
	// swapped or evaluated as an exchange.
	ErrInvalidSwap = errors.New("nodes are in the same partition")

	// ErrNoSuchConnection is returned by [Graph.ConnectionWeight] when no
	// directed entry exists between the two nodes.
	ErrNoSuchConnection = errors.New("no such connection")

	// ErrNegativeWeight is returned by [Graph.AddConnection] for weights below zero.
	ErrNegativeWeight = errors.New("connection weight must not be negative")

	// ErrSelfLoop is returned by [Graph.AddConnection] when from == to.
	ErrSelfLoop = errors.New("self-loop connections are not allowed")
)

// NodeID is a stable handle to a node. IDs are assigned in creation order
// starting at zero and are never reused.
type NodeID int

// Connection is one directed, weighted entry stored on its owner's side.
type Connection struct {
	To     NodeID
	Weight int
}

// Node is a vertex of the graph. The zero value is not usable; nodes are
// created with [Graph.AddNode].
type Node struct {
	ID   NodeID
	Name string

	owner *Partition
	out   []Connection
	index map[NodeID]int // target -> position in out
}

// Partition returns the partition the node currently belongs to.
func (n *Node) Partition() *Partition { return n.owner }

// Graph owns every node and partition of a bipartitioning problem. Nodes are
// kept in an arena indexed by NodeID; partitions are fixed-identity
// containers whose contents change through [Graph.Move] and [Graph.Swap].
//
// Graph is not safe for concurrent use without external synchronization.
type Graph struct {
	nodes      []*Node
	byName     map[string]NodeID
	incoming   [][]Connection // incoming[to] lists entries other nodes hold on to
	partitions []*Partition
	edges      int
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{byName: make(map[string]NodeID)}
}

// NewPartition creates an empty partition owned by g.
func (g *Graph) NewPartition(name string) (*Partition, error) {
	for _, p := range g.partitions {
		if p.name == name {
			return nil, ErrDuplicatePartition
		}
	}
	p := &Partition{
		graph:   g,
		name:    name,
		members: make(map[NodeID]struct{}),
	}
	g.partitions = append(g.partitions, p)
	return p, nil
}

// Partitions returns the partitions in creation order.
func (g *Graph) Partitions() []*Partition {
	return slices.Clone(g.partitions)
}

// AddNode creates a node named name and registers it in p.
func (g *Graph) AddNode(name string, p *Partition) (NodeID, error) {
	if strings.TrimSpace(name) == "" {
		return 0, ErrInvalidNodeName
	}
	if _, exists := g.byName[name]; exists {
		return 0, ErrDuplicateNodeName
	}
	if !g.owns(p) {
		return 0, ErrUnknownPartition
	}
	n := &Node{
		ID:    NodeID(len(g.nodes)),
		Name:  name,
		index: make(map[NodeID]int),
	}
	g.nodes = append(g.nodes, n)
	g.incoming = append(g.incoming, nil)
	g.byName[name] = n.ID
	p.add(n)
	return n.ID, nil
}

// Node returns the node with the given ID.
func (g *Graph) Node(id NodeID) (*Node, bool) {
	if !g.valid(id) {
		return nil, false
	}
	return g.nodes[id], true
}

// NodeByName looks a node up by name.
func (g *Graph) NodeByName(name string) (NodeID, bool) {
	id, ok := g.byName[name]
	return id, ok
}

// Name returns the name of id, or "" if id is unknown.
func (g *Graph) Name(id NodeID) string {
	if !g.valid(id) {
		return ""
	}
	return g.nodes[id].Name
}

// Names maps ids to node names, preserving order.
func (g *Graph) Names(ids []NodeID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = g.Name(id)
	}
	return out
}

// Nodes returns every NodeID in ascending order.
func (g *Graph) Nodes() []NodeID {
	ids := make([]NodeID, len(g.nodes))
	for i := range g.nodes {
		ids[i] = NodeID(i)
	}
	return ids
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of directed entries.
func (g *Graph) EdgeCount() int { return g.edges }

// PartitionOf returns the partition that owns id.
func (g *Graph) PartitionOf(id NodeID) (*Partition, error) {
	if !g.valid(id) {
		return nil, ErrUnknownNode
	}
	return g.nodes[id].owner, nil
}

// AddConnection stores a directed entry from -> to with the given weight.
// Adding a second entry for the same pair replaces the earlier weight, so a
// pair never carries more than one entry per direction.
func (g *Graph) AddConnection(from, to NodeID, weight int) error {
	if !g.valid(from) || !g.valid(to) {
		return ErrUnknownNode
	}
	if from == to {
		return ErrSelfLoop
	}
	if weight < 0 {
		return ErrNegativeWeight
	}

	n := g.nodes[from]
	if i, ok := n.index[to]; ok {
		n.out[i].Weight = weight
		for j := range g.incoming[to] {
			if g.incoming[to][j].To == from {
				g.incoming[to][j].Weight = weight
				break
			}
		}
		return nil
	}
	n.index[to] = len(n.out)
	n.out = append(n.out, Connection{To: to, Weight: weight})
	g.incoming[to] = append(g.incoming[to], Connection{To: from, Weight: weight})
	g.edges++
	return nil
}

// Connect adds the undirected edge a–b as two directed entries of equal weight.
func (g *Graph) Connect(a, b NodeID, weight int) error {
	if err := g.AddConnection(a, b, weight); err != nil {
		return err
	}
	return g.AddConnection(b, a, weight)
}

// Connections returns a copy of the outgoing entries of id in insertion order.
func (g *Graph) Connections(id NodeID) []Connection {
	if !g.valid(id) {
		return nil
	}
	return slices.Clone(g.nodes[id].out)
}

// ConnectsTo reports whether a directed entry from -> to exists.
func (g *Graph) ConnectsTo(from, to NodeID) bool {
	if !g.valid(from) {
		return false
	}
	_, ok := g.nodes[from].index[to]
	return ok
}

// ConnectionWeight returns the weight of the directed entry from -> to.
func (g *Graph) ConnectionWeight(from, to NodeID) (int, error) {
	if !g.valid(from) || !g.valid(to) {
		return 0, ErrUnknownNode
	}
	n := g.nodes[from]
	i, ok := n.index[to]
	if !ok {
		return 0, ErrNoSuchConnection
	}
	return n.out[i].Weight, nil
}

// Move transfers id into dst. Removal from the current partition, the owner
// update and insertion into dst happen together; no caller ever observes a
// node whose owner and membership disagree. Moving a node into the partition
// it already belongs to is a no-op.
func (g *Graph) Move(id NodeID, dst *Partition) error {
	if !g.valid(id) {
		return ErrUnknownNode
	}
	if !g.owns(dst) {
		return ErrUnknownPartition
	}
	n := g.nodes[id]
	src := n.owner
	if src == dst {
		return nil
	}
	if err := src.remove(id); err != nil {
		return err
	}
	dst.add(n)
	return nil
}

// Swap exchanges a and b across their partitions.
func (g *Graph) Swap(a, b NodeID) error {
	if !g.valid(a) || !g.valid(b) {
		return ErrUnknownNode
	}
	pa, pb := g.nodes[a].owner, g.nodes[b].owner
	if pa == pb {
		return ErrInvalidSwap
	}
	if err := g.Move(a, pb); err != nil {
		return err
	}
	return g.Move(b, pa)
}

// Clone returns a deep copy of g. Partitions of the copy are matched to the
// originals by position in [Graph.Partitions].
func (g *Graph) Clone() *Graph {
	c := NewGraph()
	for _, p := range g.partitions {
		_, _ = c.NewPartition(p.name)
	}
	for _, n := range g.nodes {
		_, _ = c.AddNode(n.Name, c.partitions[slices.Index(g.partitions, n.owner)])
	}
	for _, n := range g.nodes {
		for _, conn := range n.out {
			_ = c.AddConnection(n.ID, conn.To, conn.Weight)
		}
	}
	return c
}

func (g *Graph) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(g.nodes)
}

func (g *Graph) owns(p *Partition) bool {
	return p != nil && p.graph == g
}
