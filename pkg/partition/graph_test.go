package partition

import (
	"errors"
	"slices"
	"testing"
)

func twoSided(t *testing.T) (*Graph, *Partition, *Partition) {
	t.Helper()
	g := NewGraph()
	a, err := g.NewPartition("A")
	if err != nil {
		t.Fatalf("NewPartition(A): %v", err)
	}
	b, err := g.NewPartition("B")
	if err != nil {
		t.Fatalf("NewPartition(B): %v", err)
	}
	return g, a, b
}

func mustNode(t *testing.T, g *Graph, name string, p *Partition) NodeID {
	t.Helper()
	id, err := g.AddNode(name, p)
	if err != nil {
		t.Fatalf("AddNode(%s): %v", name, err)
	}
	return id
}

func TestAddNodeRegistersMembership(t *testing.T) {
	g, a, b := twoSided(t)
	x := mustNode(t, g, "x", a)

	if !a.Contains(x) {
		t.Error("partition A should contain x")
	}
	if b.Contains(x) {
		t.Error("partition B should not contain x")
	}
	n, ok := g.Node(x)
	if !ok {
		t.Fatal("Node(x) not found")
	}
	if n.Partition() != a {
		t.Errorf("owner = %v, want A", n.Partition().Name())
	}
	if id, ok := g.NodeByName("x"); !ok || id != x {
		t.Errorf("NodeByName(x) = %d, %v", id, ok)
	}
}

func TestAddNodeErrors(t *testing.T) {
	g, a, _ := twoSided(t)
	other := NewGraph()
	foreign, _ := other.NewPartition("F")
	mustNode(t, g, "x", a)

	tests := []struct {
		name string
		node string
		p    *Partition
		want error
	}{
		{"empty name", "", a, ErrInvalidNodeName},
		{"blank name", "  ", a, ErrInvalidNodeName},
		{"duplicate", "x", a, ErrDuplicateNodeName},
		{"foreign partition", "y", foreign, ErrUnknownPartition},
		{"nil partition", "y", nil, ErrUnknownPartition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := g.AddNode(tt.node, tt.p); !errors.Is(err, tt.want) {
				t.Errorf("AddNode() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNewPartitionDuplicate(t *testing.T) {
	g, _, _ := twoSided(t)
	if _, err := g.NewPartition("A"); !errors.Is(err, ErrDuplicatePartition) {
		t.Errorf("NewPartition(A) error = %v, want ErrDuplicatePartition", err)
	}
}

func TestAddConnection(t *testing.T) {
	g, a, b := twoSided(t)
	x := mustNode(t, g, "x", a)
	y := mustNode(t, g, "y", b)

	if err := g.AddConnection(x, y, 7); err != nil {
		t.Fatalf("AddConnection: %v", err)
	}
	if !g.ConnectsTo(x, y) {
		t.Error("x should connect to y")
	}
	if g.ConnectsTo(y, x) {
		t.Error("entries are directed; y should not connect to x")
	}
	w, err := g.ConnectionWeight(x, y)
	if err != nil || w != 7 {
		t.Errorf("ConnectionWeight(x, y) = %d, %v; want 7", w, err)
	}
	if _, err := g.ConnectionWeight(y, x); !errors.Is(err, ErrNoSuchConnection) {
		t.Errorf("ConnectionWeight(y, x) error = %v, want ErrNoSuchConnection", err)
	}
}

func TestAddConnectionReplacesWeight(t *testing.T) {
	g, a, b := twoSided(t)
	x := mustNode(t, g, "x", a)
	y := mustNode(t, g, "y", b)

	_ = g.AddConnection(x, y, 3)
	_ = g.AddConnection(x, y, 9)

	if got := len(g.Connections(x)); got != 1 {
		t.Errorf("len(Connections) = %d, want 1", got)
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount = %d, want 1", g.EdgeCount())
	}
	if got := g.ExternalCost(x); got != 9 {
		t.Errorf("ExternalCost = %d, want 9", got)
	}
	if got := g.DValue(y); got != 9 {
		t.Errorf("DValue(y) = %d, want 9 (incoming entry updated)", got)
	}
}

func TestAddConnectionErrors(t *testing.T) {
	g, a, _ := twoSided(t)
	x := mustNode(t, g, "x", a)
	y := mustNode(t, g, "y", a)

	tests := []struct {
		name     string
		from, to NodeID
		weight   int
		want     error
	}{
		{"self loop", x, x, 1, ErrSelfLoop},
		{"negative", x, y, -1, ErrNegativeWeight},
		{"unknown target", x, 99, 1, ErrUnknownNode},
		{"unknown source", -1, y, 1, ErrUnknownNode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := g.AddConnection(tt.from, tt.to, tt.weight); !errors.Is(err, tt.want) {
				t.Errorf("AddConnection() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestMoveKeepsOwnerAndMembershipInStep(t *testing.T) {
	g, a, b := twoSided(t)
	x := mustNode(t, g, "x", a)

	if err := g.Move(x, b); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if a.Contains(x) || !b.Contains(x) {
		t.Error("x should have moved from A to B")
	}
	if p, _ := g.PartitionOf(x); p != b {
		t.Errorf("owner = %s, want B", p.Name())
	}

	// Moving into the current owner is a no-op.
	if err := g.Move(x, b); err != nil {
		t.Errorf("Move to same partition: %v", err)
	}
	if b.Len() != 1 {
		t.Errorf("B.Len() = %d, want 1", b.Len())
	}
}

func TestSwap(t *testing.T) {
	g, a, b := twoSided(t)
	x := mustNode(t, g, "x", a)
	y := mustNode(t, g, "y", b)
	z := mustNode(t, g, "z", b)

	if err := g.Swap(x, y); err != nil {
		t.Fatalf("Swap: %v", err)
	}
	if !slices.Equal(a.Nodes(), []NodeID{y}) {
		t.Errorf("A = %v, want [y]", a)
	}
	if !slices.Equal(b.Nodes(), []NodeID{x, z}) {
		t.Errorf("B = %v, want [x, z]", b)
	}
	if err := g.Swap(x, z); !errors.Is(err, ErrInvalidSwap) {
		t.Errorf("Swap within a partition: error = %v, want ErrInvalidSwap", err)
	}
}

func TestPartitionString(t *testing.T) {
	g, a, _ := twoSided(t)
	mustNode(t, g, "b", a)
	mustNode(t, g, "a", a)
	if got, want := a.String(), "A: [b, a]"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestClone(t *testing.T) {
	g, a, b := twoSided(t)
	x := mustNode(t, g, "x", a)
	y := mustNode(t, g, "y", b)
	_ = g.Connect(x, y, 4)

	c := g.Clone()
	if c.NodeCount() != 2 || c.EdgeCount() != 2 {
		t.Fatalf("clone has %d nodes, %d edges", c.NodeCount(), c.EdgeCount())
	}
	if c.CutCost() != g.CutCost() {
		t.Errorf("clone cut = %d, want %d", c.CutCost(), g.CutCost())
	}

	// Mutating the clone leaves the original alone.
	if err := c.Swap(x, y); err != nil {
		t.Fatalf("Swap on clone: %v", err)
	}
	if !a.Contains(x) {
		t.Error("original should be unchanged")
	}
	if c.Partitions()[0].Contains(x) {
		t.Error("clone should reflect the swap")
	}
}
