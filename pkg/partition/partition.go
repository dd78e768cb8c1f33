package partition

import (
	"fmt"
	"slices"
	"strings"
)

// Partition is a named set of nodes. Membership changes only through
// [Graph.AddNode], [Graph.Move] and [Graph.Swap], which keep each member's
// owner in step with the set.
type Partition struct {
	graph   *Graph
	name    string
	members map[NodeID]struct{}
}

// Name returns the partition name.
func (p *Partition) Name() string { return p.name }

// Len returns the number of members.
func (p *Partition) Len() int { return len(p.members) }

// Contains reports whether id is a member of p.
func (p *Partition) Contains(id NodeID) bool {
	_, ok := p.members[id]
	return ok
}

// Nodes returns the members in ascending NodeID order.
func (p *Partition) Nodes() []NodeID {
	ids := make([]NodeID, 0, len(p.members))
	for id := range p.members {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// String lists member names, e.g. "A: [a, b, g]".
func (p *Partition) String() string {
	return fmt.Sprintf("%s: [%s]", p.name, strings.Join(p.graph.Names(p.Nodes()), ", "))
}

func (p *Partition) add(n *Node) {
	p.members[n.ID] = struct{}{}
	n.owner = p
}

func (p *Partition) remove(id NodeID) error {
	if _, ok := p.members[id]; !ok {
		return fmt.Errorf("remove %s from %s: %w", p.graph.Name(id), p.name, ErrNotFound)
	}
	delete(p.members, id)
	return nil
}
