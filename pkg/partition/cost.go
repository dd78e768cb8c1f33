package partition

// InternalCost returns the summed weight of id's outgoing entries whose
// target shares id's partition.
func (g *Graph) InternalCost(id NodeID) int {
	internal, _ := g.outgoingCosts(id)
	return internal
}

// ExternalCost returns the summed weight of id's outgoing entries whose
// target lies in another partition.
func (g *Graph) ExternalCost(id NodeID) int {
	_, external := g.outgoingCosts(id)
	return external
}

// DValue returns how much the cut cost would drop if id alone moved to the
// other partition: external minus internal weight over every directed entry
// incident to id, in either direction.
//
// Incoming entries count as well as outgoing ones because a pair's weight is
// the sum of whichever directed entries it carries.
func (g *Graph) DValue(id NodeID) int {
	if !g.valid(id) {
		return 0
	}
	internal, external := g.outgoingCosts(id)
	owner := g.nodes[id].owner
	for _, c := range g.incoming[id] {
		if g.nodes[c.To].owner == owner {
			internal += c.Weight
		} else {
			external += c.Weight
		}
	}
	return external - internal
}

// PairWeight returns w(a->b) + w(b->a), counting missing entries as zero.
func (g *Graph) PairWeight(a, b NodeID) int {
	if !g.valid(a) || !g.valid(b) {
		return 0
	}
	w := 0
	if i, ok := g.nodes[a].index[b]; ok {
		w += g.nodes[a].out[i].Weight
	}
	if i, ok := g.nodes[b].index[a]; ok {
		w += g.nodes[b].out[i].Weight
	}
	return w
}

// CutCost returns the total weight of directed entries whose endpoints lie in
// different partitions.
func (g *Graph) CutCost() int {
	total := 0
	for _, n := range g.nodes {
		total += g.ExternalCost(n.ID)
	}
	return total
}

func (g *Graph) outgoingCosts(id NodeID) (internal, external int) {
	if !g.valid(id) {
		return 0, 0
	}
	n := g.nodes[id]
	for _, c := range n.out {
		if g.nodes[c.To].owner == n.owner {
			internal += c.Weight
		} else {
			external += c.Weight
		}
	}
	return internal, external
}
