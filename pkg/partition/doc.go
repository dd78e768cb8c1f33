// Package partition provides the weighted graph model used for balanced
// bipartitioning.
//
// A [Graph] is an arena of nodes addressed by stable [NodeID] handles. Every
// node belongs to exactly one [Partition]; partitions are created empty and
// filled as nodes are added. Connections are directed, weighted entries held
// by their owner. An undirected edge is two entries, see [Graph.Connect].
//
// # Membership
//
// Nodes change partition only through [Graph.Move] and [Graph.Swap]. Both
// update the source set, the node's owner and the destination set together,
// so partition membership and [Node.Partition] always agree.
//
// # Costs
//
// [Graph.InternalCost] and [Graph.ExternalCost] split a node's outgoing weight
// by whether the target shares its partition; the two always add up to the
// node's total outgoing weight. [Graph.DValue] is the gain of moving a single
// node and [Graph.CutCost] the weight crossing the boundary.
//
//	g := partition.NewGraph()
//	a, _ := g.NewPartition("A")
//	b, _ := g.NewPartition("B")
//	x, _ := g.AddNode("x", a)
//	y, _ := g.AddNode("y", b)
//	_ = g.Connect(x, y, 10)
//	g.CutCost() // 20: both entries cross
//
// The optimizer that drives these operations lives in package kl.
package partition
