package graph

import (
	"fmt"

	"github.com/matzehuels/bisect/pkg/partition"
	"github.com/matzehuels/bisect/pkg/partition/kl"
)

// =============================================================================
// Result - Optimization Report
// =============================================================================

// Result is the serialized outcome of a Kernighan–Lin run.
type Result struct {
	RunID      string `json:"run_id,omitempty"`
	GraphHash  string `json:"graph_hash,omitempty"`
	InitialCut int    `json:"initial_cut"`
	FinalCut   int    `json:"final_cut"`
	Swaps      int    `json:"swaps"`
	Converged  bool   `json:"converged"`
	Passes     []Pass `json:"passes"`
	Partitions []Side `json:"partitions"`
}

// Pass is one optimizer pass. Kept is 0 when the pass was reverted.
type Pass struct {
	Number    int        `json:"number"`
	Exchanges []Exchange `json:"exchanges"`
	Totals    []int      `json:"totals"`
	Best      int        `json:"best"`
	Kept      int        `json:"kept"`
}

// Exchange is a swapped pair and the gain recorded for it.
type Exchange struct {
	A    string `json:"a"`
	B    string `json:"b"`
	Gain int    `json:"gain"`
}

// Side lists the members of one partition by name.
type Side struct {
	Name  string   `json:"name"`
	Nodes []string `json:"nodes"`
}

// NewResult converts an optimizer result, naming nodes through g. The
// partitions are read from b as they stand now.
func NewResult(b *Bisection, res *kl.Result) Result {
	out := Result{
		InitialCut: res.InitialCut,
		FinalCut:   res.FinalCut,
		Swaps:      res.Swaps,
		Converged:  res.Converged,
		Passes:     make([]Pass, len(res.Passes)),
		Partitions: []Side{side(b.Graph, b.A), side(b.Graph, b.B)},
	}
	for i, p := range res.Passes {
		xs := make([]Exchange, len(p.History))
		for j, x := range p.History {
			xs[j] = Exchange{A: b.Graph.Name(x.A), B: b.Graph.Name(x.B), Gain: x.Gain}
		}
		out.Passes[i] = Pass{
			Number:    p.Number,
			Exchanges: xs,
			Totals:    p.Totals,
			Best:      p.Best,
			Kept:      p.Kept,
		}
	}
	return out
}

func side(g *partition.Graph, p *partition.Partition) Side {
	return Side{Name: p.Name(), Nodes: g.Names(p.Nodes())}
}

// Apply moves the nodes of b into the partitions named by sides. It restores
// a cached assignment onto a freshly built graph.
func (b *Bisection) Apply(sides []Side) error {
	for _, s := range sides {
		var dst *partition.Partition
		switch s.Name {
		case b.A.Name():
			dst = b.A
		case b.B.Name():
			dst = b.B
		default:
			return fmt.Errorf("%w: %s", partition.ErrUnknownPartition, s.Name)
		}
		for _, name := range s.Nodes {
			id, ok := b.Graph.NodeByName(name)
			if !ok {
				return fmt.Errorf("%w: %s", partition.ErrUnknownNode, name)
			}
			if err := b.Graph.Move(id, dst); err != nil {
				return fmt.Errorf("move %s: %w", name, err)
			}
		}
	}
	return nil
}
