package kl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bisect/pkg/observability"
	"github.com/matzehuels/bisect/pkg/partition"
)

// DefaultMaxPasses bounds the number of passes when Options.MaxPasses is zero.
const DefaultMaxPasses = 64

var (
	// ErrSamePartition is returned by [New] when both sides are the same partition.
	ErrSamePartition = errors.New("optimizer needs two distinct partitions")

	// ErrUnbalanced is returned by [New] when the partitions differ in size.
	ErrUnbalanced = errors.New("partitions must have equal size")

	// ErrNoCandidates is returned by [Optimizer.MaxGain] when either candidate set is empty.
	ErrNoCandidates = errors.New("no exchange candidates")
)

// Options configures an [Optimizer].
type Options struct {
	// MaxPasses caps the number of passes. Zero means DefaultMaxPasses; a
	// negative value removes the cap.
	MaxPasses int

	// Logger receives per-pass debug output. Nil means log.Default().
	Logger *log.Logger
}

// Exchange is one swap of a pass: A came from the first partition, B from the
// second, and Gain is the exchange gain measured just before the swap.
type Exchange struct {
	A, B partition.NodeID
	Gain int
}

// Pass records one full round of exchanges.
type Pass struct {
	Number  int        // 1-based
	History []Exchange // every exchange, in order
	Totals  []int      // running sum of History gains
	Best    int        // maximum of Totals
	Kept    int        // exchanges kept after rollback; 0 when the pass was reverted
}

// Result summarizes a run.
type Result struct {
	Passes     []Pass
	InitialCut int
	FinalCut   int
	Swaps      int // exchanges kept across all passes
	Converged  bool
	Duration   time.Duration
}

// Optimizer runs Kernighan–Lin on two partitions of one graph. The
// partitions are mutated in place.
type Optimizer struct {
	g      *partition.Graph
	a, b   *partition.Partition
	opts   Options
	logger *log.Logger
}

// New binds an optimizer to partitions a and b of g.
func New(g *partition.Graph, a, b *partition.Partition, opts Options) (*Optimizer, error) {
	if a == b {
		return nil, ErrSamePartition
	}
	if !owned(g, a) || !owned(g, b) {
		return nil, partition.ErrUnknownPartition
	}
	if a.Len() != b.Len() {
		return nil, fmt.Errorf("%w: %s has %d nodes, %s has %d", ErrUnbalanced, a.Name(), a.Len(), b.Name(), b.Len())
	}
	if opts.MaxPasses == 0 {
		opts.MaxPasses = DefaultMaxPasses
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Optimizer{g: g, a: a, b: b, opts: opts, logger: logger}, nil
}

func owned(g *partition.Graph, p *partition.Partition) bool {
	for _, q := range g.Partitions() {
		if q == p {
			return true
		}
	}
	return false
}

// Run executes passes until one yields no positive cumulative gain or the
// pass limit is hit. Each pass exchanges every node once, then keeps only the
// prefix of exchanges with the largest cumulative gain.
//
// The context is checked between exchanges. On cancellation the pass in
// progress is undone, leaving the partitions as they were when it started.
func (o *Optimizer) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	res := &Result{InitialCut: o.g.CutCost()}
	hooks := observability.Optimizer()

	for n := 1; o.opts.MaxPasses < 0 || n <= o.opts.MaxPasses; n++ {
		hooks.OnPassStart(ctx, n, o.a.Len())
		o.logger.Debug("pass start", "pass", n, "a", o.a.String(), "b", o.b.String())
		passStart := time.Now()

		pass, err := o.exchange(ctx, n)
		if err != nil {
			return nil, err
		}

		k, best := BestPrefix(gains(pass.History))
		pass.Best = best
		o.logger.Debug("pass evaluated", "pass", n, "totals", pass.Totals, "best", best, "at", k)

		if best <= 0 {
			if err := o.undo(pass.History); err != nil {
				return nil, err
			}
			res.Passes = append(res.Passes, pass)
			hooks.OnPassComplete(ctx, n, best, 0, time.Since(passStart))
			res.Converged = true
			break
		}

		if err := o.undo(pass.History[k:]); err != nil {
			return nil, err
		}
		pass.Kept = k
		res.Swaps += k
		res.Passes = append(res.Passes, pass)
		hooks.OnPassComplete(ctx, n, best, k, time.Since(passStart))
	}

	res.FinalCut = o.g.CutCost()
	res.Duration = time.Since(start)
	if !res.Converged {
		o.logger.Warn("pass limit reached before convergence", "passes", len(res.Passes))
	}
	hooks.OnConverged(ctx, len(res.Passes), res.InitialCut, res.FinalCut, res.Converged)
	o.logger.Debug("done", "a", o.a.String(), "b", o.b.String(), "cut", res.FinalCut)
	return res, nil
}

// exchange performs the swapping phase of a pass.
func (o *Optimizer) exchange(ctx context.Context, n int) (Pass, error) {
	pass := Pass{Number: n}
	left, right := o.a.Nodes(), o.b.Nodes()

	for len(left) > 0 && len(right) > 0 {
		if err := ctx.Err(); err != nil {
			if uerr := o.undo(pass.History); uerr != nil {
				return pass, errors.Join(err, uerr)
			}
			return pass, err
		}

		x, err := o.MaxGain(left, right)
		if err != nil {
			return pass, err
		}
		if err := o.g.Swap(x.A, x.B); err != nil {
			return pass, fmt.Errorf("swap %s and %s: %w", o.g.Name(x.A), o.g.Name(x.B), err)
		}
		left = without(left, x.A)
		right = without(right, x.B)

		total := x.Gain
		if len(pass.Totals) > 0 {
			total += pass.Totals[len(pass.Totals)-1]
		}
		pass.History = append(pass.History, x)
		pass.Totals = append(pass.Totals, total)
	}
	return pass, nil
}

// undo reverts exchanges newest first.
func (o *Optimizer) undo(history []Exchange) error {
	for i := len(history) - 1; i >= 0; i-- {
		x := history[i]
		if err := o.g.Swap(x.A, x.B); err != nil {
			return fmt.Errorf("revert %s and %s: %w", o.g.Name(x.A), o.g.Name(x.B), err)
		}
	}
	return nil
}

// BestPrefix returns the 1-based length k of the prefix of gains with the
// largest running sum, and that sum. The first maximum wins on ties.
// k is 0 only when gains is empty.
func BestPrefix(gains []int) (k, total int) {
	sum := 0
	for i, g := range gains {
		sum += g
		if i == 0 || sum > total {
			k, total = i+1, sum
		}
	}
	return k, total
}

func gains(history []Exchange) []int {
	out := make([]int, len(history))
	for i, x := range history {
		out[i] = x.Gain
	}
	return out
}

func without(ids []partition.NodeID, id partition.NodeID) []partition.NodeID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return ids
}
