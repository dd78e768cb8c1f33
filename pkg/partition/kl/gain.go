package kl

import (
	"fmt"

	"github.com/matzehuels/bisect/pkg/partition"
)

// Gain returns the reduction in cut cost obtained by swapping a and b:
//
//	D(a) + D(b) - 2*(w(a->b) + w(b->a))
//
// The direct weight between a and b is subtracted twice because it crosses
// the cut both before and after the exchange, yet each D-value counts it as
// if it would become internal.
//
// D counts entries in both directions, so when a pair has one-way entries
// the result differs from the same formula over outgoing entries only; it
// always equals the exact change in CutCost.
func (o *Optimizer) Gain(a, b partition.NodeID) (int, error) {
	pa, err := o.g.PartitionOf(a)
	if err != nil {
		return 0, err
	}
	pb, err := o.g.PartitionOf(b)
	if err != nil {
		return 0, err
	}
	if pa == pb {
		return 0, fmt.Errorf("gain of %s and %s: %w", o.g.Name(a), o.g.Name(b), partition.ErrInvalidSwap)
	}
	return o.g.DValue(a) + o.g.DValue(b) - 2*o.g.PairWeight(a, b), nil
}

// MaxGain evaluates every pair in candA × candB and returns the exchange with
// the largest gain. Pairs are visited in slice order and only a strictly
// larger gain replaces the best so far, so the first maximal pair wins.
//
// D-values are computed once per call; the result equals calling [Optimizer.Gain]
// on every pair.
func (o *Optimizer) MaxGain(candA, candB []partition.NodeID) (Exchange, error) {
	if len(candA) == 0 || len(candB) == 0 {
		return Exchange{}, ErrNoCandidates
	}

	dB := make([]int, len(candB))
	ownB := make([]*partition.Partition, len(candB))
	for j, b := range candB {
		p, err := o.g.PartitionOf(b)
		if err != nil {
			return Exchange{}, err
		}
		ownB[j], dB[j] = p, o.g.DValue(b)
	}

	var best Exchange
	found := false
	for _, a := range candA {
		pa, err := o.g.PartitionOf(a)
		if err != nil {
			return Exchange{}, err
		}
		da := o.g.DValue(a)
		for j, b := range candB {
			if pa == ownB[j] {
				return Exchange{}, fmt.Errorf("gain of %s and %s: %w", o.g.Name(a), o.g.Name(b), partition.ErrInvalidSwap)
			}
			gain := da + dB[j] - 2*o.g.PairWeight(a, b)
			if !found || gain > best.Gain {
				best = Exchange{A: a, B: b, Gain: gain}
				found = true
			}
		}
	}
	return best, nil
}
