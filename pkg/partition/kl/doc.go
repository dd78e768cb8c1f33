// Package kl implements the Kernighan–Lin heuristic for balanced graph
// bipartitioning.
//
// An [Optimizer] is bound to two equal-size partitions of a
// [partition.Graph]. [Optimizer.Run] repeats passes until no pass improves the
// cut:
//
//  1. Snapshot both partitions as candidate sets.
//  2. Repeatedly pick the candidate pair with the highest exchange gain
//     ([Optimizer.MaxGain]), swap it and retire both nodes.
//  3. Find the prefix of exchanges with the largest running gain
//     ([BestPrefix]) and undo everything after it.
//  4. If that best running gain is not positive, undo the whole pass and stop.
//
// Gains are recorded before each swap and never revalidated; later swaps in
// the same pass see the partition state left by earlier ones.
//
// # Tie-breaking
//
// Candidates are visited in ascending NodeID order and only a strictly larger
// gain displaces the incumbent, so runs are fully deterministic.
//
// # Example
//
//	opt, err := kl.New(g, a, b, kl.Options{Logger: logger})
//	if err != nil {
//	    return err
//	}
//	res, err := opt.Run(ctx)
//	fmt.Println(res.InitialCut, "->", res.FinalCut)
package kl
