package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	bierrors "github.com/matzehuels/bisect/pkg/errors"
	"github.com/matzehuels/bisect/pkg/graph"
	"github.com/matzehuels/bisect/pkg/observability"
	"github.com/matzehuels/bisect/pkg/pipeline"
	"github.com/matzehuels/bisect/pkg/render"
)

// partitionOpts holds the flags of the partition command.
type partitionOpts struct {
	output    string
	graphOut  string
	dotOut    string
	maxPasses int
	noCache   bool
	refresh   bool
	quiet     bool
}

// partitionCommand creates the partition command.
func (c *CLI) partitionCommand() *cobra.Command {
	var opts partitionOpts

	cmd := &cobra.Command{
		Use:   "partition <graph.json>",
		Short: "Optimize the bisection of a graph",
		Long: `Partition reads a graph with an initial equal-size two-way assignment and
swaps nodes between the halves until the cut no longer improves.

The report (passes, exchanges, final partitions) is written as JSON with -o.
Use --graph-out to write the input graph with its optimized assignment, and
--dot to draw the result (format follows the file extension).`,
		Example: `  bisect partition graph.json
  bisect partition graph.json -o result.json --graph-out optimized.json
  bisect partition graph.json --max-passes 1 --dot passes.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPartition(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the JSON report to this file")
	cmd.Flags().StringVar(&opts.graphOut, "graph-out", "", "write the optimized graph to this file")
	cmd.Flags().StringVar(&opts.dotOut, "dot", "", "draw the result to this file (.svg, .png or .dot)")
	cmd.Flags().IntVar(&opts.maxPasses, "max-passes", 0, "cap on optimizer passes (default from config, then 64)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when a cached result exists")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "skip the pass table")

	return cmd
}

func (c *CLI) runPartition(ctx context.Context, path string, opts partitionOpts) error {
	for _, p := range []string{opts.output, opts.graphOut, opts.dotOut} {
		if p == "" {
			continue
		}
		if err := bierrors.ValidatePath(p); err != nil {
			return err
		}
	}

	g, err := pipeline.LoadGraph(path)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	maxPasses := opts.maxPasses
	if maxPasses == 0 {
		maxPasses = c.Config.Optimizer.MaxPasses
	}

	out, err := c.optimize(ctx, runner, g, pipeline.Options{
		MaxPasses: maxPasses,
		Refresh:   opts.refresh,
		TTL:       c.Config.Cache.TTL.Duration,
		Logger:    loggerFromContext(ctx),
	})
	if err != nil {
		return err
	}

	printSuccess("Partitioned %s", path)
	printStats(out.Stats.NodeCount, out.Stats.EdgeCount, out.CacheHit, out.Stats.Duration)
	printNewline()
	printCut(out.Result)
	printPartitions(out.Result.Partitions)
	if !opts.quiet {
		printNewline()
		printPassTable(out.Result.Passes)
	}
	if !out.Result.Converged {
		printWarning("Stopped after %d passes; raise --max-passes to continue", len(out.Result.Passes))
	}

	var written []string
	if opts.output != "" {
		if err := graph.WriteResultFile(out.Result, opts.output); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		written = append(written, opts.output)
	}
	if opts.graphOut != "" {
		if err := graph.WriteGraphFile(out.Graph(), opts.graphOut); err != nil {
			return fmt.Errorf("write graph: %w", err)
		}
		written = append(written, opts.graphOut)
	}
	if opts.dotOut != "" {
		format := render.FormatFromPath(opts.dotOut, render.FormatDOT)
		data, err := runner.Render(ctx, out.Bisection, pipeline.RenderOptions{Format: format, Weights: true})
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.dotOut, data, 0o644); err != nil {
			return fmt.Errorf("write diagram: %w", err)
		}
		written = append(written, opts.dotOut)
	}

	if len(written) > 0 {
		printNewline()
		for _, p := range written {
			printFile(p)
		}
	}
	return nil
}

// optimize runs the pipeline with a spinner that follows the optimizer's
// passes. An interrupt is reported before the error is returned.
func (c *CLI) optimize(ctx context.Context, runner *pipeline.Runner, g graph.Graph, opts pipeline.Options) (*pipeline.Output, error) {
	spinner := newSpinner(ctx, stderr, "Optimizing...")
	prev := observability.Optimizer()
	observability.SetOptimizerHooks(spinner)
	defer observability.SetOptimizerHooks(prev)

	spinner.Start()
	prog := newProgress(loggerFromContext(ctx))
	out, err := runner.Execute(ctx, g, opts)
	interrupted := spinner.Cancelled()
	spinner.Stop()
	if err != nil {
		if interrupted {
			printWarning("Interrupted; no result was written")
		}
		return nil, err
	}

	prog.done("optimized", "cut", out.Result.FinalCut, "passes", len(out.Result.Passes), "cached", out.CacheHit)
	return out, nil
}
