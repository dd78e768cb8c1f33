package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	bierrors "github.com/matzehuels/bisect/pkg/errors"
	"github.com/matzehuels/bisect/pkg/graph"
	"github.com/matzehuels/bisect/pkg/pipeline"
	"github.com/matzehuels/bisect/pkg/render"
)

// renderOpts holds the flags of the render command.
type renderOpts struct {
	output   string
	format   string
	title    string
	weights  bool
	optimize bool
	noCache  bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <graph.json>",
		Short: "Draw a partitioned graph",
		Long: `Render draws a graph with one cluster per partition and crossing edges
highlighted. Use --optimize to draw the optimized assignment instead of the
one in the file.

The format is taken from -f, then from the -o extension, then defaults to SVG.`,
		Example: `  bisect render graph.json -o graph.svg
  bisect render graph.json --optimize -o best.png
  bisect render graph.json -f dot --weights`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <input>.<format>)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: svg, png or dot")
	cmd.Flags().StringVar(&opts.title, "title", "", "diagram title")
	cmd.Flags().BoolVar(&opts.weights, "weights", false, "label edges with their weights")
	cmd.Flags().BoolVar(&opts.optimize, "optimize", false, "optimize the bisection before drawing")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the cache")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, path string, opts renderOpts) error {
	format, err := resolveFormat(opts.format, opts.output)
	if err != nil {
		return err
	}
	output := opts.output
	if output == "" {
		output = basename(path) + "." + string(format)
	}
	if err := bierrors.ValidatePath(output); err != nil {
		return err
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

	b, err := c.bisection(ctx, runner, g, opts.optimize)
	if err != nil {
		return err
	}

	prog := newProgress(loggerFromContext(ctx))
	data, err := runner.Render(ctx, b, pipeline.RenderOptions{
		Format:  format,
		Weights: opts.weights,
		Title:   opts.title,
	})
	if err != nil {
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	prog.done("rendered", "format", format, "bytes", len(data))

	printSuccess("Rendered %s", path)
	printKeyValue("cut", fmt.Sprint(b.Graph.CutCost()))
	printFile(output)
	return nil
}

// bisection returns the graph as given, or its optimized form.
func (c *CLI) bisection(ctx context.Context, runner *pipeline.Runner, g graph.Graph, optimize bool) (*graph.Bisection, error) {
	if !optimize {
		b, err := graph.Build(g)
		if err != nil {
			return nil, bierrors.Wrap(bierrors.ErrCodeInvalidGraph, err, "build graph")
		}
		return b, nil
	}
	out, err := c.optimize(ctx, runner, g, pipeline.Options{
		MaxPasses: c.Config.Optimizer.MaxPasses,
		TTL:       c.Config.Cache.TTL.Duration,
		Logger:    loggerFromContext(ctx),
	})
	if err != nil {
		return nil, err
	}
	return out.Bisection, nil
}

// resolveFormat picks the explicit format, then the output extension, then SVG.
func resolveFormat(flag, output string) (render.Format, error) {
	if flag != "" {
		f, err := render.ParseFormat(flag)
		if err != nil {
			return "", bierrors.Wrap(bierrors.ErrCodeInvalidInput, err, "--format")
		}
		return f, nil
	}
	if output != "" {
		return render.FormatFromPath(output, render.FormatSVG), nil
	}
	return render.FormatSVG, nil
}

// basename strips the extension so the diagram lands next to its input.
func basename(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}
