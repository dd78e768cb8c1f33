package nodelink

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/bisect/pkg/graph"
	"github.com/matzehuels/bisect/pkg/partition"
	"github.com/matzehuels/bisect/pkg/render"
)

// Options configures diagram generation.
type Options struct {
	// Weights labels every edge with its weight.
	Weights bool

	// Title is drawn above the diagram. Empty means no title.
	Title string
}

// Edge is an undirected pair with the combined weight of its directed entries.
type Edge struct {
	A, B   partition.NodeID
	Weight int
	Cut    bool
}

// Edges folds the directed entries of g into undirected pairs, ordered by
// endpoint IDs. An a->b and b->a entry contribute to the same pair.
func Edges(g *partition.Graph) []Edge {
	type pair struct{ a, b partition.NodeID }
	sums := make(map[pair]int)
	for _, from := range g.Nodes() {
		for _, c := range g.Connections(from) {
			p := pair{from, c.To}
			if p.b < p.a {
				p.a, p.b = p.b, p.a
			}
			sums[p] += c.Weight
		}
	}

	edges := make([]Edge, 0, len(sums))
	for p, w := range sums {
		pa, _ := g.PartitionOf(p.a)
		pb, _ := g.PartitionOf(p.b)
		edges = append(edges, Edge{A: p.a, B: p.b, Weight: w, Cut: pa != pb})
	}
	slices.SortFunc(edges, func(x, y Edge) int {
		if c := cmp.Compare(x.A, y.A); c != 0 {
			return c
		}
		return cmp.Compare(x.B, y.B)
	})
	return edges
}

// ToDOT converts a bisection to Graphviz DOT. Each partition becomes a
// cluster; edges crossing the cut are drawn bold and red.
func ToDOT(b *graph.Bisection, opts Options) string {
	g := b.Graph

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  compound=true;\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n  fontsize=28;\n", opts.Title)
	}
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=20];\n")
	buf.WriteString("  edge [color=\"#888888\"];\n")
	buf.WriteString("\n")

	for i, p := range []*partition.Partition{b.A, b.B} {
		fmt.Fprintf(&buf, "  subgraph cluster_%d {\n", i)
		fmt.Fprintf(&buf, "    label=%q;\n", p.Name())
		fmt.Fprintf(&buf, "    style=\"rounded,filled\";\n    fillcolor=%q;\n", clusterFill[i])
		for _, id := range p.Nodes() {
			fmt.Fprintf(&buf, "    %q;\n", g.Name(id))
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for _, e := range Edges(g) {
		fmt.Fprintf(&buf, "  %q -- %q", g.Name(e.A), g.Name(e.B))
		if attrs := edgeAttrs(e, opts); len(attrs) > 0 {
			fmt.Fprintf(&buf, " [%s]", strings.Join(attrs, ", "))
		}
		buf.WriteString(";\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

var clusterFill = [2]string{"#e8f0fe", "#fef3e0"}

func edgeAttrs(e Edge, opts Options) []string {
	var attrs []string
	if opts.Weights {
		attrs = append(attrs, fmt.Sprintf("label=%q", strconv.Itoa(e.Weight)))
	}
	if e.Cut {
		attrs = append(attrs, "color=\"#d93025\"", "penwidth=2", "constraint=false")
	}
	return attrs
}

// Render draws a DOT graph in the given format. DOT input is returned as is.
func Render(ctx context.Context, dot string, format render.Format) ([]byte, error) {
	switch format {
	case render.FormatDOT:
		return []byte(dot), nil
	case render.FormatSVG:
		return RenderSVG(ctx, dot)
	case render.FormatPNG:
		return RenderPNG(ctx, dot)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := renderGraphviz(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderGraphviz(ctx, dot, graphviz.PNG)
}

func renderGraphviz(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the SVG scales with its
// container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
