// Package nodelink draws a bisection as a node-link diagram.
//
// Nodes of each partition are grouped into a Graphviz cluster. Directed
// entries between the same pair are folded into one undirected edge, and
// edges crossing the cut are highlighted:
//
//	dot := nodelink.ToDOT(b, nodelink.Options{Weights: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Rendering runs Graphviz in-process through [github.com/goccy/go-graphviz],
// so no external binaries are needed for SVG or PNG output.
package nodelink
