// Package render turns a bipartitioned graph into a picture.
//
// The [nodelink] subpackage draws each partition as a Graphviz cluster and
// highlights the edges that cross the cut. This package holds the output
// formats shared by the CLI and the renderers.
//
// [nodelink]: github.com/matzehuels/bisect/pkg/render/nodelink
package render
