package pipeline

import (
	"errors"
	"io"
	"io/fs"

	"github.com/matzehuels/bisect/pkg/cache"
	bierrors "github.com/matzehuels/bisect/pkg/errors"
	"github.com/matzehuels/bisect/pkg/graph"
)

// LoadGraph reads and validates a graph file.
func LoadGraph(path string) (graph.Graph, error) {
	g, err := graph.ReadGraphFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return graph.Graph{}, bierrors.Wrap(bierrors.ErrCodeFileNotFound, err, "graph file")
	}
	if err != nil {
		return graph.Graph{}, bierrors.Wrap(bierrors.ErrCodeInvalidFormat, err, "read %s", path)
	}
	return g, Validate(g)
}

// DecodeGraph reads and validates a graph from r, as sent to the API.
func DecodeGraph(r io.Reader) (graph.Graph, error) {
	g, err := graph.ReadGraph(r)
	if err != nil {
		return graph.Graph{}, bierrors.Wrap(bierrors.ErrCodeInvalidFormat, err, "graph JSON")
	}
	return g, Validate(g)
}

// Validate checks limits and names that the graph builder does not.
func Validate(g graph.Graph) error {
	if err := bierrors.ValidateNodeCount(len(g.Nodes)); err != nil {
		return err
	}
	for _, n := range g.Nodes {
		if err := bierrors.ValidateNodeName(n.ID); err != nil {
			return err
		}
		if n.Partition != "" {
			if err := bierrors.ValidateNodeName(n.Partition); err != nil {
				return bierrors.New(bierrors.ErrCodeInvalidGraph, "node %s: bad partition label %q", n.ID, n.Partition)
			}
		}
	}
	return nil
}

// build converts g, classifying failures as INVALID_GRAPH.
func build(g graph.Graph) (*graph.Bisection, error) {
	b, err := graph.Build(g)
	if err != nil {
		return nil, bierrors.Wrap(bierrors.ErrCodeInvalidGraph, err, "build graph")
	}
	return b, nil
}

// graphHash hashes the graph as given. Node and edge order are part of the
// identity because they fix NodeIDs, which decide tie-breaks.
func graphHash(g graph.Graph) (string, error) {
	data, err := graph.MarshalGraph(g)
	if err != nil {
		return "", bierrors.Wrap(bierrors.ErrCodeInternal, err, "hash graph")
	}
	return cache.Hash(data), nil
}
