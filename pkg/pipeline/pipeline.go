// Package pipeline runs a bipartitioning job end to end.
//
// The CLI and HTTP API both go through a [Runner], so caching, validation and
// error classification behave the same at every entry point.
//
// # Stages
//
//  1. Load: decode and validate the graph JSON ([LoadGraph], [DecodeGraph])
//  2. Optimize: hash the canonical graph, consult the cache, run
//     Kernighan–Lin on a miss ([Runner.Execute])
//  3. Render: draw the partitioned graph ([Runner.Render])
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	g, err := pipeline.LoadGraph("graph.json")
//	out, err := runner.Execute(ctx, g, pipeline.Options{MaxPasses: 10})
//	fmt.Println(out.Result.FinalCut)
//
// Errors returned by this package carry a code from pkg/errors.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bisect/pkg/cache"
	bierrors "github.com/matzehuels/bisect/pkg/errors"
	"github.com/matzehuels/bisect/pkg/graph"
	"github.com/matzehuels/bisect/pkg/partition/kl"
	"github.com/matzehuels/bisect/pkg/render"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures one run. The zero value is ready to use.
type Options struct {
	// MaxPasses caps optimizer passes. 0 selects kl.DefaultMaxPasses.
	MaxPasses int `json:"max_passes,omitempty"`

	// Refresh ignores cached results; the new result is still stored.
	Refresh bool `json:"refresh,omitempty"`

	// TTL is how long results stay cached. 0 selects cache.DefaultTTL.
	TTL time.Duration `json:"-"`

	// Logger overrides the runner's logger for this run.
	Logger *log.Logger `json:"-"`
}

// SetDefaults validates o and fills in defaults.
func (o *Options) SetDefaults() error {
	if err := bierrors.ValidateMaxPasses(o.MaxPasses); err != nil {
		return err
	}
	if o.MaxPasses == 0 {
		o.MaxPasses = kl.DefaultMaxPasses
	}
	if o.TTL == 0 {
		o.TTL = cache.DefaultTTL
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// RenderOptions configures [Runner.Render].
type RenderOptions struct {
	Format  render.Format
	Weights bool
	Title   string
}

// =============================================================================
// Output - Run Result
// =============================================================================

// Output is the outcome of [Runner.Execute].
type Output struct {
	// Result is the serialized optimizer report.
	Result graph.Result

	// Bisection holds the graph with its final assignment.
	Bisection *graph.Bisection

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit reports whether Result came from the cache.
	CacheHit bool
}

// Graph returns the partitioned graph in serialization form.
func (o *Output) Graph() graph.Graph {
	return graph.FromPartition(o.Bisection.Graph)
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount int
	EdgeCount int
	Duration  time.Duration
}
