package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/bisect/pkg/cache"
	bierrors "github.com/matzehuels/bisect/pkg/errors"
	"github.com/matzehuels/bisect/pkg/graph"
	"github.com/matzehuels/bisect/pkg/observability"
	"github.com/matzehuels/bisect/pkg/partition/kl"
	"github.com/matzehuels/bisect/pkg/render"
	"github.com/matzehuels/bisect/pkg/render/nodelink"
)

// Runner executes runs against a cache.
//
// The Runner holds no per-run state, so one Runner may serve concurrent
// runs. Each run builds its own graph.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute optimizes g, serving the result from cache when an identical graph
// was optimized with the same options.
func (r *Runner) Execute(ctx context.Context, g graph.Graph, opts Options) (out *Output, err error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.SetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	start := time.Now()
	hooks := observability.Pipeline()
	hooks.OnRunStart(ctx, len(g.Nodes), len(g.Edges))
	defer func() {
		hooks.OnRunComplete(ctx, out != nil && out.CacheHit, time.Since(start), err)
	}()

	if err := Validate(g); err != nil {
		return nil, err
	}
	b, err := build(g)
	if err != nil {
		return nil, err
	}
	hash, err := graphHash(g)
	if err != nil {
		return nil, err
	}
	key := r.Keyer.ResultKey(hash, cache.ResultKeyOpts{MaxPasses: opts.MaxPasses})

	out = &Output{
		Bisection: b,
		Stats: Stats{
			NodeCount: b.Graph.NodeCount(),
			EdgeCount: b.Graph.EdgeCount(),
		},
	}

	if !opts.Refresh {
		if res, restored, ok := r.lookup(ctx, key, g, logger); ok {
			out.Result = res
			out.Bisection = restored
			out.CacheHit = true
			out.Stats.Duration = time.Since(start)
			logger.Info("loaded cached result", "run", res.RunID, "cut", res.FinalCut)
			return out, nil
		}
	}

	logger.Info("optimizing",
		"nodes", b.Graph.NodeCount(),
		"edges", b.Graph.EdgeCount(),
		"cut", b.Graph.CutCost())

	opt, err := kl.New(b.Graph, b.A, b.B, kl.Options{MaxPasses: opts.MaxPasses, Logger: logger})
	if err != nil {
		return nil, classify(err)
	}
	res, err := opt.Run(ctx)
	if err != nil {
		return nil, classify(err)
	}

	out.Result = graph.NewResult(b, res)
	out.Result.RunID = uuid.NewString()
	out.Result.GraphHash = hash
	out.Stats.Duration = time.Since(start)

	logger.Info("optimized",
		"run", out.Result.RunID,
		"passes", len(res.Passes),
		"swaps", res.Swaps,
		"cut", res.FinalCut,
		"duration", res.Duration)

	r.store(ctx, key, out.Result, opts.TTL, logger)
	return out, nil
}

// lookup restores a cached result onto a fresh build of g. Backend errors
// and stale entries count as misses.
func (r *Runner) lookup(ctx context.Context, key string, g graph.Graph, logger *log.Logger) (graph.Result, *graph.Bisection, bool) {
	hooks := observability.Cache()
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read failed", "err", err)
	}
	if err != nil || !hit {
		hooks.OnCacheMiss(ctx, key)
		return graph.Result{}, nil, false
	}

	res, err := graph.UnmarshalResult(data)
	var b *graph.Bisection
	if err == nil {
		b, err = graph.Build(g)
	}
	if err == nil {
		err = b.Apply(res.Partitions)
	}
	if err != nil {
		logger.Warn("discarding cached result", "err", err)
		_ = r.Cache.Delete(ctx, key)
		hooks.OnCacheMiss(ctx, key)
		return graph.Result{}, nil, false
	}
	hooks.OnCacheHit(ctx, key)
	return res, b, true
}

func (r *Runner) store(ctx context.Context, key string, res graph.Result, ttl time.Duration, logger *log.Logger) {
	data, err := graph.MarshalResult(res)
	if err != nil {
		logger.Warn("encode result for cache", "err", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, key, len(data))
}

// Render draws b with its current assignment. Diagrams are cached by the
// content of the partitioned graph.
func (r *Runner) Render(ctx context.Context, b *graph.Bisection, opts RenderOptions) ([]byte, error) {
	if opts.Format == "" {
		opts.Format = render.FormatSVG
	}
	hash, err := graphHash(graph.FromPartition(b.Graph))
	if err != nil {
		return nil, err
	}
	key := r.Keyer.ArtifactKey(hash, cache.ArtifactKeyOpts{
		Format:  string(opts.Format),
		Weights: opts.Weights,
		Title:   opts.Title,
	})

	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, key)
		return data, nil
	}
	observability.Cache().OnCacheMiss(ctx, key)

	dot := nodelink.ToDOT(b, nodelink.Options{Weights: opts.Weights, Title: opts.Title})
	data, err := nodelink.Render(ctx, dot, opts.Format)
	if err != nil {
		return nil, bierrors.Wrap(bierrors.ErrCodeInternal, err, "render %s", opts.Format)
	}

	if err := r.Cache.Set(ctx, key, data, cache.DefaultTTL); err == nil {
		observability.Cache().OnCacheSet(ctx, key, len(data))
	}
	return data, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// classify attaches an error code to optimizer failures.
func classify(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return bierrors.Wrap(bierrors.ErrCodeTimeout, err, "optimize")
	case errors.Is(err, context.Canceled):
		return bierrors.Wrap(bierrors.ErrCodeCancelled, err, "optimize")
	case errors.Is(err, kl.ErrUnbalanced), errors.Is(err, kl.ErrSamePartition):
		return bierrors.Wrap(bierrors.ErrCodeInvalidGraph, err, "optimize")
	default:
		return bierrors.Wrap(bierrors.ErrCodeInternal, err, "optimize")
	}
}
