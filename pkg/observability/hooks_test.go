package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	o := NoopOptimizerHooks{}
	o.OnPassStart(ctx, 1, 6)
	o.OnPassComplete(ctx, 1, 42, 3, time.Millisecond)
	o.OnConverged(ctx, 2, 300, 120, true)

	p := NoopPipelineHooks{}
	p.OnRunStart(ctx, 12, 15)
	p.OnRunComplete(ctx, false, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "result")
	c.OnCacheMiss(ctx, "result")
	c.OnCacheSet(ctx, "result", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Optimizer().(NoopOptimizerHooks); !ok {
		t.Error("Optimizer() should return NoopOptimizerHooks by default")
	}
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	customOptimizer := &testOptimizerHooks{}
	SetOptimizerHooks(customOptimizer)
	if Optimizer() != customOptimizer {
		t.Error("SetOptimizerHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	Reset()
	if _, ok := Optimizer().(NoopOptimizerHooks); !ok {
		t.Error("Reset() should restore NoopOptimizerHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testOptimizerHooks{}
	SetOptimizerHooks(custom)
	SetOptimizerHooks(nil)
	if Optimizer() != custom {
		t.Error("SetOptimizerHooks(nil) should keep the previous hooks")
	}
}

type testOptimizerHooks struct{ NoopOptimizerHooks }

type testCacheHooks struct{ NoopCacheHooks }
