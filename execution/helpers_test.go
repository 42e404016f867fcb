package execution

import (
	"context"
	"slices"
	"sync/atomic"
	"testing"

	"github.com/kbukum/streamfusion/logger"
	"github.com/kbukum/streamfusion/sink"
	"github.com/kbukum/streamfusion/stream"
)

func newEngine(t *testing.T, workers, capacity int, opts ...Option) *Engine {
	t.Helper()
	cfg := Config{WorkerCount: workers, YieldEvery: 8, MorselCapacity: capacity}
	e, err := New(cfg, append([]Option{WithLogger(logger.NewNop())}, opts...)...)
	if err != nil {
		t.Fatalf("unexpected error creating engine: %v", err)
	}
	return e
}

func sumUnit(c stream.Cursor[int]) sink.Sink[int] {
	return sink.Fold(c, 0, func(acc, i int) int { return acc + i })
}

func add(a, b int) int { return a + b }

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// stopCounter counts Stop calls on the wrapped cursor.
type stopCounter struct {
	stream.Cursor[int]
	stops atomic.Int32
}

func (s *stopCounter) Stop() { s.stops.Add(1) }

// gatedPlan runs one unit per gate. Unit i completes with []int{i} once its
// gate is closed, or with nothing when its context ends.
type gatedPlan struct {
	gates []chan struct{}
}

func newGatedPlan(n int) *gatedPlan {
	p := &gatedPlan{gates: make([]chan struct{}, n)}
	for i := range p.gates {
		p.gates[i] = make(chan struct{})
	}
	return p
}

func (p *gatedPlan) Name() string { return "gated" }

func (p *gatedPlan) Units(Config) (stream.Cursor[sink.Sink[[]int]], error) {
	return stream.Map[int](stream.Range(0, len(p.gates)), func(i int) sink.Sink[[]int] {
		return sink.Func[[]int](func(ctx context.Context) ([]int, bool) {
			select {
			case <-p.gates[i]:
				return []int{i}, true
			case <-ctx.Done():
				return nil, true
			}
		})
	}), nil
}

func (p *gatedPlan) Merge(a, b []int) []int {
	out := append(slices.Clone(a), b...)
	slices.Sort(out)
	return out
}
