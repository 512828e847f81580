package observe

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/lguimbarda/pullflow/flow/core"
)

// Metric instrument names recorded by Instrument.
const (
	MetricElements      = "pullflow.elements"
	MetricDrains        = "pullflow.drains"
	MetricDrainSize     = "pullflow.drain.size"
	MetricDrainDuration = "pullflow.drain.duration"
)

// Instrument builds hooks that record OpenTelemetry measurements for one
// point of a pipeline. Every measurement carries a "stage" attribute; drain
// measurements also carry "outcome" (ok or failed).
//
// The hooks keep per-drain state that is reset on start, so they may be
// reused for consecutive streams but not for streams drained concurrently.
// Measurements are recorded with a background context since pulls carry none.
func Instrument[T any](meter metric.Meter, stage string) (core.Hooks[T], error) {
	elements, err := meter.Int64Counter(MetricElements,
		metric.WithDescription("Elements handed downstream"),
		metric.WithUnit("{element}"))
	if err != nil {
		return core.Hooks[T]{}, fmt.Errorf("create %s counter: %w", MetricElements, err)
	}
	drains, err := meter.Int64Counter(MetricDrains,
		metric.WithDescription("Streams that reached exhaustion"),
		metric.WithUnit("{drain}"))
	if err != nil {
		return core.Hooks[T]{}, fmt.Errorf("create %s counter: %w", MetricDrains, err)
	}
	size, err := meter.Int64Histogram(MetricDrainSize,
		metric.WithDescription("Elements per completed drain"),
		metric.WithUnit("{element}"))
	if err != nil {
		return core.Hooks[T]{}, fmt.Errorf("create %s histogram: %w", MetricDrainSize, err)
	}
	duration, err := meter.Float64Histogram(MetricDrainDuration,
		metric.WithDescription("Time from first pull to exhaustion"),
		metric.WithUnit("s"))
	if err != nil {
		return core.Hooks[T]{}, fmt.Errorf("create %s histogram: %w", MetricDrainDuration, err)
	}

	stageAttr := attribute.String("stage", stage)
	stageOpt := metric.WithAttributeSet(attribute.NewSet(stageAttr))
	okOpt := metric.WithAttributeSet(attribute.NewSet(stageAttr, attribute.String("outcome", "ok")))
	failedOpt := metric.WithAttributeSet(attribute.NewSet(stageAttr, attribute.String("outcome", "failed")))

	var (
		count   int64
		failed  bool
		started time.Time
	)
	ctx := context.Background()

	return core.Hooks[T]{
		OnStart: func() {
			count, failed, started = 0, false, time.Now()
		},
		OnValue: func(T) {
			count++
			elements.Add(ctx, 1, stageOpt)
		},
		OnError: func(error) {
			failed = true
		},
		OnComplete: func() {
			outcome := okOpt
			if failed {
				outcome = failedOpt
			}
			drains.Add(ctx, 1, outcome)
			size.Record(ctx, count, outcome)
			duration.Record(ctx, time.Since(started).Seconds(), outcome)
		},
	}, nil
}
