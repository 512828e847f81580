package scenario

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/lguimbarda/pullflow/flow/observe"
	"github.com/lguimbarda/pullflow/internal/config"
)

// Report is the outcome of one scenario run.
type Report struct {
	RunID    string           `yaml:"run_id"`
	Name     string           `yaml:"name"`
	Result   any              `yaml:"result"`
	Pulled   int64            `yaml:"pulled"`
	Duration time.Duration    `yaml:"duration"`
	Metrics  map[string]int64 `yaml:"metrics,omitempty"`
}

// Runner runs scenarios against one configuration. Reports from the same
// Runner share a run ID.
type Runner struct {
	cfg   *config.Config
	log   zerolog.Logger
	runID string
}

// NewRunner creates a Runner with a fresh run ID.
func NewRunner(cfg *config.Config, log zerolog.Logger) *Runner {
	id := uuid.NewString()
	return &Runner{
		cfg:   cfg,
		log:   log.With().Str("run_id", id).Logger(),
		runID: id,
	}
}

// RunID returns the identifier attached to every report and log line.
func (r *Runner) RunID() string { return r.runID }

// Run runs the named scenario.
func (r *Runner) Run(name string) (Report, error) {
	sc, err := Lookup(name)
	if err != nil {
		return Report{}, err
	}

	p := &tap{name: sc.Name, cfg: r.cfg, log: r.log}
	var reader *sdkmetric.ManualReader
	if r.cfg.Metrics {
		reader = sdkmetric.NewManualReader()
		p.meter = sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("pullflow/flowdemo")
	}

	start := time.Now()
	result, err := sc.run(p)
	elapsed := time.Since(start)
	if err == nil {
		err = p.err
	}
	if err != nil {
		r.log.Error().Err(err).Str("scenario", sc.Name).Msg("scenario failed")
		return Report{}, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}

	report := Report{
		RunID:    r.runID,
		Name:     sc.Name,
		Result:   result,
		Pulled:   p.pulled,
		Duration: elapsed,
	}
	if reader != nil {
		report.Metrics, err = totals(reader)
		if err != nil {
			return Report{}, fmt.Errorf("scenario %s: collect metrics: %w", sc.Name, err)
		}
	}

	r.log.Debug().
		Str("scenario", sc.Name).
		Int64("pulled", report.Pulled).
		Dur("duration", elapsed).
		Msg("scenario done")
	return report, nil
}

// RunAll runs the named scenarios in order, or every scenario when names
// is empty. It stops at the first failure.
func (r *Runner) RunAll(names []string) ([]Report, error) {
	if len(names) == 0 {
		names = Names()
	}
	reports := make([]Report, 0, len(names))
	for _, name := range names {
		report, err := r.Run(name)
		if err != nil {
			return reports, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// totals sums the integer counters recorded by observe.Instrument.
func totals(reader *sdkmetric.ManualReader) (map[string]int64, error) {
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		return nil, err
	}

	out := map[string]int64{
		observe.MetricElements: 0,
		observe.MetricDrains:   0,
	}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if _, ok := out[m.Name]; !ok {
				continue
			}
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range sum.DataPoints {
					out[m.Name] += dp.Value
				}
			}
		}
	}
	return out, nil
}
