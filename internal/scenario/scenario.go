// Package scenario holds the named pipelines run by the flowdemo command.
//
// Every scenario builds its pipeline from the library's public packages,
// observes the elements pulled from its source and reports the result.
package scenario

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"

	"github.com/lguimbarda/pullflow/flow"
	"github.com/lguimbarda/pullflow/flow/aggregate"
	"github.com/lguimbarda/pullflow/flow/collect"
	"github.com/lguimbarda/pullflow/flow/combine"
	"github.com/lguimbarda/pullflow/flow/flowerrors"
	"github.com/lguimbarda/pullflow/flow/observe"
	"github.com/lguimbarda/pullflow/internal/config"
)

// Scenario is one named pipeline.
type Scenario struct {
	Name        string
	Description string
	run         func(p *tap) (any, error)
}

// tap carries what a scenario needs to observe its source.
type tap struct {
	name   string
	cfg    *config.Config
	log    zerolog.Logger
	meter  metric.Meter // nil when metrics are off
	pulled int64
	err    error
}

// observed attaches the source observers: a pull counter, lifecycle
// logging and, when enabled, OpenTelemetry instruments.
func observed[T any](p *tap, s *flow.Stream[T]) *flow.Stream[T] {
	hooks := []flow.Hooks[T]{
		{OnValue: func(T) { p.pulled++ }},
		observe.Logging[T](p.log, p.name),
	}
	if p.meter != nil {
		h, err := observe.Instrument[T](p.meter, p.name)
		if err != nil {
			p.err = err
		} else {
			hooks = append(hooks, h)
		}
	}
	return s.Observe(hooks...)
}

func isEven(n int) bool { return n%2 == 0 }

func isOdd(n int) bool { return n%2 != 0 }

// parseInputs holds one malformed entry; parse-recover stops there.
var parseInputs = []string{"10", "20", "x", "40"}

var registry = []Scenario{
	{
		Name:        "evens",
		Description: "count the even integers in the configured range",
		run: func(p *tap) (any, error) {
			return observed(p, flow.Range(p.cfg.Range.Start, p.cfg.Range.End)).
				Filter(isEven).
				Count()
		},
	},
	{
		Name:        "distinct-strings",
		Description: "cycle 1..50, keep distinct evens and join them as strings",
		run: func(p *tap) (any, error) {
			cycled := flow.Map(flow.Range(0, 50*p.cfg.Repeat), func(n int) int { return n%50 + 1 })
			evens := flow.Distinct(observed(p, cycled).Filter(isEven))
			return flow.Collect(flow.Map(evens, strconv.Itoa), collect.Joining(","))
		},
	},
	{
		Name:        "stats",
		Description: "summarize the configured sample",
		run: func(p *tap) (any, error) {
			return aggregate.Summarize(observed(p, flow.FromSlice(p.cfg.Sample)))
		},
	},
	{
		Name:        "indexed",
		Description: "index the first five multiples of ten in the configured range",
		run: func(p *tap) (any, error) {
			tens := observed(p, flow.Range(p.cfg.Range.Start, p.cfg.Range.End)).
				Filter(func(n int) bool { return n%10 == 0 }).
				Limit(5)
			return flow.Collect(tens, collect.Indexed[int]())
		},
	},
	{
		Name:        "all-positive",
		Description: "check that every even integer in the configured range is positive",
		run: func(p *tap) (any, error) {
			return observed(p, flow.Range(p.cfg.Range.Start, p.cfg.Range.End)).
				Filter(isEven).
				AllMatch(func(n int) bool { return n > 0 })
		},
	},
	{
		Name:        "interleave",
		Description: "alternate the first three evens and odds of the configured range",
		run: func(p *tap) (any, error) {
			evens := observed(p, flow.Range(p.cfg.Range.Start, p.cfg.Range.End)).Filter(isEven)
			odds := flow.Range(p.cfg.Range.Start, p.cfg.Range.End).Filter(isOdd)
			return combine.Interleave(evens, odds).Limit(6).ToSlice()
		},
	},
	{
		Name:        "parse-recover",
		Description: "parse integers, replacing the first malformed entry with -1",
		run: func(p *tap) (any, error) {
			return flow.Pipe(
				flow.TryMap(observed(p, flow.FromSlice(parseInputs)), strconv.Atoi),
				flowerrors.Tag[int]("parse"),
				flowerrors.CatchError(func(err error) bool {
					var numErr *strconv.NumError
					return errors.As(err, &numErr)
				}, func(error) (int, error) { return -1, nil }),
			).ToSlice()
		},
	},
}

// All returns the registered scenarios in listing order.
func All() []Scenario {
	return slices.Clone(registry)
}

// Names returns the registered scenario names in listing order.
func Names() []string {
	names := make([]string, len(registry))
	for i, s := range registry {
		names[i] = s.Name
	}
	return names
}

// Lookup finds a scenario by name.
func Lookup(name string) (Scenario, error) {
	for _, s := range registry {
		if s.Name == name {
			return s, nil
		}
	}
	return Scenario{}, fmt.Errorf("unknown scenario %q (known: %v)", name, Names())
}
