package observe

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/lguimbarda/pullflow/flow/core"
)

// Logging builds hooks that report the life of a stream through logger:
// start at debug level, each element at trace level, a failure at error
// level and completion at info level with the element count.
func Logging[T any](logger zerolog.Logger, stage string) core.Hooks[T] {
	log := logger.With().Str("stage", stage).Logger()

	var (
		count   int64
		started time.Time
	)

	return core.Hooks[T]{
		OnStart: func() {
			count, started = 0, time.Now()
			log.Debug().Msg("stream started")
		},
		OnValue: func(v T) {
			count++
			log.Trace().Int64("index", count-1).Interface("value", v).Msg("element")
		},
		OnError: func(err error) {
			log.Error().Err(err).Int64("elements", count).Msg("stream failed")
		},
		OnComplete: func() {
			log.Info().
				Int64("elements", count).
				Dur("elapsed", time.Since(started)).
				Msg("stream completed")
		},
	}
}
