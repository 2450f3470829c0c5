package util

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/atomic"
)

// LogProgressFunc adds n to the progress. It can be called concurrently.
type LogProgressFunc func(n uint64)

type LogProgressConfig struct {
	// Message is logged with every progress line.
	Message string
	// Total is the progress value considered to be 100%.
	Total uint64
	// Ticks is the number of progress lines, including the one at 0%.
	// Logging every 10% takes 11 ticks. At least 2 ticks are logged.
	Ticks uint64
	// NoDataLogDuration forces a line when progress is added after this long
	// without any line.
	NoDataLogDuration time.Duration
}

// DefaultLogProgressConfig logs every 10%, and at least once a minute while
// progress is being made.
func DefaultLogProgressConfig(message string, total uint64) LogProgressConfig {
	return LogProgressConfig{
		Message:           message,
		Total:             total,
		Ticks:             11,
		NoDataLogDuration: time.Minute,
	}
}

// LogProgress logs the 0% line and returns the function adding to the
// progress. The eta assumes the progress is linear.
func LogProgress(log zerolog.Logger, config LogProgressConfig) LogProgressFunc {
	start := time.Now()
	lastLog := atomic.NewTime(start)
	current := atomic.NewUint64(0)

	// the writer of log may not be safe for concurrent use
	var mu sync.Mutex
	logProgress := func(value uint64) {
		mu.Lock()
		defer mu.Unlock()

		elapsed := time.Since(start)
		percentage := float64(100)
		if config.Total > 0 {
			percentage = float64(value) / float64(config.Total) * 100
		}

		e := log.Info().
			Uint64("current", value).
			Uint64("total", config.Total).
			Float64("percent", percentage).
			Dur("elapsed", elapsed.Round(time.Millisecond))
		if value < config.Total && percentage > 0 {
			eta := time.Duration(float64(elapsed) / percentage * (100 - percentage))
			e = e.Dur("eta", eta.Round(time.Millisecond))
		}
		e.Msg(config.Message + " progress")
		lastLog.Store(time.Now())
	}

	logProgress(0)

	ticks := config.Ticks
	if ticks < 2 {
		ticks = 2
	}
	increment := config.Total / (ticks - 1)
	if increment == 0 {
		increment = 1
	}
	// the last tick must land on Total
	overflow := config.Total % increment
	tick := func(value uint64) uint64 {
		if value < overflow {
			return 0
		}
		return (value - overflow) / increment
	}

	return func(n uint64) {
		if n == 0 {
			return
		}
		value := current.Add(n)
		from, to := tick(value-n), tick(value)

		if from == to {
			if time.Since(lastLog.Load()) > config.NoDataLogDuration {
				logProgress(value)
			}
			return
		}
		for t := from; t < to; t++ {
			logProgress(increment*(t+1) + overflow)
		}
	}
}
