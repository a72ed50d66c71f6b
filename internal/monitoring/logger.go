package monitoring

import (
	"log"
	"time"

	"github.com/banshee-data/survival.report/internal/timeutil"
)

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger. Tests or production code can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// Stage logs the start of a named pipeline stage and returns a func that
// logs its completion with the elapsed time measured on clock. A nil clock
// uses the wall clock.
//
//	done := monitoring.Stage(clock, "clean")
//	defer done()
func Stage(clock timeutil.Clock, name string) func() {
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	start := clock.Now()
	Logf("[%s] starting", name)
	return func() {
		Logf("[%s] done in %s", name, clock.Since(start).Round(time.Millisecond))
	}
}
