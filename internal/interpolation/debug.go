package interpolation

import (
	"io"
	"log"
	"sync"
)

var (
	logMu       sync.RWMutex
	opsLogger   *log.Logger
	diagLogger  *log.Logger
	traceLogger *log.Logger
)

// SetLogWriters configures the three logging streams for the interpolation
// package. Pass nil for any writer to disable that stream.
func SetLogWriters(ops, diag, trace io.Writer) {
	logMu.Lock()
	defer logMu.Unlock()
	opsLogger = newLogger("[interp] ", ops)
	diagLogger = newLogger("[interp] ", diag)
	traceLogger = newLogger("[interp] ", trace)
}

func newLogger(prefix string, w io.Writer) *log.Logger {
	if w == nil {
		return nil
	}
	return log.New(w, prefix, log.LstdFlags|log.Lmicroseconds)
}

func logTo(l **log.Logger, format string, args ...interface{}) {
	logMu.RLock()
	lg := *l
	logMu.RUnlock()
	if lg != nil {
		lg.Printf(format, args...)
	}
}

// opsf logs to the ops stream (pipeline-ordering bugs, dropped channels,
// store failures).
func opsf(format string, args ...interface{}) {
	logTo(&opsLogger, format, args...)
}

// diagf logs to the diag stream (axis regeneration, transient invalid
// parameters).
func diagf(format string, args ...interface{}) {
	logTo(&diagLogger, format, args...)
}

// tracef logs to the trace stream (one line per processed reading).
func tracef(format string, args ...interface{}) {
	logTo(&traceLogger, format, args...)
}
