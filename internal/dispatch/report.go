package dispatch

import (
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"
)

// Reporter consumes one outcome per completed dispatch. Implementations
// must be cheap: dispatch goroutines block only for the duration of one
// Report call.
type Reporter interface {
	Report(Outcome)
}

// LineWriter emits the fixed one-line-per-outcome format:
//
//	<RFC3339 UTC> | OK   | METHOD URL | <status>
//	<RFC3339 UTC> | FAIL | METHOD URL | <cause>
//
// Successes go to out, failures to errOut (stdout/stderr in the daemon).
// Safe for concurrent use.
type LineWriter struct {
	mu     sync.Mutex
	out    io.Writer
	errOut io.Writer
}

func NewLineWriter(out, errOut io.Writer) *LineWriter {
	return &LineWriter{out: out, errOut: errOut}
}

func (l *LineWriter) Report(o Outcome) {
	label, detail, w := "OK", strconv.Itoa(o.Status), l.out
	if !o.OK() {
		label, detail, w = "FAIL", o.Cause, l.errOut
	}
	line := fmt.Sprintf("%s | %-4s | %s %s | %s\n",
		o.Tick.UTC().Format(time.RFC3339), label, o.Method, o.URL, detail)

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(w, line)
}
