package dispatch

import (
	"fmt"
	"time"
)

// Outcome is the terminal record of one dispatch attempt. It is owned by
// the dispatch goroutine that produced it until handed to a Reporter, then
// discarded; nothing is shared between concurrent dispatches.
type Outcome struct {
	// Tick is the scheduler tick that fired the job (not the completion
	// time), so log lines attribute results to the right second even when
	// slow calls finish out of order.
	Tick   time.Time
	Method string
	URL    string

	// Status is the HTTP status when a response was received, 0 otherwise.
	Status int

	// Cause is empty on success. On failure it is either
	// "HTTP <status> (client error|server error)" or a transport-level
	// description (connection refused, timeout, DNS failure, ...).
	Cause string
}

// OK reports whether the dispatch succeeded.
func (o Outcome) OK() bool { return o.Cause == "" }

func success(o Outcome, status int) Outcome {
	o.Status = status
	return o
}

func httpFailure(o Outcome, status int) Outcome {
	class := "server error"
	if status < 500 {
		class = "client error"
	}
	o.Status = status
	o.Cause = fmt.Sprintf("HTTP %d (%s)", status, class)
	return o
}

func transportFailure(o Outcome, err error) Outcome {
	o.Cause = fmt.Sprintf("transport error: %v", err)
	return o
}
