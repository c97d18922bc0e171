// Package job defines the immutable job records the scheduler fires.
package job

import (
	"webcron/internal/cronexpr"
)

// Methods lists the HTTP methods a job may use.
var Methods = map[string]bool{
	"GET":     true,
	"POST":    true,
	"PUT":     true,
	"PATCH":   true,
	"DELETE":  true,
	"HEAD":    true,
	"OPTIONS": true,
}

// Header is one request header pair. Order is preserved from the
// configuration entry.
type Header struct {
	Name  string
	Value string
}

// Job describes one scheduled HTTP call. Records are built once at
// configuration load and never mutated afterwards; the scheduler owns the
// list for the process lifetime and only ever reads it.
type Job struct {
	Method   string
	URL      string
	Schedule cronexpr.Expr
	Headers  []Header

	// Body is the raw request payload. Empty means no body, matching the
	// configuration syntax where an empty field omits the payload.
	Body string
}
