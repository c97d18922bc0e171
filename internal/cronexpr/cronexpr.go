// Package cronexpr implements the six-field cron expressions used to
// schedule webcron jobs.
//
// An expression has six space-separated fields, seconds first:
//
//	second minute hour day-of-month month day-of-week
//
// Each field is a wildcard ("*"), a single value ("15"), or a step
// ("*/N", matching every value v in the field's range with v mod N == 0).
// Day-of-week runs 0-6 with 0 = Sunday.
//
// Unlike traditional cron, day-of-month and day-of-week are combined with
// AND: when both are restricted, an instant must satisfy both. This is a
// deliberate simplification over the classic OR rule.
//
// Expressions are parsed once at configuration load; Matches is a pure
// function of the parsed expression and the instant.
package cronexpr

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type fieldKind int

const (
	kindWildcard fieldKind = iota
	kindExact
	kindStep
)

// field is one parsed position of the expression.
type field struct {
	kind fieldKind
	n    int // exact value or step divisor
}

func (f field) matches(v int) bool {
	switch f.kind {
	case kindExact:
		return v == f.n
	case kindStep:
		return v%f.n == 0
	default:
		return true
	}
}

// fieldSpec describes the valid range of one expression position.
type fieldSpec struct {
	name     string
	min, max int
}

var fieldSpecs = [6]fieldSpec{
	{"second", 0, 59},
	{"minute", 0, 59},
	{"hour", 0, 23},
	{"day-of-month", 1, 31},
	{"month", 1, 12},
	{"day-of-week", 0, 6},
}

// Expr is a parsed six-field cron expression. The zero value matches
// every instant (all fields wildcard); use Parse to build one from text.
type Expr struct {
	fields [6]field
	raw    string
}

// Parse validates and compiles a six-field cron expression. It rejects
// wrong field counts, out-of-range values, and malformed steps so that
// invalid schedules surface at configuration load, not at match time.
func Parse(raw string) (Expr, error) {
	parts := strings.Fields(raw)
	if len(parts) != len(fieldSpecs) {
		return Expr{}, fmt.Errorf("cron %q: want %d fields, got %d", raw, len(fieldSpecs), len(parts))
	}

	var e Expr
	for i, p := range parts {
		f, err := parseField(p, fieldSpecs[i])
		if err != nil {
			return Expr{}, fmt.Errorf("cron %q: %w", raw, err)
		}
		e.fields[i] = f
	}
	e.raw = strings.Join(parts, " ")
	return e, nil
}

func parseField(p string, spec fieldSpec) (field, error) {
	if p == "*" {
		return field{kind: kindWildcard}, nil
	}
	if rest, ok := strings.CutPrefix(p, "*/"); ok {
		n, err := strconv.Atoi(rest)
		if err != nil || n < 1 {
			return field{}, fmt.Errorf("%s: invalid step %q", spec.name, p)
		}
		return field{kind: kindStep, n: n}, nil
	}
	n, err := strconv.Atoi(p)
	if err != nil {
		return field{}, fmt.Errorf("%s: invalid value %q", spec.name, p)
	}
	if n < spec.min || n > spec.max {
		return field{}, fmt.Errorf("%s: value %d out of range %d-%d", spec.name, n, spec.min, spec.max)
	}
	return field{kind: kindExact, n: n}, nil
}

// Matches reports whether t satisfies the expression. All six fields must
// match, including both day-of-month and day-of-week.
func (e Expr) Matches(t time.Time) bool {
	vals := [6]int{
		t.Second(),
		t.Minute(),
		t.Hour(),
		t.Day(),
		int(t.Month()),
		int(t.Weekday()), // time.Sunday == 0
	}
	for i, f := range e.fields {
		if !f.matches(vals[i]) {
			return false
		}
	}
	return true
}

// String returns the normalized expression text ("" for the zero value).
func (e Expr) String() string { return e.raw }
