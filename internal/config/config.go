// Package config loads and validates the webcron process configuration.
//
// Configuration comes from an optional YAML (or JSON) file plus two
// environment overrides: SECRET and CRON_JOBS. Any invalid job entry or
// schedule is fatal at load time; the scheduler never starts with a
// partially valid job list.
package config

import (
	"fmt"
	"strings"
	"time"

	"webcron/internal/job"
)

type Config struct {
	// Secret is sent as the X-Cron-Secret header on every dispatch.
	// Overridden by the SECRET environment variable.
	Secret string `json:"secret"`

	// Jobs holds the raw job list, one METHOD|URL|CRON|HEADERS|BODY entry
	// per line (or separated by ";"). Overridden by CRON_JOBS.
	Jobs string `json:"jobs"`

	Logging  LoggingConfig  `json:"logging,omitempty"`
	Dispatch DispatchConfig `json:"dispatch,omitempty"`

	// JobList is the parsed, validated form of Jobs. Populated by Load;
	// parsed exactly once so every tick evaluates identical schedules.
	JobList []job.Job `json:"-"`
}

type LoggingConfig struct {
	// Level is trace/debug/info/warn/error. Default info.
	Level string     `json:"level,omitempty"`
	File  FileConfig `json:"file,omitempty"`
}

type FileConfig struct {
	Enabled bool   `json:"enabled,omitempty"`
	Path    string `json:"path,omitempty"`
}

// DispatchConfig controls outbound request behavior.
//
// All durations are Go duration strings (e.g. "500ms", "10s", "1m").
type DispatchConfig struct {
	// Timeout bounds one HTTP attempt. Default "30s".
	Timeout string `json:"timeout,omitempty"`

	// MaxPerSec caps outbound dispatches per second across all jobs.
	// Zero means unlimited. Overlapping dispatches wait their turn inside
	// their own goroutine; the tick loop is never throttled.
	MaxPerSec int `json:"max_per_sec,omitempty"`

	// UserAgent is sent when a job supplies no User-Agent header.
	UserAgent string `json:"user_agent,omitempty"`
}

const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "webcron/1.0"
)

// RequestTimeout returns the parsed dispatch timeout.
func (c *Config) RequestTimeout() (time.Duration, error) {
	return ParseDurationOrDefault("dispatch.timeout", c.Dispatch.Timeout, DefaultTimeout)
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Secret) == "" {
		return fmt.Errorf("secret is required (config file or SECRET env)")
	}
	if strings.TrimSpace(c.Jobs) == "" {
		return fmt.Errorf("job list is required (config file or CRON_JOBS env)")
	}
	if c.Dispatch.MaxPerSec < 0 {
		return fmt.Errorf("dispatch.max_per_sec must be >= 0")
	}
	if _, err := c.RequestTimeout(); err != nil {
		return err
	}

	jobs, err := ParseJobs(c.Jobs)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		return fmt.Errorf("job list is empty")
	}
	c.JobList = jobs
	return nil
}
