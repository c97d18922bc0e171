package config

import (
	"fmt"
	"net/url"
	"strings"

	"webcron/internal/cronexpr"
	"webcron/internal/job"
)

// ParseJobs parses the job-list syntax into job records:
//
//	METHOD|URL|CRON_EXPR|HEADERS|BODY
//
// Entries are separated by ";" or newlines. HEADERS is a comma-separated
// list of Name:Value pairs and, like BODY, may be empty or omitted.
// Any malformed entry fails the whole parse; partial job lists are not
// accepted.
func ParseJobs(spec string) ([]job.Job, error) {
	var jobs []job.Job
	for i, entry := range splitEntries(spec) {
		j, err := parseEntry(entry)
		if err != nil {
			return nil, fmt.Errorf("jobs[%d]: %w", i, err)
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

func splitEntries(spec string) []string {
	raw := strings.FieldsFunc(spec, func(r rune) bool {
		return r == ';' || r == '\n' || r == '\r'
	})
	var out []string
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func parseEntry(entry string) (job.Job, error) {
	parts := strings.SplitN(entry, "|", 5)
	if len(parts) < 3 {
		return job.Job{}, fmt.Errorf("want METHOD|URL|CRON_EXPR[|HEADERS[|BODY]], got %d field(s)", len(parts))
	}

	method := strings.ToUpper(strings.TrimSpace(parts[0]))
	if !job.Methods[method] {
		return job.Job{}, fmt.Errorf("unsupported method %q", parts[0])
	}

	rawURL := strings.TrimSpace(parts[1])
	u, err := url.Parse(rawURL)
	if err != nil {
		return job.Job{}, fmt.Errorf("invalid url %q: %w", rawURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return job.Job{}, fmt.Errorf("url %q must be absolute http(s)", rawURL)
	}

	expr, err := cronexpr.Parse(strings.TrimSpace(parts[2]))
	if err != nil {
		return job.Job{}, err
	}

	var headers []job.Header
	if len(parts) >= 4 {
		headers, err = parseHeaders(parts[3])
		if err != nil {
			return job.Job{}, err
		}
	}

	var body string
	if len(parts) == 5 {
		body = parts[4]
	}

	return job.Job{
		Method:   method,
		URL:      rawURL,
		Schedule: expr,
		Headers:  headers,
		Body:     body,
	}, nil
}

func parseHeaders(s string) ([]job.Header, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var out []job.Header
	for _, pair := range strings.Split(s, ",") {
		name, value, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, fmt.Errorf("header %q: want Name:Value", pair)
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("header %q: empty name", pair)
		}
		out = append(out, job.Header{Name: name, Value: strings.TrimSpace(value)})
	}
	return out, nil
}
