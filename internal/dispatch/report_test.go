package dispatch

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLineWriterFormats(t *testing.T) {
	t.Parallel()
	tick := time.Date(2026, time.August, 31, 12, 0, 5, 0, time.UTC)

	tests := []struct {
		name string
		out  Outcome
		want string
		fail bool
	}{
		{
			name: "success",
			out:  success(Outcome{Tick: tick, Method: "GET", URL: "http://example/ping"}, 204),
			want: "2026-08-31T12:00:05Z | OK   | GET http://example/ping | 204\n",
		},
		{
			name: "http failure",
			out:  httpFailure(Outcome{Tick: tick, Method: "POST", URL: "http://example/hook"}, 500),
			want: "2026-08-31T12:00:05Z | FAIL | POST http://example/hook | HTTP 500 (server error)\n",
			fail: true,
		},
		{
			name: "transport failure",
			out:  transportFailure(Outcome{Tick: tick, Method: "GET", URL: "http://example/x"}, errors.New("connection refused")),
			want: "2026-08-31T12:00:05Z | FAIL | GET http://example/x | transport error: connection refused\n",
			fail: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var okBuf, failBuf strings.Builder
			lw := NewLineWriter(&okBuf, &failBuf)
			lw.Report(tt.out)
			got, other := okBuf.String(), failBuf.String()
			if tt.fail {
				got, other = failBuf.String(), okBuf.String()
			}
			if got != tt.want {
				t.Errorf("line = %q, want %q", got, tt.want)
			}
			if other != "" {
				t.Errorf("wrote to both streams: %q", other)
			}
		})
	}
}

func TestLineWriterTickInUTC(t *testing.T) {
	t.Parallel()
	loc := time.FixedZone("UTC+7", 7*3600)
	tick := time.Date(2026, time.August, 31, 19, 0, 5, 0, loc)
	var buf strings.Builder
	lw := NewLineWriter(&buf, &buf)
	lw.Report(success(Outcome{Tick: tick, Method: "GET", URL: "http://example/"}, 200))
	if !strings.HasPrefix(buf.String(), "2026-08-31T12:00:05Z") {
		t.Fatalf("timestamp not normalized to UTC: %q", buf.String())
	}
}
