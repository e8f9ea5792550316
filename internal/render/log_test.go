package render

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/yndnr/promwalk/internal/core/model"
	"github.com/yndnr/promwalk/internal/core/walk"
	"github.com/yndnr/promwalk/internal/telemetry/logger"
)

func TestLog_DefaultWritesToOutput(t *testing.T) {
	out := render(t, FormatLog, Options{})

	for _, want := range []string{
		`msg="metric family" name=http_requests_total type=COUNTER metrics=2 help=Requests.`,
		`msg=COUNTER name=http_requests_total labels="{method=post,code=200}" value=1027.000000`,
		`msg=SUMMARY name=rpc_seconds labels={} count=4 sum=1.500000 quantiles=[0.500000:0.200000]`,
		`msg=HISTOGRAM name=latency_seconds labels={} count=3 sum=2.500000 buckets="[1.000000:2 +Inf:3]"`,
		`msg=UNTYPED name=raw_value labels={} value=7.000000`,
		`msg="walk finished" families=4 metrics=5`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Count(out, "level=INFO") != 10 {
		t.Errorf("want 10 info records:\n%s", out)
	}
}

func TestLog_Level(t *testing.T) {
	var buf bytes.Buffer
	l := logger.Fixed(logger.Config{Level: "info", Format: "text", Output: &buf})

	r := NewLog(l, "debug")
	walkFixture(t, r)
	if buf.Len() != 0 {
		t.Errorf("debug records should be filtered at info:\n%s", buf.String())
	}

	r = NewLog(l, "warn")
	walkFixture(t, r)
	if !strings.Contains(buf.String(), "level=WARN") {
		t.Errorf("records should be logged at warn:\n%s", buf.String())
	}
}

func TestLog_Abort(t *testing.T) {
	var buf bytes.Buffer
	l := logger.Fixed(logger.Config{Level: "warn", Format: "text", Output: &buf})

	walk.WalkSource(context.Background(), walk.SourceFunc(func() (*model.Family, error) {
		return nil, errors.New("boom")
	}), NewLog(l, "info"), walk.WithLogger(logger.Nop()))

	if !strings.Contains(buf.String(), `msg="walk aborted" error=boom`) {
		t.Errorf("abort not logged:\n%s", buf.String())
	}
}
