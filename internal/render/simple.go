package render

import (
	"io"
	"strings"

	"github.com/yndnr/promwalk/internal/core/model"
)

// Simple renders a short human-readable listing:
//
//   - http_requests_total (COUNTER): The total number of HTTP requests.
//   - 0. http_requests_total{method=post,code=200} [1027.000000]
type Simple struct {
	out *sink
	url string
}

var _ Renderer = (*Simple)(nil)

// NewSimple returns a simple renderer writing to w. A non-empty url is
// announced when the walk starts.
func NewSimple(w io.Writer, url string) *Simple {
	return &Simple{out: &sink{w: w}, url: url}
}

func (r *Simple) Start() {
	if r.url != "" {
		r.out.printf("Scraping metrics from Prometheus protocol endpoint: %s\n", r.url)
	}
}

func (r *Simple) Family(f *model.Family, _ int) {
	r.out.printf("* %s (%s): %s\n", f.Name(), f.Type(), f.Help())
	if f.Type() == model.TypeUntyped {
		for i, m := range f.Metrics() {
			r.value(i, m, m.(*model.Untyped).Value())
		}
	}
}

func (r *Simple) Counter(_ *model.Family, m *model.Counter, index int) {
	r.value(index, m, m.Value())
}

func (r *Simple) Gauge(_ *model.Family, m *model.Gauge, index int) {
	r.value(index, m, m.Value())
}

func (r *Simple) Summary(_ *model.Family, m *model.Summary, index int) {
	parts := make([]string, 0, len(m.Quantiles()))
	for _, q := range m.Quantiles() {
		parts = append(parts, q.String())
	}
	r.aggregate(index, m, m.SampleCount(), m.SampleSum(), parts)
}

func (r *Simple) Histogram(_ *model.Family, m *model.Histogram, index int) {
	parts := make([]string, 0, len(m.Buckets()))
	for _, b := range m.Buckets() {
		parts = append(parts, b.String())
	}
	r.aggregate(index, m, m.SampleCount(), m.SampleSum(), parts)
}

func (r *Simple) value(index int, m model.Metric, v float64) {
	r.out.printf("  +%2d. %s%s [%s]\n", index, m.Name(), FormatLabels(m.Labels(), "{", "}"), model.FormatFloat(v))
}

func (r *Simple) aggregate(index int, m model.Metric, count uint64, sum float64, parts []string) {
	r.out.printf("  +%2d. %s%s [%d/%s] {%s}\n", index, m.Name(), FormatLabels(m.Labels(), "{", "}"),
		count, model.FormatFloat(sum), strings.Join(parts, ", "))
}

// Abort reports the reason the walk ended early.
func (r *Simple) Abort(err error) {
	r.out.printf("! walk aborted: %v\n", err)
}

func (r *Simple) Finish(_, metrics int) {
	if metrics == 0 {
		r.out.printf("There are no metrics\n")
	}
}

// Err returns the first write error.
func (r *Simple) Err() error {
	return r.out.Err()
}
