package render

import (
	"io"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/yndnr/promwalk/internal/core/model"
	"github.com/yndnr/promwalk/internal/core/protoformat"
)

// Exposition re-emits the walk in the Prometheus text exposition format,
// whatever format it was read from.
type Exposition struct {
	out *sink
	cur *dto.MetricFamily
}

var _ Renderer = (*Exposition)(nil)

// NewExposition returns an exposition renderer writing to w.
func NewExposition(w io.Writer) *Exposition {
	return &Exposition{out: &sink{w: w}}
}

func (r *Exposition) Start() {}

func (r *Exposition) Family(f *model.Family, _ int) {
	r.flush()
	if f.Type() == model.TypeUntyped {
		r.cur = protoformat.FromFamily(f)
		return
	}
	r.cur = protoformat.Header(f)
}

func (r *Exposition) Counter(_ *model.Family, m *model.Counter, _ int) {
	r.add(m)
}

func (r *Exposition) Gauge(_ *model.Family, m *model.Gauge, _ int) {
	r.add(m)
}

func (r *Exposition) Summary(_ *model.Family, m *model.Summary, _ int) {
	r.add(m)
}

func (r *Exposition) Histogram(_ *model.Family, m *model.Histogram, _ int) {
	r.add(m)
}

func (r *Exposition) add(m model.Metric) {
	if r.cur != nil {
		r.cur.Metric = append(r.cur.Metric, protoformat.FromMetric(m))
	}
}

func (r *Exposition) flush() {
	if r.cur == nil {
		return
	}
	// expfmt refuses families without metrics.
	if len(r.cur.Metric) > 0 && r.out.err == nil {
		_, err := expfmt.MetricFamilyToText(r.out, r.cur)
		r.out.fail(err)
	}
	r.cur = nil
}

func (r *Exposition) Finish(int, int) {
	r.flush()
}

// Err returns the first write or encoding error.
func (r *Exposition) Err() error {
	return r.out.Err()
}
