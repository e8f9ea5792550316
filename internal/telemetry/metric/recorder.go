package metric

import (
	"strings"
	"time"

	"github.com/yndnr/promwalk/internal/core/model"
	"github.com/yndnr/promwalk/internal/core/walk"
)

// Recorder counts the events of walks over one input format. It is not
// safe for concurrent walks; use one Recorder per walk.
type Recorder struct {
	reg     *Registry
	format  string
	started time.Time
	aborted bool
}

var (
	_ walk.Callbacks = (*Recorder)(nil)
	_ walk.Aborter   = (*Recorder)(nil)
)

// Recorder returns a recorder attributing walks to format.
func (r *Registry) Recorder(format walk.Format) *Recorder {
	return &Recorder{reg: r, format: format.String()}
}

func (rec *Recorder) Start() {
	rec.started = time.Now()
	rec.aborted = false
}

func (rec *Recorder) Family(f *model.Family, _ int) {
	rec.reg.familiesTotal.WithLabelValues(rec.format).Inc()
	if f.Type() == model.TypeUntyped {
		rec.count(model.TypeUntyped, f.Len())
	}
}

func (rec *Recorder) Counter(*model.Family, *model.Counter, int) {
	rec.count(model.TypeCounter, 1)
}

func (rec *Recorder) Gauge(*model.Family, *model.Gauge, int) {
	rec.count(model.TypeGauge, 1)
}

func (rec *Recorder) Summary(*model.Family, *model.Summary, int) {
	rec.count(model.TypeSummary, 1)
}

func (rec *Recorder) Histogram(*model.Family, *model.Histogram, int) {
	rec.count(model.TypeHistogram, 1)
}

func (rec *Recorder) count(t model.MetricType, n int) {
	if n > 0 {
		rec.reg.metricsTotal.WithLabelValues(rec.format, strings.ToLower(t.String())).Add(float64(n))
	}
}

// Abort counts the walk as aborted under the error code of err.
func (rec *Recorder) Abort(err error) {
	rec.aborted = true
	code := model.ErrorCode(err)
	if code == "" {
		code = "other"
	}
	rec.reg.abortsTotal.WithLabelValues(rec.format, code).Inc()
}

func (rec *Recorder) Finish(int, int) {
	outcome := "ok"
	if rec.aborted {
		outcome = "aborted"
	}
	rec.reg.walksTotal.WithLabelValues(rec.format, outcome).Inc()
	rec.reg.walkDuration.WithLabelValues(rec.format).Observe(time.Since(rec.started).Seconds())
	rec.reg.lastWalk.SetToCurrentTime()
}
