package render

import (
	"github.com/yndnr/promwalk/internal/core/model"
	"github.com/yndnr/promwalk/internal/telemetry/logger"
)

// Log writes one log record per family and per metric.
type Log struct {
	logger logger.Logger
	log    func(msg string, args ...any)
}

var _ Renderer = (*Log)(nil)

// NewLog returns a renderer logging to l at level, "info" when empty.
func NewLog(l logger.Logger, level string) *Log {
	r := &Log{logger: l}
	switch level {
	case "debug":
		r.log = l.Debug
	case "warn", "warning":
		r.log = l.Warn
	case "error":
		r.log = l.Error
	default:
		r.log = l.Info
	}
	return r
}

func (r *Log) Start() {}

func (r *Log) Family(f *model.Family, _ int) {
	r.log("metric family",
		"name", f.Name(),
		"type", f.Type().String(),
		"metrics", f.Len(),
		"help", f.Help())
	if f.Type() == model.TypeUntyped {
		for _, m := range f.Metrics() {
			r.value(m, m.(*model.Untyped).Value())
		}
	}
}

func (r *Log) Counter(_ *model.Family, m *model.Counter, _ int) {
	r.value(m, m.Value())
}

func (r *Log) Gauge(_ *model.Family, m *model.Gauge, _ int) {
	r.value(m, m.Value())
}

func (r *Log) Summary(_ *model.Family, m *model.Summary, _ int) {
	quantiles := make([]string, 0, len(m.Quantiles()))
	for _, q := range m.Quantiles() {
		quantiles = append(quantiles, q.String())
	}
	r.log(m.Type().String(),
		"name", m.Name(),
		"labels", FormatLabels(m.Labels(), "{", "}"),
		"count", m.SampleCount(),
		"sum", model.FormatFloat(m.SampleSum()),
		"quantiles", quantiles)
}

func (r *Log) Histogram(_ *model.Family, m *model.Histogram, _ int) {
	buckets := make([]string, 0, len(m.Buckets()))
	for _, b := range m.Buckets() {
		buckets = append(buckets, b.String())
	}
	r.log(m.Type().String(),
		"name", m.Name(),
		"labels", FormatLabels(m.Labels(), "{", "}"),
		"count", m.SampleCount(),
		"sum", model.FormatFloat(m.SampleSum()),
		"buckets", buckets)
}

func (r *Log) value(m model.Metric, v float64) {
	r.log(m.Type().String(),
		"name", m.Name(),
		"labels", FormatLabels(m.Labels(), "{", "}"),
		"value", model.FormatFloat(v))
}

// Abort logs the reason the walk ended early as a warning.
func (r *Log) Abort(err error) {
	r.logger.Warn("walk aborted", "error", err, "error_code", model.ErrorCode(err))
}

func (r *Log) Finish(families, metrics int) {
	r.log("walk finished", "families", families, "metrics", metrics)
}

// Err always returns nil; log records cannot fail.
func (r *Log) Err() error {
	return nil
}
