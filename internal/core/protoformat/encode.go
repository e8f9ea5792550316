package protoformat

import (
	dto "github.com/prometheus/client_model/go"
	"google.golang.org/protobuf/proto"

	"github.com/yndnr/promwalk/internal/core/model"
)

// FromFamily maps a model family back onto the wire message. It is the
// inverse of Convert.
func FromFamily(f *model.Family) *dto.MetricFamily {
	mf := Header(f)
	for _, m := range f.Metrics() {
		mf.Metric = append(mf.Metric, FromMetric(m))
	}
	return mf
}

// Header returns a message carrying the name, help and type of f but no
// metrics. An empty help string is left unset.
func Header(f *model.Family) *dto.MetricFamily {
	mf := &dto.MetricFamily{
		Name: proto.String(f.Name()),
		Type: protoType(f.Type()).Enum(),
	}
	if f.Help() != "" {
		mf.Help = proto.String(f.Help())
	}
	return mf
}

// FromMetric maps one metric onto the wire message.
func FromMetric(m model.Metric) *dto.Metric {
	pm := &dto.Metric{}
	for name, value := range m.Labels().All() {
		pm.Label = append(pm.Label, &dto.LabelPair{
			Name:  proto.String(name),
			Value: proto.String(value),
		})
	}

	switch m := m.(type) {
	case *model.Counter:
		pm.Counter = &dto.Counter{Value: proto.Float64(m.Value())}
	case *model.Gauge:
		pm.Gauge = &dto.Gauge{Value: proto.Float64(m.Value())}
	case *model.Untyped:
		pm.Untyped = &dto.Untyped{Value: proto.Float64(m.Value())}
	case *model.Summary:
		s := &dto.Summary{
			SampleCount: proto.Uint64(m.SampleCount()),
			SampleSum:   proto.Float64(m.SampleSum()),
		}
		for _, q := range m.Quantiles() {
			s.Quantile = append(s.Quantile, &dto.Quantile{
				Quantile: proto.Float64(q.Quantile),
				Value:    proto.Float64(q.Value),
			})
		}
		pm.Summary = s
	case *model.Histogram:
		h := &dto.Histogram{
			SampleCount: proto.Uint64(m.SampleCount()),
			SampleSum:   proto.Float64(m.SampleSum()),
		}
		for _, b := range m.Buckets() {
			h.Bucket = append(h.Bucket, &dto.Bucket{
				UpperBound:      proto.Float64(b.UpperBound),
				CumulativeCount: proto.Uint64(b.CumulativeCount),
			})
		}
		pm.Histogram = h
	}
	return pm
}

func protoType(t model.MetricType) dto.MetricType {
	switch t {
	case model.TypeCounter:
		return dto.MetricType_COUNTER
	case model.TypeGauge:
		return dto.MetricType_GAUGE
	case model.TypeSummary:
		return dto.MetricType_SUMMARY
	case model.TypeHistogram:
		return dto.MetricType_HISTOGRAM
	default:
		return dto.MetricType_UNTYPED
	}
}
