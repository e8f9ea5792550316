package protoformat

import (
	"math"

	dto "github.com/prometheus/client_model/go"

	"github.com/yndnr/promwalk/internal/core/model"
)

// Convert maps a decoded message onto the common model. A message whose
// metrics do not carry the payload of the declared type yields
// ErrSchemaMismatch.
func Convert(mf *dto.MetricFamily) (*model.Family, error) {
	name := mf.GetName()
	if name == "" {
		return nil, model.ErrSchemaMismatch.WithDetails("family without name")
	}

	typ, err := convertType(mf.GetType())
	if err != nil {
		return nil, err.WithDetails("family %s has unsupported type %s", name, mf.GetType())
	}

	metrics := make([]model.Metric, 0, len(mf.GetMetric()))
	for i, pm := range mf.GetMetric() {
		m, err := convertMetric(name, typ, pm)
		if err != nil {
			return nil, model.ErrSchemaMismatch.WithDetails("family %s metric %d", name, i).Wrap(err)
		}
		metrics = append(metrics, m)
	}

	f, err2 := model.NewFamily(name, mf.GetHelp(), typ, metrics...)
	if err2 != nil {
		return nil, model.ErrSchemaMismatch.Wrap(err2)
	}
	return f, nil
}

func convertType(t dto.MetricType) (model.MetricType, *model.Error) {
	switch t {
	case dto.MetricType_COUNTER:
		return model.TypeCounter, nil
	case dto.MetricType_GAUGE:
		return model.TypeGauge, nil
	case dto.MetricType_SUMMARY:
		return model.TypeSummary, nil
	case dto.MetricType_HISTOGRAM:
		return model.TypeHistogram, nil
	case dto.MetricType_UNTYPED:
		return model.TypeUntyped, nil
	default:
		return model.TypeInvalid, model.ErrSchemaMismatch
	}
}

func convertMetric(name string, typ model.MetricType, pm *dto.Metric) (model.Metric, error) {
	if pm == nil {
		return nil, model.ErrSchemaMismatch.WithDetails("nil metric")
	}
	labels, err := convertLabels(pm.GetLabel())
	if err != nil {
		return nil, err
	}

	switch typ {
	case model.TypeCounter:
		if pm.Counter == nil {
			return nil, missingPayload(typ)
		}
		return model.NewCounter(name, labels, pm.GetCounter().GetValue())

	case model.TypeGauge:
		if pm.Gauge == nil {
			return nil, missingPayload(typ)
		}
		return model.NewGauge(name, labels, pm.GetGauge().GetValue())

	case model.TypeUntyped:
		if pm.Untyped == nil {
			return nil, missingPayload(typ)
		}
		return model.NewUntyped(name, labels, pm.GetUntyped().GetValue())

	case model.TypeSummary:
		s := pm.GetSummary()
		if s == nil {
			return nil, missingPayload(typ)
		}
		quantiles := make([]model.Quantile, 0, len(s.GetQuantile()))
		for _, q := range s.GetQuantile() {
			quantiles = append(quantiles, model.Quantile{Quantile: q.GetQuantile(), Value: q.GetValue()})
		}
		return model.NewSummary(name, labels, s.GetSampleCount(), sampleSum(s.SampleSum), quantiles)

	case model.TypeHistogram:
		h := pm.GetHistogram()
		if h == nil {
			return nil, missingPayload(typ)
		}
		count := h.GetSampleCount()
		if h.SampleCountFloat != nil {
			count = floatCount(h.GetSampleCountFloat())
		}
		buckets := make([]model.Bucket, 0, len(h.GetBucket()))
		for _, b := range h.GetBucket() {
			n := b.GetCumulativeCount()
			if b.CumulativeCountFloat != nil {
				n = floatCount(b.GetCumulativeCountFloat())
			}
			buckets = append(buckets, model.Bucket{UpperBound: b.GetUpperBound(), CumulativeCount: n})
		}
		return model.NewHistogram(name, labels, count, sampleSum(h.SampleSum), buckets)
	}
	return nil, missingPayload(typ)
}

// sampleSum maps an unset sum to model.NoSum, as the text parser does.
func sampleSum(v *float64) float64 {
	if v == nil {
		return model.NoSum
	}
	return *v
}

func convertLabels(pairs []*dto.LabelPair) (model.Labels, error) {
	if len(pairs) == 0 {
		return model.Labels{}, nil
	}
	out := make([]model.Label, 0, len(pairs))
	for _, lp := range pairs {
		out = append(out, model.Label{Name: lp.GetName(), Value: lp.GetValue()})
	}
	return model.NewLabels(out...)
}

func missingPayload(typ model.MetricType) error {
	return model.ErrSchemaMismatch.WithDetails("metric has no %s payload", typ)
}

func floatCount(v float64) uint64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v >= math.MaxUint64 {
		return math.MaxUint64
	}
	return uint64(v)
}
