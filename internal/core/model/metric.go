package model

import (
	"fmt"
	"math"
	"strings"
)

// MetricType is the declared type of a metric family.
type MetricType int

const (
	// TypeInvalid is the zero value and never a valid family type.
	TypeInvalid MetricType = iota
	TypeCounter
	TypeGauge
	TypeSummary
	TypeHistogram
	TypeUntyped
)

var metricTypeNames = map[MetricType]string{
	TypeCounter:   "COUNTER",
	TypeGauge:     "GAUGE",
	TypeSummary:   "SUMMARY",
	TypeHistogram: "HISTOGRAM",
	TypeUntyped:   "UNTYPED",
}

// String returns the upper-case type name, e.g. "COUNTER".
func (t MetricType) String() string {
	if name, ok := metricTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("MetricType(%d)", int(t))
}

// Valid reports whether t is one of the five family types.
func (t MetricType) Valid() bool {
	_, ok := metricTypeNames[t]
	return ok
}

// ParseMetricType parses a type name case-insensitively.
func ParseMetricType(s string) (MetricType, bool) {
	for t, name := range metricTypeNames {
		if strings.EqualFold(s, name) {
			return t, true
		}
	}
	return TypeInvalid, false
}

// Metric is one of Counter, Gauge, Untyped, Summary or Histogram.
// The set is closed; it cannot be implemented outside this package.
type Metric interface {
	Name() string
	Labels() Labels
	Type() MetricType

	sealed()
}

// metricBase holds the attributes every metric has.
type metricBase struct {
	name   string
	labels Labels
}

func newMetricBase(name string, labels Labels) (metricBase, error) {
	if name == "" {
		return metricBase{}, ErrInvalidMetric.WithDetails("metric name must be set")
	}
	return metricBase{name: name, labels: labels}, nil
}

func (b metricBase) Name() string   { return b.name }
func (b metricBase) Labels() Labels { return b.labels }
func (metricBase) sealed()          {}

// Counter is a single monotonically increasing value.
type Counter struct {
	metricBase
	value float64
}

// NewCounter creates a counter metric.
func NewCounter(name string, labels Labels, value float64) (*Counter, error) {
	b, err := newMetricBase(name, labels)
	if err != nil {
		return nil, err
	}
	return &Counter{metricBase: b, value: value}, nil
}

// Value returns the counter value.
func (m *Counter) Value() float64 { return m.value }

// Type returns TypeCounter.
func (m *Counter) Type() MetricType { return TypeCounter }

// Gauge is a single value that can go up and down.
type Gauge struct {
	metricBase
	value float64
}

// NewGauge creates a gauge metric.
func NewGauge(name string, labels Labels, value float64) (*Gauge, error) {
	b, err := newMetricBase(name, labels)
	if err != nil {
		return nil, err
	}
	return &Gauge{metricBase: b, value: value}, nil
}

// Value returns the gauge value.
func (m *Gauge) Value() float64 { return m.value }

// Type returns TypeGauge.
func (m *Gauge) Type() MetricType { return TypeGauge }

// Untyped is a single value of unknown semantics.
type Untyped struct {
	metricBase
	value float64
}

// NewUntyped creates an untyped metric.
func NewUntyped(name string, labels Labels, value float64) (*Untyped, error) {
	b, err := newMetricBase(name, labels)
	if err != nil {
		return nil, err
	}
	return &Untyped{metricBase: b, value: value}, nil
}

// Value returns the metric value.
func (m *Untyped) Value() float64 { return m.value }

// Type returns TypeUntyped.
func (m *Untyped) Type() MetricType { return TypeUntyped }

// QuantileLabel is the structural label of summary quantile samples.
const QuantileLabel = "quantile"

// BucketLabel is the structural label of histogram bucket samples.
const BucketLabel = "le"

// Quantile is a (rank, value) pair of a summary.
type Quantile struct {
	Quantile float64
	Value    float64
}

// String returns "quantile:value".
func (q Quantile) String() string {
	return FormatFloat(q.Quantile) + ":" + FormatFloat(q.Value)
}

// Summary holds a sample count, a sample sum and quantile estimations.
type Summary struct {
	metricBase
	sampleCount uint64
	sampleSum   float64
	quantiles   []Quantile
}

// NewSummary creates a summary metric. A "quantile" label, if present, is
// removed from the stored label set; the caller's labels are not modified.
func NewSummary(name string, labels Labels, sampleCount uint64, sampleSum float64, quantiles []Quantile) (*Summary, error) {
	b, err := newMetricBase(name, labels.Without(QuantileLabel))
	if err != nil {
		return nil, err
	}
	qs := make([]Quantile, len(quantiles))
	copy(qs, quantiles)
	return &Summary{metricBase: b, sampleCount: sampleCount, sampleSum: sampleSum, quantiles: qs}, nil
}

// SampleCount returns the number of observations.
func (m *Summary) SampleCount() uint64 { return m.sampleCount }

// SampleSum returns the sum of observations. It is NaN when the source did
// not carry a sum.
func (m *Summary) SampleSum() float64 { return m.sampleSum }

// Quantiles returns a copy of the quantiles in source order.
func (m *Summary) Quantiles() []Quantile {
	out := make([]Quantile, len(m.quantiles))
	copy(out, m.quantiles)
	return out
}

// Type returns TypeSummary.
func (m *Summary) Type() MetricType { return TypeSummary }

// Bucket is an (upper bound, cumulative count) pair of a histogram.
type Bucket struct {
	UpperBound      float64
	CumulativeCount uint64
}

// String returns "upperBound:count".
func (b Bucket) String() string {
	return FormatFloat(b.UpperBound) + ":" + fmt.Sprintf("%d", b.CumulativeCount)
}

// Histogram holds a sample count, a sample sum and cumulative buckets.
type Histogram struct {
	metricBase
	sampleCount uint64
	sampleSum   float64
	buckets     []Bucket
}

// NewHistogram creates a histogram metric.
func NewHistogram(name string, labels Labels, sampleCount uint64, sampleSum float64, buckets []Bucket) (*Histogram, error) {
	b, err := newMetricBase(name, labels)
	if err != nil {
		return nil, err
	}
	bs := make([]Bucket, len(buckets))
	copy(bs, buckets)
	return &Histogram{metricBase: b, sampleCount: sampleCount, sampleSum: sampleSum, buckets: bs}, nil
}

// SampleCount returns the number of observations.
func (m *Histogram) SampleCount() uint64 { return m.sampleCount }

// SampleSum returns the sum of observations. It is NaN when the source did
// not carry a sum.
func (m *Histogram) SampleSum() float64 { return m.sampleSum }

// Buckets returns a copy of the buckets in source order.
func (m *Histogram) Buckets() []Bucket {
	out := make([]Bucket, len(m.buckets))
	copy(out, m.buckets)
	return out
}

// Type returns TypeHistogram.
func (m *Histogram) Type() MetricType { return TypeHistogram }

// NoSum is the sample sum of summaries and histograms that carry none.
var NoSum = math.NaN()
