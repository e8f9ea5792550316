package textformat

import (
	"math"
	"strings"

	"github.com/spaolacci/murmur3"

	"github.com/yndnr/promwalk/internal/core/model"
)

const (
	suffixSum    = "_sum"
	suffixCount  = "_count"
	suffixBucket = "_bucket"
)

// familyBuilder accumulates the lines of one family until it is complete.
type familyBuilder struct {
	name     string
	help     string
	typ      model.MetricType
	hasHelp  bool
	hasType  bool
	samples  int
	simple   []model.Metric
	groups   map[uint64][]*group
	ordering []*group
}

// group is one summary or histogram metric in the making, identified by
// its label set without the structural quantile/le label.
type group struct {
	labels    model.Labels
	count     uint64
	sum       float64
	quantiles []model.Quantile
	buckets   []model.Bucket
}

func newFamilyBuilder(name string) *familyBuilder {
	return &familyBuilder{
		name:   name,
		typ:    model.TypeUntyped,
		groups: make(map[uint64][]*group),
	}
}

// accepts reports whether a HELP or TYPE line completes this family's
// metadata rather than starting a new family.
func (b *familyBuilder) accepts(ln *line) bool {
	if ln.name != b.name || b.samples > 0 {
		return false
	}
	switch ln.kind {
	case kindHelp:
		return !b.hasHelp
	case kindType:
		return !b.hasType
	}
	return false
}

func (b *familyBuilder) declare(ln *line) {
	switch ln.kind {
	case kindHelp:
		b.help = ln.help
		b.hasHelp = true
	case kindType:
		b.typ = ln.typ
		b.hasType = true
	}
}

// owns reports whether a sample belongs to this family.
func (b *familyBuilder) owns(ln *line) bool {
	switch b.typ {
	case model.TypeSummary:
		return ln.name == b.name || ln.name == b.name+suffixSum || ln.name == b.name+suffixCount
	case model.TypeHistogram:
		return ln.name == b.name || ln.name == b.name+suffixBucket ||
			ln.name == b.name+suffixSum || ln.name == b.name+suffixCount
	default:
		return ln.name == b.name
	}
}

// endsBefore reports whether ln starts something other than this family.
// A malformed line counts only when its metric name was readable and that
// name would not have continued the family.
func (b *familyBuilder) endsBefore(ln *line) bool {
	switch ln.kind {
	case kindHelp, kindType:
		return !b.accepts(ln)
	case kindSample:
		return !b.owns(ln)
	case kindInvalid:
		if ln.name == "" {
			return false
		}
		return b.endsBefore(&line{kind: ln.from, name: ln.name})
	}
	return false
}

// add merges one sample into the family.
func (b *familyBuilder) add(ln *line) error {
	b.samples++

	switch b.typ {
	case model.TypeSummary:
		return b.addSummarySample(ln)
	case model.TypeHistogram:
		return b.addHistogramSample(ln)
	}

	v, err := model.ParseFloat(ln.value)
	if err != nil {
		return err
	}
	var m model.Metric
	switch b.typ {
	case model.TypeCounter:
		m = must(model.NewCounter(b.name, ln.labels, v))
	case model.TypeGauge:
		m = must(model.NewGauge(b.name, ln.labels, v))
	default:
		m = must(model.NewUntyped(b.name, ln.labels, v))
	}
	b.simple = append(b.simple, m)
	return nil
}

func (b *familyBuilder) addSummarySample(ln *line) error {
	switch ln.name {
	case b.name + suffixSum:
		return b.setSum(ln)
	case b.name + suffixCount:
		return b.setCount(ln)
	}

	rank, ok := ln.labels.Get(model.QuantileLabel)
	if !ok {
		return model.ErrFormat.WithDetails("summary sample %s without %q label", ln.name, model.QuantileLabel)
	}
	q, err := model.ParseFloat(rank)
	if err != nil {
		return err
	}
	v, err := model.ParseFloat(ln.value)
	if err != nil {
		return err
	}
	g := b.group(ln.labels.Without(model.QuantileLabel))
	g.quantiles = append(g.quantiles, model.Quantile{Quantile: q, Value: v})
	return nil
}

func (b *familyBuilder) addHistogramSample(ln *line) error {
	switch ln.name {
	case b.name + suffixSum:
		return b.setSum(ln)
	case b.name + suffixCount:
		return b.setCount(ln)
	case b.name:
		return model.ErrFormat.WithDetails("histogram sample %s must use the %s suffix", ln.name, suffixBucket)
	}

	bound, ok := ln.labels.Get(model.BucketLabel)
	if !ok {
		return model.ErrFormat.WithDetails("histogram sample %s without %q label", ln.name, model.BucketLabel)
	}
	ub, err := model.ParseFloat(bound)
	if err != nil {
		return err
	}
	n, err := model.ParseCount(ln.value)
	if err != nil {
		return err
	}
	g := b.group(ln.labels.Without(model.BucketLabel))
	g.buckets = append(g.buckets, model.Bucket{UpperBound: ub, CumulativeCount: n})
	return nil
}

func (b *familyBuilder) setSum(ln *line) error {
	v, err := model.ParseFloat(ln.value)
	if err != nil {
		return err
	}
	b.group(ln.labels).sum = v
	return nil
}

func (b *familyBuilder) setCount(ln *line) error {
	n, err := model.ParseCount(ln.value)
	if err != nil {
		return err
	}
	b.group(ln.labels).count = n
	return nil
}

// group returns the group for labels, creating it on first sight.
func (b *familyBuilder) group(labels model.Labels) *group {
	h := hashLabels(labels)
	for _, g := range b.groups[h] {
		if g.labels.Equal(labels) {
			return g
		}
	}
	g := &group{labels: labels, sum: math.NaN()}
	b.groups[h] = append(b.groups[h], g)
	b.ordering = append(b.ordering, g)
	return g
}

// build assembles the family. Groups keep first-appearance order.
func (b *familyBuilder) build() *model.Family {
	metrics := b.simple
	switch b.typ {
	case model.TypeSummary:
		for _, g := range b.ordering {
			metrics = append(metrics, must(model.NewSummary(b.name, g.labels, g.count, g.sum, g.quantiles)))
		}
	case model.TypeHistogram:
		for _, g := range b.ordering {
			metrics = append(metrics, must(model.NewHistogram(b.name, g.labels, g.count, g.sum, g.buckets)))
		}
	}
	return model.MustFamily(b.name, b.help, b.typ, metrics...)
}

// hashLabels hashes the ordered label pairs. Label names and values cannot
// contain 0xff in valid UTF-8, so it is a safe separator.
func hashLabels(labels model.Labels) uint64 {
	var sb strings.Builder
	for name, value := range labels.All() {
		sb.WriteString(name)
		sb.WriteByte(0xff)
		sb.WriteString(value)
		sb.WriteByte(0xff)
	}
	return murmur3.Sum64([]byte(sb.String()))
}

// must panics on construction errors. The parser only builds metrics and
// families that satisfy the model invariants, so an error here is a bug.
func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
