package render

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"strconv"

	"go.yaml.in/yaml/v3"

	"github.com/yndnr/promwalk/internal/core/model"
)

// familyDoc is the structured form of a family shared by the JSON, YAML and
// XML renderers. Numbers are rendered as strings with model.FormatFloat.
type familyDoc struct {
	XMLName xml.Name    `json:"-" yaml:"-" xml:"metricFamily"`
	Name    string      `json:"name" yaml:"name" xml:"name"`
	Help    string      `json:"help" yaml:"help" xml:"help"`
	Type    string      `json:"type" yaml:"type" xml:"type"`
	Metrics []metricDoc `json:"metrics" yaml:"metrics" xml:"metric"`
}

type metricDoc struct {
	Name      string    `json:"-" yaml:"-" xml:"name"`
	Type      string    `json:"-" yaml:"-" xml:"type"`
	Labels    labelDoc  `json:"labels,omitzero" yaml:"labels,omitempty" xml:"labels"`
	Value     string    `json:"value,omitempty" yaml:"value,omitempty" xml:"value,omitempty"`
	Count     string    `json:"count,omitempty" yaml:"count,omitempty" xml:"count,omitempty"`
	Sum       string    `json:"sum,omitempty" yaml:"sum,omitempty" xml:"sum,omitempty"`
	Quantiles *pairsDoc `json:"quantiles,omitempty" yaml:"quantiles,omitempty" xml:"quantiles,omitempty"`
	Buckets   *pairsDoc `json:"buckets,omitempty" yaml:"buckets,omitempty" xml:"buckets,omitempty"`
}

func newFamilyDoc(f *model.Family) *familyDoc {
	return &familyDoc{
		Name:    f.Name(),
		Help:    f.Help(),
		Type:    f.Type().String(),
		Metrics: []metricDoc{},
	}
}

func valueDoc(f *model.Family, typ model.MetricType, labels model.Labels, v float64) metricDoc {
	return metricDoc{
		Name:   f.Name(),
		Type:   typ.String(),
		Labels: labelDoc{labels},
		Value:  model.FormatFloat(v),
	}
}

func summaryDoc(f *model.Family, m *model.Summary) metricDoc {
	d := metricDoc{
		Name:   f.Name(),
		Type:   model.TypeSummary.String(),
		Labels: labelDoc{m.Labels()},
		Count:  strconv.FormatUint(m.SampleCount(), 10),
		Sum:    model.FormatFloat(m.SampleSum()),
	}
	if qs := m.Quantiles(); len(qs) > 0 {
		d.Quantiles = &pairsDoc{elem: "quantile"}
		for _, q := range qs {
			d.Quantiles.pairs = append(d.Quantiles.pairs,
				[2]string{model.FormatFloat(q.Quantile), model.FormatFloat(q.Value)})
		}
	}
	return d
}

func histogramDoc(f *model.Family, m *model.Histogram) metricDoc {
	d := metricDoc{
		Name:   f.Name(),
		Type:   model.TypeHistogram.String(),
		Labels: labelDoc{m.Labels()},
		Count:  strconv.FormatUint(m.SampleCount(), 10),
		Sum:    model.FormatFloat(m.SampleSum()),
	}
	if bs := m.Buckets(); len(bs) > 0 {
		d.Buckets = &pairsDoc{elem: "bucket"}
		for _, b := range bs {
			d.Buckets.pairs = append(d.Buckets.pairs,
				[2]string{model.FormatFloat(b.UpperBound), strconv.FormatUint(b.CumulativeCount, 10)})
		}
	}
	return d
}

// labelDoc keeps label order in JSON and YAML objects and renders as
// "name=value,..." text in XML.
type labelDoc struct {
	model.Labels
}

func (l labelDoc) IsZero() bool {
	return l.Len() == 0
}

func (l labelDoc) MarshalJSON() ([]byte, error) {
	var pairs [][2]string
	for name, value := range l.All() {
		pairs = append(pairs, [2]string{name, value})
	}
	return orderedJSON(pairs)
}

func (l labelDoc) MarshalYAML() (any, error) {
	var pairs [][2]string
	for name, value := range l.All() {
		pairs = append(pairs, [2]string{name, value})
	}
	return orderedYAML(pairs), nil
}

func (l labelDoc) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	return e.EncodeElement(FormatLabels(l.Labels, "", ""), start)
}

// pairsDoc is an ordered key/value list. In XML every pair becomes an
// element named elem holding "key:value".
type pairsDoc struct {
	elem  string
	pairs [][2]string
}

func (p *pairsDoc) MarshalJSON() ([]byte, error) {
	return orderedJSON(p.pairs)
}

func (p *pairsDoc) MarshalYAML() (any, error) {
	return orderedYAML(p.pairs), nil
}

func (p *pairsDoc) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, kv := range p.pairs {
		if err := e.EncodeElement(kv[0]+":"+kv[1], xml.StartElement{Name: xml.Name{Local: p.elem}}); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

func orderedJSON(pairs [][2]string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kv := range pairs {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(kv[0])
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(kv[1])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func orderedYAML(pairs [][2]string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, kv := range pairs {
		n.Content = append(n.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: kv[0]},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: kv[1]},
		)
	}
	return n
}

// docs turns metric events into family documents and hands each finished
// family to emit.
type docs struct {
	out  *sink
	emit func(*familyDoc) error
	cur  *familyDoc
}

func (d *docs) Family(f *model.Family, _ int) {
	d.flush()
	d.cur = newFamilyDoc(f)
	if f.Type() == model.TypeUntyped {
		// Untyped metrics are not delivered one by one.
		for _, m := range f.Metrics() {
			u := m.(*model.Untyped)
			d.cur.Metrics = append(d.cur.Metrics, valueDoc(f, model.TypeUntyped, u.Labels(), u.Value()))
		}
	}
}

func (d *docs) Counter(f *model.Family, m *model.Counter, _ int) {
	d.add(valueDoc(f, model.TypeCounter, m.Labels(), m.Value()))
}

func (d *docs) Gauge(f *model.Family, m *model.Gauge, _ int) {
	d.add(valueDoc(f, model.TypeGauge, m.Labels(), m.Value()))
}

func (d *docs) Summary(f *model.Family, m *model.Summary, _ int) {
	d.add(summaryDoc(f, m))
}

func (d *docs) Histogram(f *model.Family, m *model.Histogram, _ int) {
	d.add(histogramDoc(f, m))
}

func (d *docs) add(m metricDoc) {
	if d.cur != nil {
		d.cur.Metrics = append(d.cur.Metrics, m)
	}
}

func (d *docs) flush() {
	if d.cur == nil {
		return
	}
	if d.out.err == nil {
		d.out.fail(d.emit(d.cur))
	}
	d.cur = nil
}
