package model

// Family is a named, typed group of metrics sharing help text.
// Every metric in a family has the variant matching the family type.
type Family struct {
	name    string
	help    string
	typ     MetricType
	metrics []Metric
}

// NewFamily validates and creates a metric family. The metrics slice is
// copied; the family never shares it with the caller.
func NewFamily(name, help string, typ MetricType, metrics ...Metric) (*Family, error) {
	if name == "" {
		return nil, ErrInvalidFamily.WithDetails("family name must be set")
	}
	if !typ.Valid() {
		return nil, ErrInvalidFamily.WithDetails("family %q has invalid type %s", name, typ)
	}

	ms := make([]Metric, len(metrics))
	for i, m := range metrics {
		if m == nil {
			return nil, ErrInvalidFamily.WithDetails("family %q: metric %d is nil", name, i)
		}
		if m.Type() != typ {
			return nil, ErrInvalidFamily.WithDetails(
				"family %q is of type %s, but metric %d is of type %s", name, typ, i, m.Type())
		}
		if m.Name() != name {
			return nil, ErrInvalidFamily.WithDetails(
				"family %q: metric %d is named %q", name, i, m.Name())
		}
		ms[i] = m
	}

	return &Family{name: name, help: help, typ: typ, metrics: ms}, nil
}

// MustFamily is like NewFamily but panics if the family is invalid.
func MustFamily(name, help string, typ MetricType, metrics ...Metric) *Family {
	f, err := NewFamily(name, help, typ, metrics...)
	if err != nil {
		panic(err)
	}
	return f
}

// Name returns the family name.
func (f *Family) Name() string { return f.name }

// Help returns the help text, empty if none was given.
func (f *Family) Help() string { return f.help }

// Type returns the declared family type.
func (f *Family) Type() MetricType { return f.typ }

// Len returns the number of metrics in the family.
func (f *Family) Len() int { return len(f.metrics) }

// Metrics returns a copy of the metrics in stream order.
func (f *Family) Metrics() []Metric {
	out := make([]Metric, len(f.metrics))
	copy(out, f.metrics)
	return out
}

// At returns the i-th metric.
func (f *Family) At(i int) Metric { return f.metrics[i] }
