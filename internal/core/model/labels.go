package model

import (
	"iter"
	"strings"
)

// Label is a single name/value pair.
type Label struct {
	Name  string
	Value string
}

// Labels is an immutable, insertion-ordered set of labels with unique names.
// The zero value is an empty label set.
type Labels struct {
	pairs []Label
}

// NewLabels builds a label set from pairs, preserving their order.
// Empty or duplicated names are rejected.
func NewLabels(pairs ...Label) (Labels, error) {
	if len(pairs) == 0 {
		return Labels{}, nil
	}

	out := make([]Label, 0, len(pairs))
	for i, p := range pairs {
		if p.Name == "" {
			return Labels{}, ErrInvalidLabels.WithDetails("label %d has an empty name", i)
		}
		for _, seen := range out {
			if seen.Name == p.Name {
				return Labels{}, ErrInvalidLabels.WithDetails("duplicate label %q", p.Name)
			}
		}
		out = append(out, p)
	}
	return Labels{pairs: out}, nil
}

// MustLabels is like NewLabels but panics on invalid input.
func MustLabels(pairs ...Label) Labels {
	l, err := NewLabels(pairs...)
	if err != nil {
		panic(err)
	}
	return l
}

// FromStrings builds a label set from alternating name, value arguments.
func FromStrings(nv ...string) Labels {
	if len(nv)%2 != 0 {
		panic("model: FromStrings requires an even number of arguments")
	}
	pairs := make([]Label, 0, len(nv)/2)
	for i := 0; i < len(nv); i += 2 {
		pairs = append(pairs, Label{Name: nv[i], Value: nv[i+1]})
	}
	return MustLabels(pairs...)
}

// Len returns the number of labels.
func (l Labels) Len() int {
	return len(l.pairs)
}

// Get returns the value of the named label.
func (l Labels) Get(name string) (string, bool) {
	for _, p := range l.pairs {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// Has reports whether the named label is present.
func (l Labels) Has(name string) bool {
	_, ok := l.Get(name)
	return ok
}

// Without returns a copy of the label set with the named label removed.
// The receiver is left untouched.
func (l Labels) Without(name string) Labels {
	if !l.Has(name) {
		return l
	}
	out := make([]Label, 0, len(l.pairs)-1)
	for _, p := range l.pairs {
		if p.Name != name {
			out = append(out, p)
		}
	}
	return Labels{pairs: out}
}

// All iterates over the labels in insertion order.
func (l Labels) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, p := range l.pairs {
			if !yield(p.Name, p.Value) {
				return
			}
		}
	}
}

// Pairs returns a copy of the labels in insertion order.
func (l Labels) Pairs() []Label {
	out := make([]Label, len(l.pairs))
	copy(out, l.pairs)
	return out
}

// Map returns the labels as an unordered map.
func (l Labels) Map() map[string]string {
	m := make(map[string]string, len(l.pairs))
	for _, p := range l.pairs {
		m[p.Name] = p.Value
	}
	return m
}

// Equal reports whether both label sets hold the same pairs in the same order.
func (l Labels) Equal(o Labels) bool {
	if len(l.pairs) != len(o.pairs) {
		return false
	}
	for i := range l.pairs {
		if l.pairs[i] != o.pairs[i] {
			return false
		}
	}
	return true
}

// String returns the labels as "name1=value1,name2=value2".
func (l Labels) String() string {
	var sb strings.Builder
	for i, p := range l.pairs {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(p.Name)
		sb.WriteByte('=')
		sb.WriteString(p.Value)
	}
	return sb.String()
}
