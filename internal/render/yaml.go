package render

import (
	"io"

	"go.yaml.in/yaml/v3"
)

// YAML renders the walk as a stream of YAML documents, one per family.
type YAML struct {
	docs
	out *sink
	enc *yaml.Encoder
}

var _ Renderer = (*YAML)(nil)

// NewYAML returns a YAML renderer writing to w.
func NewYAML(w io.Writer) *YAML {
	r := &YAML{out: &sink{w: w}}
	r.enc = yaml.NewEncoder(r.out)
	r.enc.SetIndent(2)
	r.docs = docs{out: r.out, emit: func(doc *familyDoc) error { return r.enc.Encode(doc) }}
	return r
}

func (r *YAML) Start() {}

func (r *YAML) Finish(int, int) {
	r.flush()
	r.out.fail(r.enc.Close())
}

// Err returns the first write or encoding error.
func (r *YAML) Err() error {
	return r.out.Err()
}
