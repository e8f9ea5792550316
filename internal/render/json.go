package render

import (
	"encoding/json"
	"io"
)

// JSON renders the walk as a JSON array with one object per family:
//
//	{"name": ..., "help": ..., "type": ..., "metrics": [{"labels": {...}, "value": "1.000000"}]}
//
// Families are written as soon as they are complete.
type JSON struct {
	docs
	out      *sink
	families int
}

var _ Renderer = (*JSON)(nil)

// NewJSON returns a JSON renderer writing to w.
func NewJSON(w io.Writer) *JSON {
	r := &JSON{out: &sink{w: w}}
	r.docs = docs{out: r.out, emit: r.encode}
	return r
}

func (r *JSON) Start() {
	r.out.printf("[")
}

func (r *JSON) encode(doc *familyDoc) error {
	data, err := json.MarshalIndent(doc, "  ", "  ")
	if err != nil {
		return err
	}
	if r.families > 0 {
		r.out.printf(",")
	}
	r.families++
	r.out.printf("\n  %s", data)
	return r.out.Err()
}

func (r *JSON) Finish(int, int) {
	r.flush()
	r.out.printf("\n]\n")
}

// Err returns the first write or encoding error.
func (r *JSON) Err() error {
	return r.out.Err()
}
