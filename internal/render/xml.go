package render

import (
	"encoding/xml"
	"io"
)

// XML renders the walk as a <metricFamilies> document. Labels are written
// as "name=value,..." text, quantiles and buckets as "key:value" elements.
type XML struct {
	docs
	out *sink
	enc *xml.Encoder
	url string
}

var _ Renderer = (*XML)(nil)

var rootElement = xml.StartElement{Name: xml.Name{Local: "metricFamilies"}}

// NewXML returns an XML renderer writing to w. A non-empty url is written
// as the <url> element.
func NewXML(w io.Writer, url string) *XML {
	r := &XML{out: &sink{w: w}, url: url}
	r.enc = xml.NewEncoder(r.out)
	r.enc.Indent("", "  ")
	r.docs = docs{out: r.out, emit: func(doc *familyDoc) error { return r.enc.Encode(doc) }}
	return r
}

func (r *XML) Start() {
	r.out.fail(r.enc.EncodeToken(rootElement))
	if r.url != "" {
		r.out.fail(r.enc.EncodeElement(r.url, xml.StartElement{Name: xml.Name{Local: "url"}}))
	}
}

func (r *XML) Finish(int, int) {
	r.flush()
	if r.out.err != nil {
		return
	}
	r.out.fail(r.enc.EncodeToken(rootElement.End()))
	r.out.fail(r.enc.Flush())
	r.out.printf("\n")
}

// Err returns the first write or encoding error.
func (r *XML) Err() error {
	return r.out.Err()
}
