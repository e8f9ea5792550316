package walk

import (
	"io"

	"github.com/yndnr/promwalk/internal/core/model"
	"github.com/yndnr/promwalk/internal/core/protoformat"
	"github.com/yndnr/promwalk/internal/core/textformat"
)

// Source yields complete families. Next returns io.EOF once the input is
// exhausted; any other error ends the walk.
type Source interface {
	Next() (*model.Family, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func() (*model.Family, error)

// Next calls fn.
func (fn SourceFunc) Next() (*model.Family, error) {
	return fn()
}

// NewSource returns the parser for format reading from r.
func NewSource(r io.Reader, format Format, opts ...Option) Source {
	o := newOptions(opts)
	return o.source(r, format)
}

// Families returns a source replaying a fixed slice of families.
func Families(families ...*model.Family) Source {
	i := 0
	return SourceFunc(func() (*model.Family, error) {
		if i >= len(families) {
			return nil, io.EOF
		}
		f := families[i]
		i++
		return f, nil
	})
}

type textSource struct {
	p *textformat.Parser
}

func (s textSource) Next() (*model.Family, error) {
	return s.p.Parse()
}

func (o *options) source(r io.Reader, format Format) Source {
	if format == FormatBinary {
		var popts []protoformat.Option
		if o.maxMessageSize > 0 {
			popts = append(popts, protoformat.WithMaxMessageSize(o.maxMessageSize))
		}
		return protoformat.NewParser(r, popts...)
	}

	var topts []textformat.Option
	if o.maxLineSize > 0 {
		topts = append(topts, textformat.WithMaxLineSize(o.maxLineSize))
	}
	return textSource{p: textformat.NewParser(r, topts...)}
}
