package protoformat

import (
	"bufio"
	"errors"
	"io"

	dto "github.com/prometheus/client_model/go"
	"google.golang.org/protobuf/encoding/protodelim"

	"github.com/yndnr/promwalk/internal/core/model"
)

// DefaultMaxMessageSize bounds a single encoded family.
const DefaultMaxMessageSize = 16 << 20

// Option configures a Parser.
type Option func(*Parser)

// WithMaxMessageSize overrides DefaultMaxMessageSize. Values <= 0 are ignored.
func WithMaxMessageSize(n int64) Option {
	return func(p *Parser) {
		if n > 0 {
			p.opts.MaxSize = n
		}
	}
}

// Parser decodes a stream of varint length-delimited MetricFamily messages.
//
// A Parser is not safe for concurrent use.
type Parser struct {
	r    *sourceReader
	opts protodelim.UnmarshalOptions
	err  error
}

// NewParser returns a parser reading from r.
func NewParser(r io.Reader, opts ...Option) *Parser {
	p := &Parser{
		r:    &sourceReader{br: bufio.NewReader(r)},
		opts: protodelim.UnmarshalOptions{MaxSize: DefaultMaxMessageSize},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse returns the next decoded message. It returns io.EOF when the stream
// ends on a message boundary. Any other error is final.
func (p *Parser) Parse() (*dto.MetricFamily, error) {
	if p.err != nil {
		return nil, p.err
	}

	mf := &dto.MetricFamily{}
	err := p.opts.UnmarshalFrom(p.r, mf)
	switch {
	case err == nil:
		return mf, nil
	case p.r.err != nil:
		p.err = model.ErrStream.Wrap(p.r.err)
	case errors.Is(err, io.EOF):
		p.err = io.EOF
	default:
		p.err = model.ErrDecode.Wrap(err)
	}
	return nil, p.err
}

// Next decodes and converts the next family.
func (p *Parser) Next() (*model.Family, error) {
	mf, err := p.Parse()
	if err != nil {
		return nil, err
	}
	f, err := Convert(mf)
	if err != nil {
		p.err = err
		return nil, err
	}
	return f, nil
}

// sourceReader remembers the first failure of the underlying reader so it
// can be told apart from malformed framing.
type sourceReader struct {
	br  *bufio.Reader
	err error
}

func (s *sourceReader) Read(b []byte) (int, error) {
	n, err := s.br.Read(b)
	s.record(err)
	return n, err
}

func (s *sourceReader) ReadByte() (byte, error) {
	c, err := s.br.ReadByte()
	s.record(err)
	return c, err
}

func (s *sourceReader) record(err error) {
	if err != nil && !errors.Is(err, io.EOF) && s.err == nil {
		s.err = err
	}
}
