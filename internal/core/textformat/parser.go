package textformat

import (
	"bufio"
	"errors"
	"io"

	"github.com/yndnr/promwalk/internal/core/model"
)

// DefaultMaxLineSize bounds a single exposition line.
const DefaultMaxLineSize = 1 << 20

type state int

const (
	stateBetween state = iota
	stateInFamily
	stateAtEnd
)

// Option configures a Parser.
type Option func(*Parser)

// WithMaxLineSize overrides DefaultMaxLineSize. Values <= 0 are ignored.
func WithMaxLineSize(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxLine = n
		}
	}
}

// Parser turns text exposition into a lazy sequence of families. It holds
// at most one family in progress plus one look-ahead line.
//
// A Parser is not safe for concurrent use.
type Parser struct {
	scanner *bufio.Scanner
	maxLine int
	lineNo  int
	state   state
	pending *line
	err     error
}

// NewParser returns a parser reading from r.
func NewParser(r io.Reader, opts ...Option) *Parser {
	p := &Parser{maxLine: DefaultMaxLineSize}
	for _, opt := range opts {
		opt(p)
	}
	p.scanner = bufio.NewScanner(r)
	p.scanner.Buffer(make([]byte, 0, min(64*1024, p.maxLine)), p.maxLine)
	return p
}

// Parse returns the next complete family. It returns io.EOF once the input
// is exhausted. Any other error is final: subsequent calls return it again.
func (p *Parser) Parse() (*model.Family, error) {
	if p.state == stateAtEnd {
		if p.err != nil {
			return nil, p.err
		}
		return nil, io.EOF
	}

	var b *familyBuilder
	for {
		ln, err := p.next()
		if err != nil {
			if p.state == stateInFamily {
				// The family read so far is complete; the error is reported
				// on the next call.
				p.state = stateAtEnd
				p.err = err
				return b.build(), nil
			}
			return nil, p.fail(err)
		}
		if ln == nil {
			if p.state == stateInFamily {
				p.state = stateAtEnd
				return b.build(), nil
			}
			p.state = stateAtEnd
			return nil, io.EOF
		}
		if ln.kind == kindIgnored {
			continue
		}

		switch p.state {
		case stateBetween:
			if ln.kind == kindInvalid {
				return nil, p.fail(ln.err)
			}
			b = newFamilyBuilder(ln.name)
			p.state = stateInFamily

		case stateInFamily:
			if b.endsBefore(ln) {
				p.unread(ln)
				p.state = stateBetween
				return b.build(), nil
			}
			if ln.kind == kindInvalid {
				return nil, p.fail(ln.err)
			}
		}

		switch ln.kind {
		case kindHelp, kindType:
			b.declare(ln)
		case kindSample:
			if err := b.add(ln); err != nil {
				return nil, p.fail(atLine(err, ln.no))
			}
		}
	}
}

// next returns the look-ahead line if any, otherwise reads one. It returns
// nil at end of input.
func (p *Parser) next() (*line, error) {
	if p.pending != nil {
		ln := p.pending
		p.pending = nil
		return ln, nil
	}
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			if errors.Is(err, bufio.ErrTooLong) {
				return nil, model.ErrFormat.WithDetails("line exceeds %d bytes", p.maxLine).AtLine(p.lineNo + 1)
			}
			return nil, model.ErrStream.Wrap(err)
		}
		return nil, nil
	}
	p.lineNo++
	return lexLine(p.scanner.Text(), p.lineNo), nil
}

func (p *Parser) unread(ln *line) {
	p.pending = ln
}

func (p *Parser) fail(err error) error {
	p.state = stateAtEnd
	p.err = err
	return err
}

func atLine(err error, no int) error {
	var e *model.Error
	if errors.As(err, &e) && e.Line == 0 {
		return e.AtLine(no)
	}
	return err
}
