package walk

import (
	"context"
	"errors"
	"io"

	"github.com/oklog/ulid/v2"

	"github.com/yndnr/promwalk/internal/core/model"
	"github.com/yndnr/promwalk/internal/telemetry/logger"
)

// Result summarizes a finished walk.
type Result struct {
	// WalkID identifies the walk in log records.
	WalkID string
	// Families and Metrics count what was processed before the walk ended.
	// They equal the values passed to Finish.
	Families int
	Metrics  int
	// Err is the reason the walk ended early, nil if the input was
	// consumed completely.
	Err error
}

// Aborted reports whether the walk ended before the end of input.
func (r Result) Aborted() bool {
	return r.Err != nil
}

// Option configures a walk.
type Option func(*options)

type options struct {
	logger         logger.Logger
	walkID         string
	maxLineSize    int
	maxMessageSize int64
}

// WithLogger sets the logger used to report aborted walks. Without it the
// logger carried by the context is used.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithWalkID overrides the generated walk identifier.
func WithWalkID(id string) Option {
	return func(o *options) {
		o.walkID = id
	}
}

// WithMaxLineSize bounds text exposition lines.
func WithMaxLineSize(n int) Option {
	return func(o *options) {
		o.maxLineSize = n
	}
}

// WithMaxMessageSize bounds delimited protobuf messages.
func WithMaxMessageSize(n int64) Option {
	return func(o *options) {
		o.maxMessageSize = n
	}
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.walkID == "" {
		o.walkID = ulid.Make().String()
	}
	return o
}

// Walk parses r in the given format and reports every family and metric to
// cb. Malformed input, read failures and context cancellation end the walk
// early; the families delivered up to that point stay delivered, Finish is
// still called, and the cause is returned in Result.Err. The reader is
// never closed.
func Walk(ctx context.Context, r io.Reader, format Format, cb Callbacks, opts ...Option) Result {
	o := newOptions(opts)
	return run(ctx, o.source(r, format), cb, o)
}

// WalkSource is like Walk for an already constructed source.
func WalkSource(ctx context.Context, src Source, cb Callbacks, opts ...Option) Result {
	return run(ctx, src, cb, newOptions(opts))
}

func run(ctx context.Context, src Source, cb Callbacks, o *options) Result {
	res := Result{WalkID: o.walkID}
	if o.logger != nil {
		ctx = logger.WithLogger(ctx, o.logger)
	}
	ctx = logger.WithWalkID(ctx, res.WalkID)

	cb.Start()
	for {
		if err := ctx.Err(); err != nil {
			res.Err = err
			break
		}
		f, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			res.Err = err
			break
		}
		dispatch(cb, f, res.Families)
		res.Families++
		res.Metrics += f.Len()
	}

	if res.Err != nil {
		logger.L(ctx).WithContext(ctx).Debug("walk aborted",
			"families", res.Families,
			"metrics", res.Metrics,
			"error", res.Err,
			"error_code", model.ErrorCode(res.Err),
		)
		if a, ok := cb.(Aborter); ok {
			a.Abort(res.Err)
		}
	}
	cb.Finish(res.Families, res.Metrics)
	return res
}

// dispatch delivers one family and its metrics. The family's declared type
// selects the callback; construction guarantees every metric matches it.
func dispatch(cb Callbacks, f *model.Family, index int) {
	cb.Family(f, index)

	switch f.Type() {
	case model.TypeCounter:
		for i := 0; i < f.Len(); i++ {
			cb.Counter(f, f.At(i).(*model.Counter), i)
		}
	case model.TypeGauge:
		for i := 0; i < f.Len(); i++ {
			cb.Gauge(f, f.At(i).(*model.Gauge), i)
		}
	case model.TypeSummary:
		for i := 0; i < f.Len(); i++ {
			cb.Summary(f, f.At(i).(*model.Summary), i)
		}
	case model.TypeHistogram:
		for i := 0; i < f.Len(); i++ {
			cb.Histogram(f, f.At(i).(*model.Histogram), i)
		}
	}
}
