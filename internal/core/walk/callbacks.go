package walk

import "github.com/yndnr/promwalk/internal/core/model"

// Callbacks receives the events of one walk, in order:
//
//	Start (Family (Counter|Gauge|Summary|Histogram)*)* Finish
//
// Start and Finish are each delivered exactly once, even for empty or
// malformed input. Family indices and metric indices are zero-based and
// gap-free; metric indices restart at zero for every family. Metrics of
// UNTYPED families are counted but not delivered individually.
type Callbacks interface {
	Start()
	Family(f *model.Family, index int)
	Counter(f *model.Family, m *model.Counter, index int)
	Gauge(f *model.Family, m *model.Gauge, index int)
	Summary(f *model.Family, m *model.Summary, index int)
	Histogram(f *model.Family, m *model.Histogram, index int)
	Finish(families, metrics int)
}

// Aborter is implemented by callback sets that want to learn why a walk
// ended early. Abort is called once, immediately before Finish.
type Aborter interface {
	Abort(err error)
}

// Nop implements Callbacks with methods that do nothing. Embed it to
// implement only the events of interest.
type Nop struct{}

func (Nop) Start()                                         {}
func (Nop) Family(*model.Family, int)                      {}
func (Nop) Counter(*model.Family, *model.Counter, int)     {}
func (Nop) Gauge(*model.Family, *model.Gauge, int)         {}
func (Nop) Summary(*model.Family, *model.Summary, int)     {}
func (Nop) Histogram(*model.Family, *model.Histogram, int) {}
func (Nop) Finish(int, int)                                {}

// Tee returns a callback set that forwards every event to each of cbs in
// order. Abort is forwarded to those that implement Aborter.
func Tee(cbs ...Callbacks) Callbacks {
	return tee(cbs)
}

type tee []Callbacks

func (t tee) Start() {
	for _, cb := range t {
		cb.Start()
	}
}

func (t tee) Family(f *model.Family, index int) {
	for _, cb := range t {
		cb.Family(f, index)
	}
}

func (t tee) Counter(f *model.Family, m *model.Counter, index int) {
	for _, cb := range t {
		cb.Counter(f, m, index)
	}
}

func (t tee) Gauge(f *model.Family, m *model.Gauge, index int) {
	for _, cb := range t {
		cb.Gauge(f, m, index)
	}
}

func (t tee) Summary(f *model.Family, m *model.Summary, index int) {
	for _, cb := range t {
		cb.Summary(f, m, index)
	}
}

func (t tee) Histogram(f *model.Family, m *model.Histogram, index int) {
	for _, cb := range t {
		cb.Histogram(f, m, index)
	}
}

func (t tee) Abort(err error) {
	for _, cb := range t {
		if a, ok := cb.(Aborter); ok {
			a.Abort(err)
		}
	}
}

func (t tee) Finish(families, metrics int) {
	for _, cb := range t {
		cb.Finish(families, metrics)
	}
}
