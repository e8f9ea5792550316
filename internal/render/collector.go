package render

import (
	"github.com/yndnr/promwalk/internal/core/model"
	"github.com/yndnr/promwalk/internal/core/walk"
)

// Collector keeps the families of a walk in memory.
type Collector struct {
	families []*model.Family
	finished bool
	err      error
}

var (
	_ walk.Callbacks = (*Collector)(nil)
	_ walk.Aborter   = (*Collector)(nil)
)

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Start() {
	c.families = nil
	c.finished = false
	c.err = nil
}

func (c *Collector) Family(f *model.Family, _ int) {
	c.families = append(c.families, f)
}

func (c *Collector) Counter(*model.Family, *model.Counter, int)     {}
func (c *Collector) Gauge(*model.Family, *model.Gauge, int)         {}
func (c *Collector) Summary(*model.Family, *model.Summary, int)     {}
func (c *Collector) Histogram(*model.Family, *model.Histogram, int) {}

// Abort records the reason the walk ended early.
func (c *Collector) Abort(err error) {
	c.err = err
}

func (c *Collector) Finish(int, int) {
	c.finished = true
}

// Finished reports whether the walk has finished.
func (c *Collector) Finished() bool {
	return c.finished
}

// Families returns the collected families once the walk has finished, and
// nil before.
func (c *Collector) Families() []*model.Family {
	if !c.finished {
		return nil
	}
	return c.families
}

// Err returns the reason the walk was aborted, if it was.
func (c *Collector) Err() error {
	return c.err
}
