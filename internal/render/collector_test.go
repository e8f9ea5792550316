package render

import (
	"context"
	"errors"
	"testing"

	"github.com/yndnr/promwalk/internal/core/model"
	"github.com/yndnr/promwalk/internal/core/walk"
	"github.com/yndnr/promwalk/internal/telemetry/logger"
)

func TestCollector(t *testing.T) {
	c := NewCollector()
	if c.Finished() || c.Families() != nil {
		t.Fatal("new collector should be unfinished and empty")
	}

	res := walkFixture(t, c)
	if !c.Finished() {
		t.Error("Finished() = false after the walk")
	}
	families := c.Families()
	if len(families) != res.Families {
		t.Fatalf("got %d families, want %d", len(families), res.Families)
	}
	names := []string{"http_requests_total", "rpc_seconds", "latency_seconds", "raw_value"}
	for i, f := range families {
		if f.Name() != names[i] {
			t.Errorf("family %d = %s, want %s", i, f.Name(), names[i])
		}
	}
	if c.Err() != nil {
		t.Errorf("Err() = %v", c.Err())
	}
}

func TestCollector_Reuse(t *testing.T) {
	c := NewCollector()
	walkFixture(t, c)
	walk.WalkSource(context.Background(), walk.Families(), c)
	if len(c.Families()) != 0 {
		t.Errorf("second walk should start empty, got %d families", len(c.Families()))
	}
}

func TestCollector_Abort(t *testing.T) {
	c := NewCollector()
	boom := errors.New("boom")
	calls := 0
	src := walk.SourceFunc(func() (*model.Family, error) {
		calls++
		if calls == 1 {
			return model.MustFamily("up", "", model.TypeGauge), nil
		}
		return nil, boom
	})
	walk.WalkSource(context.Background(), src, c, walk.WithLogger(logger.Nop()))

	if !errors.Is(c.Err(), boom) {
		t.Errorf("Err() = %v, want %v", c.Err(), boom)
	}
	if len(c.Families()) != 1 {
		t.Errorf("families delivered before the abort should be kept, got %d", len(c.Families()))
	}
}
