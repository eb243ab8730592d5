package ui

import (
	"io"
	"log/slog"
	"testing"

	"faultmap/pkg/heightmap/faultfractal"
)

func newControls(t *testing.T) (*faultfractal.Generator, map[string]*controlState) {
	t.Helper()
	gen, err := faultfractal.NewWithLogger(faultfractal.Config{Size: 8, Iterations: 4, MinDelta: 2, MaxDelta: 3, Filter: 0.9, Seed: 1},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatal(err)
	}
	states := map[string]*controlState{}
	for _, ctrl := range gen.ParameterControls() {
		s := &controlState{control: ctrl}
		s.refresh(gen.Parameters())
		states[ctrl.Key] = s
	}
	return gen, states
}

func TestControlRefresh(t *testing.T) {
	_, states := newControls(t)
	if s := states["iterations"]; !s.hasValue || s.intValue != 4 || s.value != "4" {
		t.Fatalf("iterations control = %+v", s)
	}
	if s := states["filter"]; !s.hasValue || s.floatValue != 0.9 || s.value != "0.90" {
		t.Fatalf("filter control = %+v", s)
	}
}

func TestControlAdjustClampsToBounds(t *testing.T) {
	gen, states := newControls(t)

	// 4 - 8 clamps to the minimum of 1.
	if !states["iterations"].adjust(-1, gen, gen) {
		t.Fatal("iterations decrement rejected")
	}
	if gen.Config().Iterations != 1 {
		t.Fatalf("iterations = %d, want 1", gen.Config().Iterations)
	}
	if states["iterations"].adjust(-1, gen, gen) {
		t.Fatal("iterations already at minimum")
	}

	// 0.9 + 0.05 clamps to 0.95, the last value below 1.
	if !states["filter"].adjust(1, gen, gen) || gen.Config().Filter != 0.95 {
		t.Fatalf("filter = %v, want 0.95", gen.Config().Filter)
	}
}

func TestControlAdjustRejectedByGenerator(t *testing.T) {
	gen, states := newControls(t)

	// min 2 -> 3 equals max, allowed; 3 -> 4 exceeds max 3 and is refused.
	if !states["min_delta"].adjust(1, gen, gen) {
		t.Fatal("min delta 3 should be accepted")
	}
	if states["min_delta"].adjust(1, gen, gen) {
		t.Fatal("min delta above max must be refused")
	}
	if s := states["min_delta"]; s.intValue != 3 || gen.Config().MinDelta != 3 {
		t.Fatalf("min delta control %d, generator %d", s.intValue, gen.Config().MinDelta)
	}
}
