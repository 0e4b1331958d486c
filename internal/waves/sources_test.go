package waves

import (
	"math"
	"testing"

	"github.com/san-kum/sketchlab/internal/sketch"
)

func TestSourceRingFIFOEviction(t *testing.T) {
	r := NewSourceRing(4)
	for i := 0; i < 10; i++ {
		r.Push(WaveSource{Age: float64(i), Strength: 1})
		if r.Len() > 4 {
			t.Fatalf("ring grew past capacity: %d", r.Len())
		}
	}
	if r.Len() != 4 {
		t.Fatalf("expected full ring, got %d", r.Len())
	}
	// Oldest surviving entry should be the 7th pushed (ages 6..9 remain).
	for i := 0; i < 4; i++ {
		if got := r.At(i).Age; got != float64(6+i) {
			t.Errorf("slot %d: expected age %d, got %.0f", i, 6+i, got)
		}
	}
}

func TestSourceRingTick(t *testing.T) {
	r := NewSourceRing(8)
	r.Push(WaveSource{Strength: 1.0})
	r.Push(WaveSource{Strength: 0.02})

	r.Tick(0.2, 0.5, 0.05)

	if r.Len() != 1 {
		t.Fatalf("expected weak source culled, got %d live", r.Len())
	}
	s := r.At(0)
	if s.Strength != 0.5 {
		t.Errorf("expected strength 0.5 after decay, got %f", s.Strength)
	}
	if s.Age != 0.2 {
		t.Errorf("expected age 0.2, got %f", s.Age)
	}
}

func TestSourceRingTickKeepsOrder(t *testing.T) {
	r := NewSourceRing(3)
	for i := 0; i < 5; i++ {
		r.Push(WaveSource{Age: float64(i), Strength: 1})
	}
	r.Tick(1, 1, 0)
	for i := 1; i < r.Len(); i++ {
		if r.At(i).Age < r.At(i-1).Age {
			t.Fatalf("order broken after tick: %f before %f", r.At(i-1).Age, r.At(i).Age)
		}
	}
}

func TestSourceRingTickAfterWrap(t *testing.T) {
	// Five pushes into a cap-3 ring evict ages 0 and 1 and leave the
	// head mid-buffer. A pure aging pass must keep ages 2, 3 and 4
	// distinct instead of duplicating the oldest survivor.
	r := NewSourceRing(3)
	for i := 0; i < 5; i++ {
		r.Push(WaveSource{Age: float64(i), Strength: 1})
	}
	r.Tick(0, 1, 0)
	if r.Len() != 3 {
		t.Fatalf("expected 3 survivors, got %d", r.Len())
	}
	for i := 0; i < 3; i++ {
		if got := r.At(i).Age; got != float64(2+i) {
			t.Errorf("slot %d: expected age %d, got %.0f", i, 2+i, got)
		}
	}
}

func TestMaybeTriggerThreshold(t *testing.T) {
	o := DefaultOptions()
	s := NewSources(o.MaxSources, 1)

	// First call only records the position.
	s.MaybeTrigger(sketch.Pointer{X: 0.5, Y: 0.5}, 1, sketch.Full, 400, 300, o)
	if s.Active().Len() != 0 {
		t.Fatal("first observation should not trigger")
	}

	// Tiny move stays under the threshold.
	s.MaybeTrigger(sketch.Pointer{X: 0.501, Y: 0.5}, 2, sketch.Full, 400, 300, o)
	if s.Active().Len() != 0 {
		t.Fatal("sub-threshold move should not trigger")
	}

	// Large move triggers with clamped strength at the world position.
	s.MaybeTrigger(sketch.Pointer{X: 0.9, Y: 0.5}, 3, sketch.Full, 400, 300, o)
	if s.Active().Len() != 1 {
		t.Fatal("expected one source after large move")
	}
	src := s.Active().At(0)
	if src.Strength != o.MaxStrength {
		t.Errorf("expected clamped strength %f, got %f", o.MaxStrength, src.Strength)
	}
	if math.Abs(src.Pos.X-0.9*400) > 1e-9 || math.Abs(src.Pos.Y-0.5*300) > 1e-9 {
		t.Errorf("unexpected world position %+v", src.Pos)
	}
}

func TestMaybeTriggerStrengthProportional(t *testing.T) {
	o := DefaultOptions()
	s := NewSources(o.MaxSources, 1)
	s.MaybeTrigger(sketch.Pointer{X: 0.5, Y: 0.5}, 1, sketch.Full, 400, 300, o)
	s.MaybeTrigger(sketch.Pointer{X: 0.52, Y: 0.5}, 2, sketch.Full, 400, 300, o)
	if s.Active().Len() != 1 {
		t.Fatal("expected a trigger")
	}
	want := 0.02 * o.TriggerGain
	if got := s.Active().At(0).Strength; math.Abs(got-want) > 1e-9 {
		t.Errorf("expected strength %f, got %f", want, got)
	}
}

func TestIdleTriggerPreviewOnly(t *testing.T) {
	o := DefaultOptions()
	o.IdleEvery = 5
	p := sketch.Pointer{X: 0.5, Y: 0.5}

	s := NewSources(o.MaxSources, 1)
	for frame := 1; frame <= 20; frame++ {
		s.MaybeTrigger(p, frame, sketch.Full, 400, 300, o)
	}
	if s.Active().Len() != 0 {
		t.Errorf("full quality should never idle-trigger, got %d", s.Active().Len())
	}

	s = NewSources(o.MaxSources, 1)
	for frame := 1; frame <= 20; frame++ {
		s.MaybeTrigger(p, frame, sketch.Preview, 400, 300, o)
	}
	if got := s.Active().Len(); got != 4 {
		t.Errorf("expected 4 idle triggers in 20 preview frames, got %d", got)
	}
}
