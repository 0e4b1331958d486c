package attractor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/sketchlab/internal/sketch"
)

// circle is dx=-y, dy=x: exact solution rotates on the unit circle, which
// gives RK4 a known answer to hit.
type circle struct{}

func (circle) Name() string         { return "circle" }
func (circle) Derive(s State) State { return State{X: -s.Y, Y: s.X} }
func (circle) Seed() State          { return State{X: 1} }
func (circle) Center() State        { return State{} }
func (circle) WorldScale() float64  { return 1 }

func TestRK4Accuracy(t *testing.T) {
	dt := 0.001
	steps := int(math.Round(2 * math.Pi / dt))

	s := circle{}.Seed()
	for i := 0; i < steps; i++ {
		s = rk4Step(circle{}, s, dt)
	}

	// One full revolution lands back at the seed. The tiny residual is
	// dominated by the non-integer step count, not the integrator.
	assert.InDelta(t, 1.0, s.X, 2e-3)
	assert.InDelta(t, 0.0, s.Y, 2e-3)
}

func TestRK4BeatsEulerOnCircle(t *testing.T) {
	dt := 0.05
	steps := int(math.Round(2 * math.Pi / dt))

	rk := circle{}.Seed()
	eu := circle{}.Seed()
	for i := 0; i < steps; i++ {
		rk = rk4Step(circle{}, rk, dt)
		d := circle{}.Derive(eu)
		eu = eu.addScaled(d, dt)
	}

	rkErr := math.Hypot(rk.X-1, rk.Y)
	euErr := math.Hypot(eu.X-1, eu.Y)
	assert.Less(t, rkErr, euErr)
}

func TestTrailRing(t *testing.T) {
	tr := NewTrail(4)
	for i := 0; i < 10; i++ {
		tr.Push(State{X: float64(i)})
		require.LessOrEqual(t, tr.Len(), 4)
	}
	require.Equal(t, 4, tr.Len())
	for i := 0; i < 4; i++ {
		assert.Equal(t, float64(6+i), tr.At(i).X, "slot %d", i)
	}
}

func TestDeterminism(t *testing.T) {
	pointers := []sketch.Pointer{
		{X: 0.2, Y: 0.8}, {X: 0.5, Y: 0.5}, {X: 0.9, Y: 0.1}, {X: 0.4, Y: 0.6},
	}

	run := func() *Integrator {
		a := New(NewLorenz(), DefaultOptions())
		a.Reinitialize(640, 480, sketch.Full)
		for i := 0; i < 120; i++ {
			a.Advance(pointers[i%len(pointers)], sketch.Full)
		}
		return a
	}

	a, b := run(), run()
	require.Equal(t, len(a.Trails()), len(b.Trails()))
	for i := range a.Trails() {
		ta, tb := a.Trails()[i], b.Trails()[i]
		require.Equal(t, ta.Len(), tb.Len())
		for j := 0; j < ta.Len(); j++ {
			require.Equal(t, ta.At(j), tb.At(j), "trail %d index %d", i, j)
		}
	}
	ap, ay := a.Angles()
	bp, by := b.Angles()
	assert.Equal(t, ap, bp)
	assert.Equal(t, ay, by)
}

func TestTrailBounded(t *testing.T) {
	o := DefaultOptions()
	o.MaxTrail = 50
	a := New(NewRossler(), o)
	a.Reinitialize(640, 480, sketch.Full)

	for i := 0; i < 500; i++ {
		a.Advance(sketch.Pointer{X: 0.5, Y: 0.5}, sketch.Full)
		for _, tr := range a.Trails() {
			require.LessOrEqual(t, tr.Len(), 50)
		}
	}
}

func TestPreviewTakesFewerSteps(t *testing.T) {
	o := DefaultOptions()

	full := New(NewLorenz(), o)
	full.Reinitialize(640, 480, sketch.Full)
	prev := New(NewLorenz(), o)
	prev.Reinitialize(640, 480, sketch.Full)

	full.Advance(sketch.Pointer{X: 0.5, Y: 0.5}, sketch.Full)
	prev.Advance(sketch.Pointer{X: 0.5, Y: 0.5}, sketch.Preview)

	assert.Equal(t, 1+o.StepsFull, full.Trails()[0].Len())
	assert.Equal(t, 1+o.StepsPreview, prev.Trails()[0].Len())
}

func TestAngleSmoothing(t *testing.T) {
	o := DefaultOptions()
	a := New(NewLorenz(), o)
	a.Reinitialize(640, 480, sketch.Full)

	p := sketch.Pointer{X: 1, Y: 1}
	targetYaw := 0.5 * o.YawRange
	targetPitch := 0.5 * o.PitchRange

	prevGap := math.Inf(1)
	for i := 0; i < 300; i++ {
		a.Advance(p, sketch.Full)
		pitch, yaw := a.Angles()
		gap := math.Abs(targetYaw-yaw) + math.Abs(targetPitch-pitch)
		require.Less(t, gap, prevGap, "smoothing must close in monotonically")
		prevGap = gap
	}
	pitch, yaw := a.Angles()
	assert.InDelta(t, targetYaw, yaw, 1e-3)
	assert.InDelta(t, targetPitch, pitch, 1e-3)
}

func TestProjectCenterState(t *testing.T) {
	a := New(NewLorenz(), DefaultOptions())
	a.Reinitialize(640, 480, sketch.Full)

	v := a.Project(NewLorenz().Center(), 0, 0)
	assert.InDelta(t, 320, v.X, 1e-9)
	assert.InDelta(t, 240, v.Y, 1e-9)
	assert.InDelta(t, 1.0, v.Depth, 1e-9)
}
