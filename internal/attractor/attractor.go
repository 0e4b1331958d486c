package attractor

import (
	"fmt"

	"github.com/san-kum/sketchlab/internal/sketch"
)

// Options is the flat configuration snapshot for the integrator. Advance
// copies it by value at the start of each tick.
type Options struct {
	Dt           float64 // fixed RK4 step
	StepsFull    int     // sub-steps per frame in full quality
	StepsPreview int     // sub-steps per frame in preview quality
	MaxTrail     int     // ring capacity per trajectory
	TrailCount   int     // number of trajectories
	SeedSpread   float64 // offset between trajectory seeds

	Smoothing   float64 // exponential smoothing toward target angles
	PitchRange  float64 // pointer.Y -> target pitch span, radians
	YawRange    float64 // pointer.X -> target yaw span, radians
	FOV         float64 // perspective constant
	ZScale      float64 // depth contribution of rotated z
	RenderScale float64 // screen radius as a fraction of min(w,h)
}

func DefaultOptions() Options {
	return Options{
		Dt:           0.004,
		StepsFull:    6,
		StepsPreview: 2,
		MaxTrail:     600,
		TrailCount:   3,
		SeedSpread:   0.08,
		Smoothing:    0.06,
		PitchRange:   1.6,
		YawRange:     2.4,
		FOV:          3.0,
		ZScale:       1.0,
		RenderScale:  0.9,
	}
}

// Integrator advances one or more trajectories of a chaotic system and
// projects their trails into screen space. It never schedules itself;
// the frame driver calls Advance once per frame.
type Integrator struct {
	opts   Options
	sys    System
	cur    []State
	trails []*Trail

	pitch, yaw float64
	w, h       float64
	speed      float64
}

func New(sys System, opts Options) *Integrator {
	return &Integrator{opts: opts, sys: sys}
}

func (a *Integrator) Name() string { return "attractor:" + a.sys.Name() }

// Reinitialize re-seeds every trajectory and empties the trails. Seeds
// are deterministic offsets of the system seed, so identical construction
// always yields identical trajectories.
func (a *Integrator) Reinitialize(width, height int, q sketch.Quality) {
	a.w, a.h = float64(width), float64(height)

	count := a.opts.TrailCount
	if count < 1 {
		count = 1
	}
	capacity := a.opts.MaxTrail
	if q == sketch.Preview {
		capacity /= 2
		if capacity < 1 {
			capacity = 1
		}
	}

	a.cur = make([]State, count)
	a.trails = make([]*Trail, count)
	seed := a.sys.Seed()
	for i := range a.cur {
		off := float64(i) * a.opts.SeedSpread
		a.cur[i] = State{X: seed.X + off, Y: seed.Y - off, Z: seed.Z + off}
		a.trails[i] = NewTrail(capacity)
		a.trails[i].Push(a.cur[i])
	}
	a.pitch, a.yaw = 0, 0
}

// Advance takes the quality mode's fixed number of RK4 sub-steps per
// trajectory (frame time is deliberately ignored), smooths the view
// angles toward the pointer-derived targets, and returns one projected
// polyline per trail.
func (a *Integrator) Advance(p sketch.Pointer, q sketch.Quality) sketch.Frame {
	o := a.opts

	steps := o.StepsFull
	if q == sketch.Preview {
		steps = o.StepsPreview
	}
	if steps < 1 {
		steps = 1
	}

	for i := range a.cur {
		s := a.cur[i]
		for n := 0; n < steps; n++ {
			s = rk4Step(a.sys, s, o.Dt)
			a.trails[i].Push(s)
		}
		a.speed = a.sys.Derive(s).norm()
		a.cur[i] = s
	}

	targetYaw := (p.X - 0.5) * o.YawRange
	targetPitch := (p.Y - 0.5) * o.PitchRange
	a.yaw += (targetYaw - a.yaw) * o.Smoothing
	a.pitch += (targetPitch - a.pitch) * o.Smoothing

	lines := make([][]sketch.Vertex, len(a.trails))
	for i, tr := range a.trails {
		line := make([]sketch.Vertex, tr.Len())
		for j := 0; j < tr.Len(); j++ {
			line[j] = a.Project(tr.At(j), a.pitch, a.yaw)
		}
		lines[i] = line
	}
	return sketch.Frame{Lines: lines}
}

func (s State) norm() float64 {
	v := sketch.Vec3{X: s.X, Y: s.Y, Z: s.Z}
	return v.Length()
}

// Project rotates a trajectory state about two axes and applies a
// perspective divide: depth = fov / (fov + z*zScale).
func (a *Integrator) Project(s State, pitch, yaw float64) sketch.Vertex {
	c := a.sys.Center()
	v := sketch.Vec3{
		X: (s.X - c.X) * a.sys.WorldScale(),
		Y: (s.Y - c.Y) * a.sys.WorldScale(),
		Z: (s.Z - c.Z) * a.sys.WorldScale(),
	}
	v = v.RotateX(pitch).RotateY(yaw)

	depth := a.opts.FOV / (a.opts.FOV + v.Z*a.opts.ZScale)
	minDim := a.w
	if a.h < minDim {
		minDim = a.h
	}
	scale := minDim * 0.5 * a.opts.RenderScale
	return sketch.Vertex{
		X:     a.w/2 + v.X*scale*depth,
		Y:     a.h/2 + v.Y*scale*depth,
		Depth: depth,
	}
}

// Trails exposes the trajectory rings (stats and tests).
func (a *Integrator) Trails() []*Trail { return a.trails }

// Angles returns the current smoothed view rotation.
func (a *Integrator) Angles() (pitch, yaw float64) { return a.pitch, a.yaw }

// Speed is the phase-space velocity magnitude of the last advanced
// trajectory, for the stats strip.
func (a *Integrator) Speed() float64 { return a.speed }

func (a *Integrator) Params() map[string]float64 {
	return map[string]float64{
		"dt":                 a.opts.Dt,
		"iterationsPerFrame": float64(a.opts.StepsFull),
		"stepsPreview":       float64(a.opts.StepsPreview),
		"maxTrailLength":     float64(a.opts.MaxTrail),
		"trailCount":         float64(a.opts.TrailCount),
		"seedSpread":         a.opts.SeedSpread,
		"smoothing":          a.opts.Smoothing,
		"pitchRange":         a.opts.PitchRange,
		"yawRange":           a.opts.YawRange,
		"fov":                a.opts.FOV,
		"zScale":             a.opts.ZScale,
		"renderScale":        a.opts.RenderScale,
	}
}

func (a *Integrator) SetParam(name string, v float64) error {
	switch name {
	case "dt":
		a.opts.Dt = v
	case "iterationsPerFrame":
		a.opts.StepsFull = int(v)
	case "stepsPreview":
		a.opts.StepsPreview = int(v)
	case "maxTrailLength":
		a.opts.MaxTrail = int(v)
	case "trailCount":
		a.opts.TrailCount = int(v)
	case "seedSpread":
		a.opts.SeedSpread = v
	case "smoothing":
		a.opts.Smoothing = v
	case "pitchRange":
		a.opts.PitchRange = v
	case "yawRange":
		a.opts.YawRange = v
	case "fov":
		a.opts.FOV = v
	case "zScale":
		a.opts.ZScale = v
	case "renderScale":
		a.opts.RenderScale = v
	default:
		return fmt.Errorf("attractor: unknown option %q", name)
	}
	return nil
}
