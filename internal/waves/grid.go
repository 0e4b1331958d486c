// Package waves implements a spring-mass node grid excited by transient
// circular wave sources and disturbed by pointer repulsion. Each tick is
// O(nodes * sources) with all containers bounded by the active quality
// mode, so per-frame cost is constant by construction.
package waves

import (
	"math"

	"github.com/san-kum/sketchlab/internal/sketch"
)

// Node is one mass point of the grid. Origin is the fixed rest position;
// Phase caches the last computed wave displacement for the renderer.
type Node struct {
	Origin sketch.Vec2
	Pos    sketch.Vec2
	Vel    sketch.Vec2
	Phase  float64
}

// Grid is the spring-wave simulator. It owns all of its state; nothing
// lives at package level, so multiple grids can run side by side.
type Grid struct {
	opts    Options
	rows    int
	cols    int
	w, h    float64
	nodes   []Node
	sources *Sources
	frame   int
	energy  float64
}

func NewGrid(opts Options) *Grid {
	return &Grid{
		opts:    opts,
		sources: NewSources(opts.MaxSources, opts.Seed),
	}
}

func (g *Grid) Name() string { return "waves" }

// Reinitialize rebuilds an evenly spaced grid for the given canvas size
// and resets all velocities and wave sources. It must not run
// concurrently with Advance; the frame driver serializes the two.
func (g *Grid) Reinitialize(width, height int, q sketch.Quality) {
	spacing := g.opts.SpacingFull
	if q == sketch.Preview {
		spacing = g.opts.SpacingPreview
	}
	g.w, g.h = float64(width), float64(height)

	g.cols = int(g.w/spacing) + 1
	g.rows = int(g.h/spacing) + 1
	if g.cols < 2 {
		g.cols = 2
	}
	if g.rows < 2 {
		g.rows = 2
	}
	dx := g.w / float64(g.cols-1)
	dy := g.h / float64(g.rows-1)

	g.nodes = make([]Node, g.rows*g.cols)
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			origin := sketch.Vec2{X: float64(c) * dx, Y: float64(r) * dy}
			g.nodes[r*g.cols+c] = Node{Origin: origin, Pos: origin}
		}
	}

	g.sources = NewSources(g.opts.MaxSources, g.opts.Seed)
	g.frame = 0
}

// Advance runs one simulation tick and returns the weighted grid edges.
// The option set is snapshotted up front so mid-tick reconfiguration
// cannot split a tick's behavior.
func (g *Grid) Advance(p sketch.Pointer, q sketch.Quality) sketch.Frame {
	o := g.opts
	g.frame++

	g.syncCapacity(o.MaxSources)
	g.sources.MaybeTrigger(p, g.frame, q, g.w, g.h, o)
	g.sources.Tick(o)

	ring := g.sources.Active()
	pointer := sketch.Vec2{X: p.X * g.w, Y: p.Y * g.h}
	kinetic := 0.0

	for i := range g.nodes {
		n := &g.nodes[i]

		// Superpose every live source: decaying circular waves.
		waveZ := 0.0
		for j := 0; j < ring.Len(); j++ {
			src := ring.At(j)
			d := n.Origin.Dist(src.Pos)
			waveZ += src.Strength * math.Exp(-o.DecayConst*d) * math.Sin(d*o.FreqConst-src.Age)
		}
		n.Phase = waveZ
		n.Vel.Y += waveZ * o.WaveGain

		// Spring toward rest position.
		n.Vel = n.Vel.Add(n.Origin.Sub(n.Pos).Scale(o.SpringStrength))

		// 4-neighbor coupling on relative displacement; boundary nodes
		// just omit missing neighbors.
		r, c := i/g.cols, i%g.cols
		if c > 0 {
			n.Vel = n.Vel.Add(g.displacement(r, c-1).Scale(o.Coupling))
		}
		if c < g.cols-1 {
			n.Vel = n.Vel.Add(g.displacement(r, c+1).Scale(o.Coupling))
		}
		if r > 0 {
			n.Vel = n.Vel.Add(g.displacement(r-1, c).Scale(o.Coupling))
		}
		if r < g.rows-1 {
			n.Vel = n.Vel.Add(g.displacement(r+1, c).Scale(o.Coupling))
		}

		// Pointer repulsion with epsilon-guarded direction.
		if d := n.Pos.Dist(pointer); d < o.RepulsionRadius {
			if d < 1e-6 {
				d = 1e-6
			}
			dir := n.Pos.Sub(pointer).Scale(1 / d)
			n.Vel = n.Vel.Add(dir.Scale(o.RepulsionK / (d*d + o.RepulsionK)))
		}

		// Semi-implicit Euler: damp velocity, then integrate position.
		n.Vel = n.Vel.Scale(o.Damping)
		n.Pos = n.Pos.Add(n.Vel)

		kinetic += 0.5 * (n.Vel.X*n.Vel.X + n.Vel.Y*n.Vel.Y)
	}
	g.energy = kinetic

	return sketch.Frame{Edges: g.edges(o)}
}

// displacement is a node's offset from its own origin.
func (g *Grid) displacement(r, c int) sketch.Vec2 {
	n := &g.nodes[r*g.cols+c]
	return n.Pos.Sub(n.Origin)
}

// edges emits one weighted edge per adjacent node pair (horizontal and
// vertical). Weight blends relative stretch with the mean |phase|.
func (g *Grid) edges(o Options) []sketch.Edge {
	out := make([]sketch.Edge, 0, 2*len(g.nodes))
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if c < g.cols-1 {
				out = append(out, g.edge(r, c, r, c+1, o))
			}
			if r < g.rows-1 {
				out = append(out, g.edge(r, c, r+1, c, o))
			}
		}
	}
	return out
}

func (g *Grid) edge(r1, c1, r2, c2 int, o Options) sketch.Edge {
	a := &g.nodes[r1*g.cols+c1]
	b := &g.nodes[r2*g.cols+c2]
	rest := a.Origin.Dist(b.Origin)
	stretch := 0.0
	if rest > 1e-9 {
		stretch = math.Abs(a.Pos.Dist(b.Pos)-rest) / rest
	}
	w := stretch*o.StretchGain + (math.Abs(a.Phase)+math.Abs(b.Phase))*0.5*o.PhaseGain
	if w > 1 {
		w = 1
	}
	return sketch.Edge{X1: a.Pos.X, Y1: a.Pos.Y, X2: b.Pos.X, Y2: b.Pos.Y, Weight: w}
}

// syncCapacity resizes the source ring when maxWaveSources changed at
// runtime, keeping the newest sources.
func (g *Grid) syncCapacity(capacity int) {
	if capacity < 1 {
		capacity = 1
	}
	old := g.sources.ring
	if old.Cap() == capacity {
		return
	}
	next := NewSourceRing(capacity)
	for i := 0; i < old.Len(); i++ {
		next.Push(*old.At(i))
	}
	g.sources.ring = next
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

// NodeAt returns the node at grid coordinates (row, col).
func (g *Grid) NodeAt(r, c int) *Node { return &g.nodes[r*g.cols+c] }

// Sources exposes the wave source manager (the frame driver uses it for
// stats; tests use it to inject emitters).
func (g *Grid) Sources() *Sources { return g.sources }

// Energy is the total kinetic energy of the last tick.
func (g *Grid) Energy() float64 { return g.energy }

func (g *Grid) Params() map[string]float64 { return g.opts.params() }

func (g *Grid) SetParam(name string, v float64) error {
	return g.opts.setParam(name, v)
}
