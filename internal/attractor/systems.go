// Package attractor integrates chaotic 3D ODE systems with classical
// fixed-step RK4, keeps a bounded trail per trajectory and projects the
// result to 2D with pointer-driven rotation.
package attractor

// State is one point of a 3D trajectory.
type State struct {
	X, Y, Z float64
}

func (s State) addScaled(d State, h float64) State {
	return State{s.X + d.X*h, s.Y + d.Y*h, s.Z + d.Z*h}
}

// System is the right-hand side of an autonomous 3D ODE.
type System interface {
	Name() string
	Derive(s State) State
	Seed() State
	// Center and WorldScale map raw trajectory coordinates into a unit-ish
	// box around the origin for projection.
	Center() State
	WorldScale() float64
}

type Lorenz struct {
	Sigma, Rho, Beta float64
}

func NewLorenz() *Lorenz { return &Lorenz{Sigma: 10.0, Rho: 28.0, Beta: 8.0 / 3.0} }

func (l *Lorenz) Name() string { return "lorenz" }

func (l *Lorenz) Derive(s State) State {
	return State{
		X: l.Sigma * (s.Y - s.X),
		Y: s.X*(l.Rho-s.Z) - s.Y,
		Z: s.X*s.Y - l.Beta*s.Z,
	}
}

func (l *Lorenz) Seed() State         { return State{X: 1, Y: 1, Z: 1} }
func (l *Lorenz) Center() State       { return State{Z: 25} }
func (l *Lorenz) WorldScale() float64 { return 0.04 }

type Rossler struct {
	A, B, C float64
}

func NewRossler() *Rossler { return &Rossler{A: 0.2, B: 0.2, C: 5.7} }

func (r *Rossler) Name() string { return "rossler" }

func (r *Rossler) Derive(s State) State {
	return State{
		X: -s.Y - s.Z,
		Y: s.X + r.A*s.Y,
		Z: r.B + s.Z*(s.X-r.C),
	}
}

func (r *Rossler) Seed() State         { return State{X: 1, Y: 1, Z: 1} }
func (r *Rossler) Center() State       { return State{Z: 5} }
func (r *Rossler) WorldScale() float64 { return 0.08 }

// BySystemName returns a fresh system for a configuration string, or nil
// for an unknown name.
func BySystemName(name string) System {
	switch name {
	case "lorenz":
		return NewLorenz()
	case "rossler":
		return NewRossler()
	default:
		return nil
	}
}
