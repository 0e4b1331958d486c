package attractor

// rk4Step advances one trajectory by a single classical fourth-order
// Runge-Kutta step of fixed size dt.
func rk4Step(sys System, s State, dt float64) State {
	k1 := sys.Derive(s)
	k2 := sys.Derive(s.addScaled(k1, dt*0.5))
	k3 := sys.Derive(s.addScaled(k2, dt*0.5))
	k4 := sys.Derive(s.addScaled(k3, dt))

	h := dt / 6.0
	return State{
		X: s.X + h*(k1.X+2*k2.X+2*k3.X+k4.X),
		Y: s.Y + h*(k1.Y+2*k2.Y+2*k3.Y+k4.Y),
		Z: s.Z + h*(k1.Z+2*k2.Z+2*k3.Z+k4.Z),
	}
}
