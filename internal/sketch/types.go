package sketch

// Quality selects how much work a sketch performs per frame. Preview mode
// uses coarser grids, fewer iso-levels and fewer integration sub-steps.
type Quality int

const (
	Preview Quality = iota
	Full
)

func (q Quality) String() string {
	if q == Preview {
		return "preview"
	}
	return "full"
}

// Pointer is a pointer position normalized to [0,1]x[0,1]. Callers are
// expected to clamp before passing it in; sketches do not clamp internally
// so caller bugs stay visible.
type Pointer struct {
	X, Y float64
}

// Segment is a single iso-contour line segment in canvas coordinates.
// Segments are ephemeral: produced per level per frame, never retained.
type Segment struct {
	X1, Y1, X2, Y2 float64
}

// Edge is a weighted grid edge. Weight is in [0,1] and encodes local
// stretch plus wave phase, for the renderer to map to alpha/intensity.
type Edge struct {
	X1, Y1, X2, Y2 float64
	Weight         float64
}

// Vertex is a projected trajectory point with perspective depth.
type Vertex struct {
	X, Y  float64
	Depth float64
}

// Frame holds the drawable primitives one Advance call produced. Only the
// slices relevant to the producing sketch are populated.
type Frame struct {
	Edges    []Edge
	Lines    [][]Vertex
	Contours [][]Segment
}

// Sketch is the contract every simulator exposes to the frame driver.
// Reinitialize is a rare, synchronous full rebuild; the driver must not
// call it concurrently with Advance. Advance performs one tick and returns
// this frame's primitives. Params/SetParam expose the flat option map.
type Sketch interface {
	Name() string
	Reinitialize(width, height int, q Quality)
	Advance(p Pointer, q Quality) Frame
	Params() map[string]float64
	SetParam(name string, value float64) error
}

// Configure applies a flat option map through SetParam, stopping at the
// first unknown key.
func Configure(s Sketch, opts map[string]float64) error {
	for name, v := range opts {
		if err := s.SetParam(name, v); err != nil {
			return err
		}
	}
	return nil
}
