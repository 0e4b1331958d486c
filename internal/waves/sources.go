package waves

import (
	"math"
	"math/rand"

	"github.com/san-kum/sketchlab/internal/sketch"
)

// WaveSource is a transient circular wave emitter. Age drives the sine
// phase and only ever grows; strength decays exponentially until the
// source is culled.
type WaveSource struct {
	Pos      sketch.Vec2
	Age      float64
	Strength float64
}

// SourceRing is a fixed-capacity FIFO of wave sources backed by a
// preallocated arena with head/count indices. Pushing into a full ring
// evicts the oldest entry in O(1); nothing reallocates per frame.
type SourceRing struct {
	buf  []WaveSource
	head int
	n    int
}

func NewSourceRing(capacity int) *SourceRing {
	if capacity < 1 {
		capacity = 1
	}
	return &SourceRing{buf: make([]WaveSource, capacity)}
}

func (r *SourceRing) Len() int { return r.n }
func (r *SourceRing) Cap() int { return len(r.buf) }

// At returns a pointer to the i-th oldest source. i must be in [0,Len).
func (r *SourceRing) At(i int) *WaveSource {
	return &r.buf[(r.head+i)%len(r.buf)]
}

// Push appends a source, evicting the oldest when full.
func (r *SourceRing) Push(s WaveSource) {
	if r.n == len(r.buf) {
		r.buf[r.head] = s
		r.head = (r.head + 1) % len(r.buf)
		return
	}
	r.buf[(r.head+r.n)%len(r.buf)] = s
	r.n++
}

// Tick ages and decays every source, then culls the ones whose strength
// fell below minStrength. Survivors keep their relative order.
func (r *SourceRing) Tick(waveSpeed, waveDecay, minStrength float64) {
	kept := 0
	for i := 0; i < r.n; i++ {
		s := *r.At(i)
		s.Age += waveSpeed
		s.Strength *= waveDecay
		if s.Strength < minStrength {
			continue
		}
		// kept never exceeds i, so on a wrapped ring the write index
		// trails the read index and survivors are never clobbered.
		r.buf[(r.head+kept)%len(r.buf)] = s
		kept++
	}
	r.n = kept
}

// Sources decides when pointer movement (or preview-mode idle timing)
// spawns a new wave emitter and owns the bounded ring of live emitters.
type Sources struct {
	ring    *SourceRing
	last    sketch.Pointer
	hasLast bool
	rng     *rand.Rand
}

func NewSources(capacity int, seed int64) *Sources {
	return &Sources{
		ring: NewSourceRing(capacity),
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// MaybeTrigger spawns a source when the pointer moved further than
// triggerDelta since the last recorded position, with strength
// proportional to the clamped delta. In preview mode it additionally
// spawns a source at a random canvas position every idleEvery frames so
// the grid stays alive without input.
func (s *Sources) MaybeTrigger(p sketch.Pointer, frame int, q sketch.Quality, width, height float64, o Options) {
	if s.hasLast {
		delta := math.Hypot(p.X-s.last.X, p.Y-s.last.Y)
		if delta > o.TriggerDelta {
			strength := delta * o.TriggerGain
			if strength > o.MaxStrength {
				strength = o.MaxStrength
			}
			s.ring.Push(WaveSource{
				Pos:      sketch.Vec2{X: p.X * width, Y: p.Y * height},
				Strength: strength,
			})
			s.last = p
		}
	} else {
		s.last = p
		s.hasLast = true
	}

	if q == sketch.Preview && o.IdleEvery > 0 && frame%o.IdleEvery == 0 {
		s.ring.Push(WaveSource{
			Pos:      sketch.Vec2{X: s.rng.Float64() * width, Y: s.rng.Float64() * height},
			Strength: o.MaxStrength * 0.6,
		})
	}
}

// Tick advances age and decay and drops dead sources.
func (s *Sources) Tick(o Options) {
	s.ring.Tick(o.WaveSpeed, o.WaveDecay, o.MinStrength)
}

// Push inserts a source directly, bypassing the trigger policy.
func (s *Sources) Push(src WaveSource) { s.ring.Push(src) }

// Active returns the ring of live sources.
func (s *Sources) Active() *SourceRing { return s.ring }

// Reset drops all sources and the recorded pointer position.
func (s *Sources) Reset() {
	s.ring.head, s.ring.n = 0, 0
	s.hasLast = false
}
