package attractor

// Trail is a fixed-capacity ring buffer of trajectory states. Appending
// to a full trail overwrites the oldest entry in O(1).
type Trail struct {
	buf  []State
	head int
	n    int
}

func NewTrail(capacity int) *Trail {
	if capacity < 1 {
		capacity = 1
	}
	return &Trail{buf: make([]State, capacity)}
}

func (t *Trail) Len() int { return t.n }
func (t *Trail) Cap() int { return len(t.buf) }

// At returns the i-th oldest state. i must be in [0,Len).
func (t *Trail) At(i int) State {
	return t.buf[(t.head+i)%len(t.buf)]
}

// Push appends a state, dropping the oldest when full.
func (t *Trail) Push(s State) {
	if t.n == len(t.buf) {
		t.buf[t.head] = s
		t.head = (t.head + 1) % len(t.buf)
		return
	}
	t.buf[(t.head+t.n)%len(t.buf)] = s
	t.n++
}
