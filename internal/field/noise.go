package field

import opensimplex "github.com/ojrac/opensimplex-go"

// fbm sums a few octaves of simplex noise with doubling frequency and
// halving amplitude, normalized back into roughly [-1,1]. Deterministic
// for a given seed and sample point.
type fbm struct {
	noise       opensimplex.Noise
	octaves     int
	persistence float64
}

func newFBM(seed int64, octaves int, persistence float64) fbm {
	if octaves < 1 {
		octaves = 1
	}
	return fbm{noise: opensimplex.New(seed), octaves: octaves, persistence: persistence}
}

func (f fbm) sample(x, y, t float64) float64 {
	var total, maxAmp float64
	freq, amp := 1.0, 1.0
	for i := 0; i < f.octaves; i++ {
		total += f.noise.Eval3(x*freq, y*freq, t) * amp
		maxAmp += amp
		amp *= f.persistence
		freq *= 2
	}
	return total / maxAmp
}
