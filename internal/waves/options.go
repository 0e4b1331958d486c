package waves

import "fmt"

// Options is the flat configuration snapshot for the spring-wave grid.
// Advance copies it by value at the start of each tick, so a tick's
// behavior is fully determined by its explicit inputs.
type Options struct {
	SpringStrength float64 // pull toward each node's origin
	Damping        float64 // multiplicative velocity damping, < 1
	WaveGain       float64 // vertical force gain applied to the wave term
	Coupling       float64 // fraction of neighbor displacement fed back
	DecayConst     float64 // spatial attenuation of wave sources
	FreqConst      float64 // spatial frequency of the wave term

	RepulsionRadius float64 // pointer influence radius, canvas px
	RepulsionK      float64 // k in the k/(d^2+k) falloff

	WaveSpeed    float64 // age increment per tick (phase driver)
	WaveDecay    float64 // per-tick strength multiplier, < 1
	MinStrength  float64 // cull threshold
	MaxStrength  float64 // clamp for triggered sources
	TriggerDelta float64 // normalized pointer delta that spawns a source
	TriggerGain  float64 // strength per unit of pointer delta
	MaxSources   int     // FIFO capacity
	IdleEvery    int     // preview mode: frames between idle triggers

	SpacingFull    float64 // px between nodes in full quality
	SpacingPreview float64 // px between nodes in preview quality
	StretchGain    float64 // edge weight per unit of relative stretch
	PhaseGain      float64 // edge weight per unit of |phase|

	Seed int64
}

func DefaultOptions() Options {
	return Options{
		SpringStrength:  0.025,
		Damping:         0.94,
		WaveGain:        0.6,
		Coupling:        0.02,
		DecayConst:      0.012,
		FreqConst:       0.09,
		RepulsionRadius: 90,
		RepulsionK:      40,
		WaveSpeed:       0.18,
		WaveDecay:       0.96,
		MinStrength:     0.01,
		MaxStrength:     1.0,
		TriggerDelta:    0.012,
		TriggerGain:     24,
		MaxSources:      12,
		IdleEvery:       90,
		SpacingFull:     26,
		SpacingPreview:  44,
		StretchGain:     0.35,
		PhaseGain:       0.5,
		Seed:            1,
	}
}

func (o Options) params() map[string]float64 {
	return map[string]float64{
		"springStrength":  o.SpringStrength,
		"damping":         o.Damping,
		"waveGain":        o.WaveGain,
		"coupling":        o.Coupling,
		"decayConst":      o.DecayConst,
		"freqConst":       o.FreqConst,
		"repulsionRadius": o.RepulsionRadius,
		"repulsionK":      o.RepulsionK,
		"waveSpeed":       o.WaveSpeed,
		"waveDecay":       o.WaveDecay,
		"minStrength":     o.MinStrength,
		"maxStrength":     o.MaxStrength,
		"triggerDelta":    o.TriggerDelta,
		"triggerGain":     o.TriggerGain,
		"maxWaveSources":  float64(o.MaxSources),
		"idleEvery":       float64(o.IdleEvery),
		"spacingFull":     o.SpacingFull,
		"spacingPreview":  o.SpacingPreview,
		"stretchGain":     o.StretchGain,
		"phaseGain":       o.PhaseGain,
	}
}

func (o *Options) setParam(name string, v float64) error {
	switch name {
	case "springStrength":
		o.SpringStrength = v
	case "damping":
		o.Damping = v
	case "waveGain":
		o.WaveGain = v
	case "coupling":
		o.Coupling = v
	case "decayConst":
		o.DecayConst = v
	case "freqConst":
		o.FreqConst = v
	case "repulsionRadius":
		o.RepulsionRadius = v
	case "repulsionK":
		o.RepulsionK = v
	case "waveSpeed":
		o.WaveSpeed = v
	case "waveDecay":
		o.WaveDecay = v
	case "minStrength":
		o.MinStrength = v
	case "maxStrength":
		o.MaxStrength = v
	case "triggerDelta":
		o.TriggerDelta = v
	case "triggerGain":
		o.TriggerGain = v
	case "maxWaveSources":
		o.MaxSources = int(v)
	case "idleEvery":
		o.IdleEvery = int(v)
	case "spacingFull":
		o.SpacingFull = v
	case "spacingPreview":
		o.SpacingPreview = v
	case "stretchGain":
		o.StretchGain = v
	case "phaseGain":
		o.PhaseGain = v
	default:
		return fmt.Errorf("waves: unknown option %q", name)
	}
	return nil
}
