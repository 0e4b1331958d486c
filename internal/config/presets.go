package config

import "sort"

// Presets are named option bundles per sketch, applied on top of each
// simulator's defaults.
var presets = map[string]map[string]map[string]float64{
	"waves": {
		"calm": {
			"springStrength": 0.02,
			"damping":        0.92,
			"waveDecay":      0.93,
			"maxWaveSources": 6,
		},
		"storm": {
			"springStrength": 0.035,
			"damping":        0.97,
			"waveDecay":      0.985,
			"waveGain":       0.9,
			"maxWaveSources": 20,
			"triggerDelta":   0.006,
		},
	},
	"attractor": {
		"wisp": {
			"trailCount":     1,
			"maxTrailLength": 1200,
			"smoothing":      0.04,
		},
		"braid": {
			"trailCount":     5,
			"seedSpread":     0.02,
			"maxTrailLength": 400,
		},
	},
	"field": {
		"dunes": {
			"noiseScale":    0.006,
			"octaves":       2,
			"contourLevels": 4,
			"timeStep":      0.004,
		},
		"static": {
			"noiseScale":    0.02,
			"octaves":       3,
			"contourLevels": 9,
			"timeStep":      0.016,
		},
	},
}

// GetPreset returns the named preset for a sketch, or nil when either
// the sketch or the preset is unknown.
func GetPreset(sketchName, preset string) map[string]float64 {
	group, ok := presets[sketchName]
	if !ok {
		return nil
	}
	opts, ok := group[preset]
	if !ok {
		return nil
	}
	out := make(map[string]float64, len(opts))
	for k, v := range opts {
		out[k] = v
	}
	return out
}

// ListPresets names the presets available for a sketch in sorted order,
// or nil.
func ListPresets(sketchName string) []string {
	group, ok := presets[sketchName]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(group))
	for name := range group {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
