// Package field builds a time-varying noise-based scalar field and
// extracts iso-contour line segments from it with marching squares.
package field

import (
	"fmt"
	"math"

	"github.com/san-kum/sketchlab/internal/sketch"
)

// Options is the flat configuration snapshot for the contour sketch.
type Options struct {
	ResolutionFull    float64 // px per sample cell in full quality
	ResolutionPreview float64 // px per sample cell in preview quality
	NoiseScale        float64 // world px -> noise domain
	Octaves           int     // 2-3 octaves of fbm
	Persistence       float64 // amplitude falloff per octave
	TimeStep          float64 // elapsed-time increment per Advance
	BumpAmp           float64 // pointer bump amplitude
	BumpSpread        float64 // pointer bump spread (px^2)
	LevelsFull        int     // iso-levels in full quality
	LevelsPreview     int     // iso-levels in preview quality
	Seed              int64
}

func DefaultOptions() Options {
	return Options{
		ResolutionFull:    14,
		ResolutionPreview: 28,
		NoiseScale:        0.012,
		Octaves:           3,
		Persistence:       0.5,
		TimeStep:          0.008,
		BumpAmp:           0.9,
		BumpSpread:        9000,
		LevelsFull:        6,
		LevelsPreview:     3,
		Seed:              7,
	}
}

// Field holds a row-major sample grid over the canvas. The whole grid is
// recomputed every tick; dimensions change only on Reinitialize.
type Field struct {
	opts  Options
	noise fbm

	w, h         float64
	cols, rows   int
	cellW, cellH float64
	v            []float64
	time         float64
	minV, maxV   float64
}

func New(opts Options) *Field {
	return &Field{
		opts:  opts,
		noise: newFBM(opts.Seed, opts.Octaves, opts.Persistence),
	}
}

func (f *Field) Name() string { return "field" }

// Reinitialize sizes the sample grid for the canvas and quality mode and
// resets the clock.
func (f *Field) Reinitialize(width, height int, q sketch.Quality) {
	res := f.opts.ResolutionFull
	if q == sketch.Preview {
		res = f.opts.ResolutionPreview
	}
	f.w, f.h = float64(width), float64(height)

	f.cols = int(f.w/res) + 1
	f.rows = int(f.h/res) + 1
	if f.cols < 2 {
		f.cols = 2
	}
	if f.rows < 2 {
		f.rows = 2
	}
	f.cellW = f.w / float64(f.cols-1)
	f.cellH = f.h / float64(f.rows-1)
	f.v = make([]float64, f.rows*f.cols)
	f.time = 0
}

// Advance ticks the internal clock, rebuilds the field and extracts one
// segment set per iso-level.
func (f *Field) Advance(p sketch.Pointer, q sketch.Quality) sketch.Frame {
	o := f.opts
	f.time += o.TimeStep
	f.RebuildField(f.time, p, o)

	levels := o.LevelsFull
	if q == sketch.Preview {
		levels = o.LevelsPreview
	}
	return sketch.Frame{Contours: f.ExtractContours(levels)}
}

// RebuildField recomputes every sample: multi-octave noise at
// (x*scale, y*scale, time) plus a Gaussian bump at the pointer's world
// position. Deterministic for a given seed, time and pointer.
func (f *Field) RebuildField(time float64, p sketch.Pointer, o Options) {
	px, py := p.X*f.w, p.Y*f.h
	f.minV, f.maxV = math.Inf(1), math.Inf(-1)

	for r := 0; r < f.rows; r++ {
		y := float64(r) * f.cellH
		for c := 0; c < f.cols; c++ {
			x := float64(c) * f.cellW
			v := f.noise.sample(x*o.NoiseScale, y*o.NoiseScale, time)
			dx, dy := x-px, y-py
			v += o.BumpAmp * math.Exp(-(dx*dx+dy*dy)/o.BumpSpread)
			f.v[r*f.cols+c] = v
			if v < f.minV {
				f.minV = v
			}
			if v > f.maxV {
				f.maxV = v
			}
		}
	}
}

// ExtractContours runs marching squares for levelCount evenly spaced
// iso-levels between the field's current min and max. A degenerate field
// (min == max) yields no segments at all.
func (f *Field) ExtractContours(levelCount int) [][]sketch.Segment {
	if levelCount < 1 || f.maxV-f.minV < 1e-9 {
		return nil
	}
	out := make([][]sketch.Segment, levelCount)
	span := f.maxV - f.minV
	for i := 0; i < levelCount; i++ {
		level := f.minV + span*float64(i+1)/float64(levelCount+1)
		out[i] = f.contourAt(level)
	}
	return out
}

func (f *Field) contourAt(level float64) []sketch.Segment {
	segs := make([]sketch.Segment, 0, f.rows*2)
	for r := 0; r < f.rows-1; r++ {
		for c := 0; c < f.cols-1; c++ {
			x, y := float64(c)*f.cellW, float64(r)*f.cellH
			tl := f.v[r*f.cols+c]
			tr := f.v[r*f.cols+c+1]
			br := f.v[(r+1)*f.cols+c+1]
			bl := f.v[(r+1)*f.cols+c]
			segs = marchCell(segs, level, x, y, f.cellW, f.cellH, tl, tr, br, bl)
		}
	}
	return segs
}

// Range reports the last rebuilt field's observed min and max.
func (f *Field) Range() (min, max float64) { return f.minV, f.maxV }

// Dims reports the sample grid dimensions.
func (f *Field) Dims() (rows, cols int) { return f.rows, f.cols }

func (f *Field) Params() map[string]float64 {
	return map[string]float64{
		"resolution":           f.opts.ResolutionFull,
		"resolutionPreview":    f.opts.ResolutionPreview,
		"noiseScale":           f.opts.NoiseScale,
		"octaves":              float64(f.opts.Octaves),
		"persistence":          f.opts.Persistence,
		"timeStep":             f.opts.TimeStep,
		"bumpAmp":              f.opts.BumpAmp,
		"bumpSpread":           f.opts.BumpSpread,
		"contourLevels":        float64(f.opts.LevelsFull),
		"contourLevelsPreview": float64(f.opts.LevelsPreview),
	}
}

func (f *Field) SetParam(name string, v float64) error {
	switch name {
	case "resolution":
		f.opts.ResolutionFull = v
	case "resolutionPreview":
		f.opts.ResolutionPreview = v
	case "noiseScale":
		f.opts.NoiseScale = v
	case "octaves":
		f.opts.Octaves = int(v)
		f.noise = newFBM(f.opts.Seed, f.opts.Octaves, f.opts.Persistence)
	case "persistence":
		f.opts.Persistence = v
		f.noise = newFBM(f.opts.Seed, f.opts.Octaves, f.opts.Persistence)
	case "timeStep":
		f.opts.TimeStep = v
	case "bumpAmp":
		f.opts.BumpAmp = v
	case "bumpSpread":
		f.opts.BumpSpread = v
	case "contourLevels":
		f.opts.LevelsFull = int(v)
	case "contourLevelsPreview":
		f.opts.LevelsPreview = int(v)
	default:
		return fmt.Errorf("field: unknown option %q", name)
	}
	return nil
}
