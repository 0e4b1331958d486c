package field

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/sketchlab/internal/sketch"
)

func TestCrossingInterpolation(t *testing.T) {
	x, y := crossing(0, 0, 0.0, 10, 0, 1.0, 0.25)
	assert.InDelta(t, 2.5, x, 1e-12)
	assert.InDelta(t, 0.0, y, 1e-12)
}

func TestCrossingDegenerateReturnsMidpoint(t *testing.T) {
	x, y := crossing(0, 0, 0.5, 10, 0, 0.5, 0.5)
	assert.Equal(t, 5.0, x)
	assert.Equal(t, 0.0, y)
}

func TestMarchCellSegmentCounts(t *testing.T) {
	// Corner value 1 marks "above", 0 "below", level 0.5.
	tests := []struct {
		tl, tr, br, bl float64
		want           int
	}{
		{0, 0, 0, 0, 0}, // code 0
		{0, 0, 0, 1, 1}, // 1
		{0, 0, 1, 0, 1}, // 2
		{0, 0, 1, 1, 1}, // 3
		{0, 1, 0, 0, 1}, // 4
		{0, 1, 0, 1, 2}, // 5: saddle
		{0, 1, 1, 0, 1}, // 6
		{0, 1, 1, 1, 1}, // 7
		{1, 0, 0, 0, 1}, // 8
		{1, 0, 0, 1, 1}, // 9
		{1, 0, 1, 0, 2}, // 10: saddle
		{1, 0, 1, 1, 1}, // 11
		{1, 1, 0, 0, 1}, // 12
		{1, 1, 0, 1, 1}, // 13
		{1, 1, 1, 0, 1}, // 14
		{1, 1, 1, 1, 0}, // 15
	}
	for i, tt := range tests {
		segs := marchCell(nil, 0.5, 0, 0, 1, 1, tt.tl, tt.tr, tt.br, tt.bl)
		assert.Len(t, segs, tt.want, "case %d", i)
	}
}

func TestSaddleCenterAveragePolicy(t *testing.T) {
	// Code 5 (tr and bl above) with the average exactly at the level:
	// >= connects each above-corner pair through the center, cutting off
	// tl via (left,top) and br via (right,bottom).
	segs := marchCell(nil, 0.5, 0, 0, 1, 1, 0, 1, 0, 1)
	require.Len(t, segs, 2)
	assert.Equal(t, sketch.Segment{X1: 0, Y1: 0.5, X2: 0.5, Y2: 0}, segs[0])
	assert.Equal(t, sketch.Segment{X1: 1, Y1: 0.5, X2: 0.5, Y2: 1}, segs[1])

	// Same corners, higher level: the average falls below, so the two
	// above-corners stay isolated: (top,right) and (bottom,left).
	segs = marchCell(nil, 0.6, 0, 0, 1, 1, 0, 1, 0, 1)
	require.Len(t, segs, 2)
	tx, _ := crossing(0, 0, 0.0, 1, 0, 1.0, 0.6)
	assert.InDelta(t, tx, segs[0].X1, 1e-12)
	assert.Equal(t, 0.0, segs[0].Y1)

	// Code 10 mirrors the rule.
	segs = marchCell(nil, 0.6, 0, 0, 1, 1, 1, 0, 1, 0)
	require.Len(t, segs, 2)
	// Average below level: tl isolated by (left,top), br by (right,bottom).
	assert.Equal(t, 0.0, segs[0].X1)
	assert.Equal(t, 0.0, segs[0].Y2)
}

func TestSegmentLocality(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 2000; i++ {
		x, y := rng.Float64()*100, rng.Float64()*100
		cw, ch := 1+rng.Float64()*20, 1+rng.Float64()*20
		level := rng.Float64()
		segs := marchCell(nil, level, x, y, cw, ch,
			rng.Float64(), rng.Float64(), rng.Float64(), rng.Float64())
		for _, s := range segs {
			for _, pt := range [][2]float64{{s.X1, s.Y1}, {s.X2, s.Y2}} {
				require.GreaterOrEqual(t, pt[0], x-1e-9)
				require.LessOrEqual(t, pt[0], x+cw+1e-9)
				require.GreaterOrEqual(t, pt[1], y-1e-9)
				require.LessOrEqual(t, pt[1], y+ch+1e-9)
			}
		}
	}
}

func TestUniformFieldYieldsNoSegments(t *testing.T) {
	f := New(DefaultOptions())
	f.Reinitialize(280, 140, sketch.Full)

	for i := range f.v {
		f.v[i] = 2.0 // entirely above any level < 2
	}
	assert.Empty(t, f.contourAt(0.5))

	for i := range f.v {
		f.v[i] = -2.0
	}
	assert.Empty(t, f.contourAt(0.5))
}

func TestDegenerateFieldSkipsExtraction(t *testing.T) {
	f := New(DefaultOptions())
	f.Reinitialize(280, 140, sketch.Full)
	f.minV, f.maxV = 1.0, 1.0
	assert.Nil(t, f.ExtractContours(5))
}

// A single smooth interior peak over a flat low boundary must produce
// closed loops: every contour vertex is shared by exactly two segment
// endpoints.
func TestSinglePeakFormsClosedLoops(t *testing.T) {
	f := New(DefaultOptions())
	f.Reinitialize(280, 280, sketch.Full)

	cx, cy := 140.0, 140.0
	for r := 0; r < f.rows; r++ {
		for c := 0; c < f.cols; c++ {
			x, y := float64(c)*f.cellW, float64(r)*f.cellH
			d := math.Hypot(x-cx, y-cy)
			v := 1.0 - d/120.0
			if v < 0 {
				v = 0
			}
			f.v[r*f.cols+c] = v
		}
	}

	segs := f.contourAt(0.5)
	require.NotEmpty(t, segs)

	key := func(x, y float64) string { return fmt.Sprintf("%.5f:%.5f", x, y) }
	degree := make(map[string]int)
	for _, s := range segs {
		degree[key(s.X1, s.Y1)]++
		degree[key(s.X2, s.Y2)]++
	}
	for k, d := range degree {
		require.Equal(t, 2, d, "vertex %s touched %d times", k, d)
	}
}
