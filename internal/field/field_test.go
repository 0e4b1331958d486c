package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/sketchlab/internal/sketch"
)

func TestReinitializeDims(t *testing.T) {
	f := New(DefaultOptions())
	f.Reinitialize(280, 140, sketch.Full)

	rows, cols := f.Dims()
	assert.Equal(t, int(280/DefaultOptions().ResolutionFull)+1, cols)
	assert.Equal(t, int(140/DefaultOptions().ResolutionFull)+1, rows)
	assert.Len(t, f.v, rows*cols)

	f.Reinitialize(280, 140, sketch.Preview)
	pRows, pCols := f.Dims()
	assert.Less(t, pRows*pCols, rows*cols, "preview grid must be coarser")
}

func TestAdvanceDeterministic(t *testing.T) {
	run := func() [][]sketch.Segment {
		f := New(DefaultOptions())
		f.Reinitialize(280, 140, sketch.Full)
		var last [][]sketch.Segment
		for i := 0; i < 10; i++ {
			last = f.Advance(sketch.Pointer{X: 0.3, Y: 0.7}, sketch.Full).Contours
		}
		return last
	}

	a, b := run(), run()
	require.Equal(t, len(a), len(b))
	for i := range a {
		require.Equal(t, a[i], b[i], "level %d", i)
	}
}

func TestPointerBumpRaisesField(t *testing.T) {
	o := DefaultOptions()
	f := New(o)
	f.Reinitialize(280, 280, sketch.Full)

	f.RebuildField(1.0, sketch.Pointer{X: 0.5, Y: 0.5}, o)
	center := f.v[(f.rows/2)*f.cols+f.cols/2]

	f.RebuildField(1.0, sketch.Pointer{X: -10, Y: -10}, o)
	flat := f.v[(f.rows/2)*f.cols+f.cols/2]

	assert.Greater(t, center, flat, "pointer bump should raise the nearby terrain")
}

func TestLevelCountFollowsQuality(t *testing.T) {
	o := DefaultOptions()
	f := New(o)
	f.Reinitialize(280, 280, sketch.Full)

	full := f.Advance(sketch.Pointer{X: 0.5, Y: 0.5}, sketch.Full)
	assert.Len(t, full.Contours, o.LevelsFull)

	prev := f.Advance(sketch.Pointer{X: 0.5, Y: 0.5}, sketch.Preview)
	assert.Len(t, prev.Contours, o.LevelsPreview)
}
