package field

import (
	"math"

	"github.com/san-kum/sketchlab/internal/sketch"
)

// interpEps guards the edge interpolation against near-equal corner
// values; below it the crossing defaults to the edge midpoint.
const interpEps = 1e-12

// crossing linearly interpolates the level crossing between two corner
// samples. Degenerate edges (|v2-v1| ~ 0) return the midpoint rather
// than propagating NaN.
func crossing(x1, y1, v1, x2, y2, v2, level float64) (float64, float64) {
	t := 0.5
	if d := v2 - v1; math.Abs(d) > interpEps {
		t = (level - v1) / d
	}
	return x1 + (x2-x1)*t, y1 + (y2-y1)*t
}

// marchCell classifies one cell's corners against the level and appends
// the resulting segments. Corner code: 8*tl + 4*tr + 2*br + 1*bl, where a
// bit is set when the corner is >= level. Codes 0 and 15 produce nothing.
//
// The ambiguous saddle codes 5 and 10 are resolved by comparing the mean
// of the four corners against the level. That is the standard
// center-average tie-break, kept deliberately over an asymptotic decider:
// the visual output depends on it.
func marchCell(segs []sketch.Segment, level, x, y, cw, ch, tl, tr, br, bl float64) []sketch.Segment {
	code := 0
	if tl >= level {
		code |= 8
	}
	if tr >= level {
		code |= 4
	}
	if br >= level {
		code |= 2
	}
	if bl >= level {
		code |= 1
	}
	if code == 0 || code == 15 {
		return segs
	}

	top := func() (float64, float64) { return crossing(x, y, tl, x+cw, y, tr, level) }
	right := func() (float64, float64) { return crossing(x+cw, y, tr, x+cw, y+ch, br, level) }
	bottom := func() (float64, float64) { return crossing(x, y+ch, bl, x+cw, y+ch, br, level) }
	left := func() (float64, float64) { return crossing(x, y, tl, x, y+ch, bl, level) }

	seg := func(ax, ay, bx, by float64) {
		segs = append(segs, sketch.Segment{X1: ax, Y1: ay, X2: bx, Y2: by})
	}
	join := func(a, b func() (float64, float64)) {
		ax, ay := a()
		bx, by := b()
		seg(ax, ay, bx, by)
	}

	switch code {
	case 1, 14:
		join(left, bottom)
	case 2, 13:
		join(bottom, right)
	case 3, 12:
		join(left, right)
	case 4, 11:
		join(top, right)
	case 6, 9:
		join(top, bottom)
	case 7, 8:
		join(left, top)
	case 5:
		// tr and bl above. Center above joins them through the middle.
		if (tl+tr+br+bl)/4 >= level {
			join(left, top)
			join(right, bottom)
		} else {
			join(top, right)
			join(bottom, left)
		}
	case 10:
		// tl and br above.
		if (tl+tr+br+bl)/4 >= level {
			join(top, right)
			join(bottom, left)
		} else {
			join(left, top)
			join(right, bottom)
		}
	}
	return segs
}
