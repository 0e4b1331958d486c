package export

import (
	"strings"
	"testing"

	"github.com/san-kum/sketchlab/internal/sketch"
)

func TestFrameToSVG(t *testing.T) {
	f := sketch.Frame{
		Edges: []sketch.Edge{{X1: 0, Y1: 0, X2: 10, Y2: 10, Weight: 0.5}},
		Lines: [][]sketch.Vertex{{
			{X: 1, Y: 1, Depth: 1}, {X: 2, Y: 3, Depth: 0.9},
		}},
		Contours: [][]sketch.Segment{{{X1: 4, Y1: 4, X2: 5, Y2: 5}}},
	}

	svg := FrameToSVG(f, 100, 80)

	for _, want := range []string{
		`width="100"`,
		`stroke-opacity="0.500"`,
		`d="M1.0,1.0 L2.0,3.0"`,
		`<line x1="4.0" y1="4.0" x2="5.0" y2="5.0"/>`,
		"</svg>",
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %q", want)
		}
	}
}

func TestFrameToSVGEmptyFrame(t *testing.T) {
	svg := FrameToSVG(sketch.Frame{}, 10, 10)
	if !strings.HasPrefix(svg, `<?xml`) || !strings.Contains(svg, "</svg>") {
		t.Error("empty frame should still produce a valid document")
	}
}
