package dataset

import (
	"fmt"
	"path/filepath"

	"github.com/spnforge/spngen/petri"
	"github.com/spnforge/spngen/visualization"
)

// SVGSink renders each accepted candidate's structure to an SVG file named
// after its UUID, bridging through petri.FromMatrix so the visualization
// package never needs to know about spn.Matrix. Write is safe for
// concurrent use: visualization.SaveSVG opens its own file per call, so
// there is no shared writer state to guard.
type SVGSink struct {
	dir string
}

// NewSVGSink renders into dir, which must already exist.
func NewSVGSink(dir string) *SVGSink { return &SVGSink{dir: dir} }

func (s *SVGSink) Write(a Accepted) error {
	net := petri.FromMatrix(a.Record.Matrix)
	path := filepath.Join(s.dir, fmt.Sprintf("%s.svg", a.ID.String()))
	if err := visualization.SaveSVG(net, path); err != nil {
		return fmt.Errorf("dataset: rendering svg for %s: %w", a.ID, err)
	}
	return nil
}
