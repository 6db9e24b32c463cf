package importer

import (
	"fmt"
	"math"

	"github.com/piwi3910/floorplan/internal/engine"
	"github.com/piwi3910/floorplan/internal/model"
)

// Segment is a straight wall piece between two points, as produced by a
// room scan or a DXF LINE.
type Segment struct {
	Start model.Point2D `json:"start"`
	End   model.Point2D `json:"end"`
}

// ChainSegments joins segments into one closed outline. Starting from the
// first segment it repeatedly takes the unvisited segment whose nearer
// endpoint is closest to the chain tip, if within tolerance, and appends
// that segment's far endpoint. A final vertex that coincides with the
// start (within engine.SnapToleranceMm, or tolerance if smaller) is
// dropped. tolerance <= 0 uses engine.ChainToleranceMm.
func ChainSegments(segs []Segment, tolerance float64) model.Outline {
	if len(segs) == 0 {
		return nil
	}
	if tolerance <= 0 {
		tolerance = engine.ChainToleranceMm
	}
	used := make([]bool, len(segs))
	return chainFrom(segs, used, 0, tolerance)
}

// chainFrom grows one loop from segs[start], marking what it consumes.
func chainFrom(segs []Segment, used []bool, start int, tolerance float64) model.Outline {
	used[start] = true
	chain := model.Outline{segs[start].Start, segs[start].End}

	for {
		tip := chain[len(chain)-1]
		best, bestDist := -1, math.Inf(1)
		var far model.Point2D
		for i, s := range segs {
			if used[i] {
				continue
			}
			ds, de := distance(tip, s.Start), distance(tip, s.End)
			if ds <= de && ds < bestDist {
				best, bestDist, far = i, ds, s.End
			} else if de < ds && de < bestDist {
				best, bestDist, far = i, de, s.Start
			}
		}
		if best < 0 || bestDist > tolerance {
			break
		}
		used[best] = true
		chain = append(chain, far)
	}

	closing := math.Min(tolerance, engine.SnapToleranceMm)
	if len(chain) > 2 && distance(chain[0], chain[len(chain)-1]) <= closing {
		chain = chain[:len(chain)-1]
	}
	return chain
}

// chainAll chains every segment, returning each loop with at least three
// vertices.
func chainAll(segs []Segment, tolerance float64) []model.Outline {
	used := make([]bool, len(segs))
	var outlines []model.Outline
	for i := range segs {
		if used[i] {
			continue
		}
		if o := chainFrom(segs, used, i, tolerance); len(o) >= 3 {
			outlines = append(outlines, o)
		}
	}
	return outlines
}

// RoomFromSegments builds a polygon room from scanned wall segments. The
// outline is moved so its bounding box starts at the origin.
func RoomFromSegments(segs []Segment, tolerance, expansionGapMm float64) (model.Room, error) {
	outline := ChainSegments(segs, tolerance)
	if len(outline) < 3 {
		return model.Room{}, fmt.Errorf("segments form %d vertices, need at least 3", len(outline))
	}
	outline = normalizeOutline(outline)
	if outline.Area() < 1 {
		return model.Room{}, fmt.Errorf("segments enclose no area")
	}
	return model.NewPolygonRoom(outline, expansionGapMm), nil
}

func distance(a, b model.Point2D) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// normalizeOutline translates the outline so its bounding box starts at (0, 0).
func normalizeOutline(o model.Outline) model.Outline {
	if len(o) == 0 {
		return o
	}
	min, _ := o.BoundingBox()
	return o.Translate(-min.X, -min.Y)
}
