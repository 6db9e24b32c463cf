package model

import (
	"fmt"
	"math"
)

// RoomShape selects how a room's outline is described.
type RoomShape string

const (
	ShapeRectangular RoomShape = "rectangular"
	ShapePolygon     RoomShape = "polygon"
)

// InstallPattern is the orientation of the installed material relative to
// the room walls.
type InstallPattern string

const (
	PatternStraight InstallPattern = "straight"
	PatternDiagonal InstallPattern = "diagonal"
)

// Default room values for new projects.
const (
	DefaultRoomLengthMm   = 5000.0
	DefaultRoomWidthMm    = 4000.0
	DefaultExpansionGapMm = 10.0
)

// Room describes the surface to be covered. Rectangular rooms use LengthMm
// and WidthMm with the origin at the top-left corner. Polygon rooms use
// Points in absolute coordinates; LengthMm and WidthMm then hold the
// bounding box dimensions.
type Room struct {
	Name           string         `json:"name,omitempty"`
	Shape          RoomShape      `json:"shape"`
	LengthMm       float64        `json:"length_mm"`
	WidthMm        float64        `json:"width_mm"`
	Points         Outline        `json:"points,omitempty"`
	ExpansionGapMm float64        `json:"expansion_gap_mm"`
	Pattern        InstallPattern `json:"pattern"`
	AngleDegrees   float64        `json:"angle_degrees"`
}

// NewRectangularRoom creates a straight-pattern rectangular room.
func NewRectangularRoom(length, width, gap float64) Room {
	return Room{
		Shape:          ShapeRectangular,
		LengthMm:       length,
		WidthMm:        width,
		ExpansionGapMm: gap,
		Pattern:        PatternStraight,
	}
}

// NewPolygonRoom creates a straight-pattern polygon room. LengthMm and
// WidthMm are filled from the bounding box of points.
func NewPolygonRoom(points Outline, gap float64) Room {
	min, max := points.BoundingBox()
	pts := make(Outline, len(points))
	copy(pts, points)
	return Room{
		Shape:          ShapePolygon,
		LengthMm:       max.X - min.X,
		WidthMm:        max.Y - min.Y,
		Points:         pts,
		ExpansionGapMm: gap,
		Pattern:        PatternStraight,
	}
}

// DefaultRoom returns the 5000 x 4000 mm room used for new projects.
func DefaultRoom() Room {
	return NewRectangularRoom(DefaultRoomLengthMm, DefaultRoomWidthMm, DefaultExpansionGapMm)
}

// IsPolygon reports whether the room is described by its Points.
func (r Room) IsPolygon() bool {
	return r.Shape == ShapePolygon
}

// EffectivePoints returns the room outline. Rectangular rooms synthesize
// their four corners.
func (r Room) EffectivePoints() Outline {
	if r.IsPolygon() {
		return r.Points
	}
	return Outline{
		{X: 0, Y: 0},
		{X: r.LengthMm, Y: 0},
		{X: r.LengthMm, Y: r.WidthMm},
		{X: 0, Y: r.WidthMm},
	}
}

// BoundingLengthMm is the X extent of the room.
func (r Room) BoundingLengthMm() float64 {
	if r.IsPolygon() && len(r.Points) > 0 {
		min, max := r.Points.BoundingBox()
		return max.X - min.X
	}
	return r.LengthMm
}

// BoundingWidthMm is the Y extent of the room.
func (r Room) BoundingWidthMm() float64 {
	if r.IsPolygon() && len(r.Points) > 0 {
		min, max := r.Points.BoundingBox()
		return max.Y - min.Y
	}
	return r.WidthMm
}

// UsableLengthMm is the bounding length minus the expansion gap on both sides.
func (r Room) UsableLengthMm() float64 {
	return math.Max(0, r.BoundingLengthMm()-2*r.ExpansionGapMm)
}

// UsableWidthMm is the bounding width minus the expansion gap on both sides.
func (r Room) UsableWidthMm() float64 {
	return math.Max(0, r.BoundingWidthMm()-2*r.ExpansionGapMm)
}

// PerimeterMm is the length of the room outline.
func (r Room) PerimeterMm() float64 {
	return r.EffectivePoints().Perimeter()
}

// GrossAreaM2 is the floor area enclosed by the walls.
func (r Room) GrossAreaM2() float64 {
	if r.IsPolygon() {
		return r.Points.Area() / 1e6
	}
	return math.Max(0, r.LengthMm) * math.Max(0, r.WidthMm) / 1e6
}

// UsableAreaM2 is the area left after the expansion gap. Polygon rooms use
// gross area minus a perimeter strip, which slightly overstates the loss at
// reflex corners.
func (r Room) UsableAreaM2() float64 {
	if r.IsPolygon() {
		return math.Max(0, r.GrossAreaM2()-r.PerimeterMm()*r.ExpansionGapMm/1e6)
	}
	return r.UsableLengthMm() * r.UsableWidthMm() / 1e6
}

// Contains reports whether a point in room coordinates lies inside the room.
// Rectangle bounds are inclusive; polygon edges follow ray casting.
func (r Room) Contains(x, y float64) bool {
	if r.IsPolygon() {
		return r.Points.Contains(x, y)
	}
	return x >= 0 && x <= r.LengthMm && y >= 0 && y <= r.WidthMm
}

// Origin is the room coordinate of layout position (0, 0): the top-left
// corner of the bounding box moved inward by the expansion gap.
func (r Room) Origin() Point2D {
	if r.IsPolygon() && len(r.Points) > 0 {
		min, _ := r.Points.BoundingBox()
		return Point2D{X: min.X + r.ExpansionGapMm, Y: min.Y + r.ExpansionGapMm}
	}
	return Point2D{X: r.ExpansionGapMm, Y: r.ExpansionGapMm}
}

// Validate checks for values that can only come from bad input. Degenerate
// but finite rooms are accepted; the engine returns empty results for them.
func (r Room) Validate() error {
	switch r.Shape {
	case ShapeRectangular, ShapePolygon:
	default:
		return fmt.Errorf("unknown room shape %q", r.Shape)
	}
	switch r.Pattern {
	case PatternStraight, PatternDiagonal, "":
	default:
		return fmt.Errorf("unknown install pattern %q", r.Pattern)
	}
	values := []float64{r.LengthMm, r.WidthMm, r.ExpansionGapMm, r.AngleDegrees}
	for _, p := range r.Points {
		values = append(values, p.X, p.Y)
	}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("room contains a non-finite value")
		}
	}
	for _, v := range values[:3] {
		if v > MaxDimensionMm {
			return fmt.Errorf("room dimension %.0f mm exceeds the limit of %.0f mm", v, MaxDimensionMm)
		}
	}
	for _, p := range r.Points {
		if math.Abs(p.X) > MaxDimensionMm || math.Abs(p.Y) > MaxDimensionMm {
			return fmt.Errorf("room point (%.0f, %.0f) exceeds the limit of %.0f mm", p.X, p.Y, MaxDimensionMm)
		}
	}
	if r.LengthMm < 0 || r.WidthMm < 0 {
		return fmt.Errorf("room dimensions must not be negative (%.1f x %.1f)", r.LengthMm, r.WidthMm)
	}
	if r.ExpansionGapMm < 0 {
		return fmt.Errorf("expansion gap must not be negative (%.1f)", r.ExpansionGapMm)
	}
	return nil
}
