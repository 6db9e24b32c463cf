package engine

import (
	"math"

	"github.com/piwi3910/floorplan/internal/model"
	"gonum.org/v1/gonum/mat"
)

// Transform maps a diagonally installed room into a frame where the
// installation runs straight, and maps placed pieces back.
type Transform struct {
	AngleDegrees float64
	// Offset is added to rotated points so the rotated bounding box starts
	// at the origin.
	Offset model.Point2D

	toRotated   *mat.Dense // rotation by -θ
	fromRotated *mat.Dense // rotation by +θ
	room        model.Room
	points      model.Outline // rotated and shifted outline
}

// rotationMatrix returns the 2x2 counter-clockwise rotation by rad.
func rotationMatrix(rad float64) *mat.Dense {
	c, s := math.Cos(rad), math.Sin(rad)
	return mat.NewDense(2, 2, []float64{
		c, -s,
		s, c,
	})
}

// rotatePoints applies r to every point of o in one matrix product.
func rotatePoints(r *mat.Dense, o model.Outline) model.Outline {
	if len(o) == 0 {
		return model.Outline{}
	}
	pts := mat.NewDense(2, len(o), nil)
	for i, p := range o {
		pts.Set(0, i, p.X)
		pts.Set(1, i, p.Y)
	}
	var out mat.Dense
	out.Mul(r, pts)
	rotated := make(model.Outline, len(o))
	for i := range o {
		rotated[i] = model.Point2D{X: out.At(0, i), Y: out.At(1, i)}
	}
	return rotated
}

func rotatePoint(r *mat.Dense, p model.Point2D) model.Point2D {
	var out mat.VecDense
	out.MulVec(r, mat.NewVecDense(2, []float64{p.X, p.Y}))
	return model.Point2D{X: out.AtVec(0), Y: out.AtVec(1)}
}

// NewTransform prepares the rotation for room by its AngleDegrees.
func NewTransform(room model.Room) *Transform {
	rad := room.AngleDegrees * math.Pi / 180
	t := &Transform{
		AngleDegrees: room.AngleDegrees,
		toRotated:    rotationMatrix(-rad),
		fromRotated:  rotationMatrix(rad),
		room:         room,
	}
	rotated := rotatePoints(t.toRotated, room.EffectivePoints())
	min, _ := rotated.BoundingBox()
	t.Offset = model.Point2D{X: -min.X, Y: -min.Y}
	t.points = rotated.Translate(t.Offset.X, t.Offset.Y)
	return t
}

// IsDiagonal reports whether room needs the rotation transform.
func IsDiagonal(room model.Room) bool {
	return room.Pattern == model.PatternDiagonal && math.Abs(room.AngleDegrees) > AngleToleranceDeg
}

// RotatedRoom returns the straight-pattern polygon room whose outline is
// the rotated room shifted to the origin. The expansion gap is kept.
func (t *Transform) RotatedRoom() model.Room {
	r := model.NewPolygonRoom(t.points, t.room.ExpansionGapMm)
	r.Name = t.room.Name
	return r
}

// TransformBack maps a piece placed in the rotated room's coordinates back
// into the original room's coordinates. The piece is rotated about its
// centre, so X and Y become the top-left of its unrotated extents around
// the mapped centre, and Rotation grows by the room angle.
func (t *Transform) TransformBack(p model.PlacedPiece) model.PlacedPiece {
	center := model.Point2D{
		X: p.X + p.LengthMm/2 - t.Offset.X,
		Y: p.Y + p.WidthMm/2 - t.Offset.Y,
	}
	c := rotatePoint(t.fromRotated, center)
	p.X = c.X - p.LengthMm/2
	p.Y = c.Y - p.WidthMm/2
	p.Rotation += t.AngleDegrees
	return p
}
