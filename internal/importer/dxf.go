package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/piwi3910/floorplan/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

// DXFOptions controls how a drawing becomes a room.
type DXFOptions struct {
	// Scale converts drawing units to millimetres. Zero means 1.
	Scale float64
	// ChainToleranceMm joins loose LINE and ARC endpoints. Zero means 1mm.
	ChainToleranceMm float64
	ExpansionGapMm   float64
}

// RoomImportResult holds the outcome of a room import.
type RoomImportResult struct {
	Room     *model.Room
	Errors   []string
	Warnings []string
}

// ImportRoomDXF reads a floor outline from a DXF file. Closed LWPOLYLINEs
// and chains of LINE and ARC entities are candidate outlines; the largest
// becomes the room.
func ImportRoomDXF(path string, opts DXFOptions) RoomImportResult {
	result := RoomImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}
	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	tolerance := opts.ChainToleranceMm
	if tolerance <= 0 {
		tolerance = 1
	}

	var outlines []model.Outline
	var segments []Segment
	skipped := 0
	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			outline := lwPolylineToOutline(e)
			if len(outline) >= 3 {
				outlines = append(outlines, outline)
			} else {
				result.Warnings = append(result.Warnings, "Skipped LWPOLYLINE with fewer than 3 vertices")
			}
		case *entity.Line:
			segments = append(segments, Segment{
				Start: model.Point2D{X: e.Start[0], Y: e.Start[1]},
				End:   model.Point2D{X: e.End[0], Y: e.End[1]},
			})
		case *entity.Arc:
			pts := arcToPoints(e, 16)
			for i := 0; i+1 < len(pts); i++ {
				segments = append(segments, Segment{Start: pts[i], End: pts[i+1]})
			}
		default:
			skipped++
		}
	}
	if skipped > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Skipped %d unsupported entities", skipped))
	}

	outlines = append(outlines, chainAll(segments, tolerance/scale)...)
	if len(outlines) == 0 {
		result.Errors = append(result.Errors, "No closed outline found in DXF file")
		return result
	}

	sort.SliceStable(outlines, func(i, j int) bool {
		return outlines[i].Area() > outlines[j].Area()
	})
	if len(outlines) > 1 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Found %d outlines, using the largest", len(outlines)))
	}

	outline := make(model.Outline, len(outlines[0]))
	for i, p := range outlines[0] {
		outline[i] = model.Point2D{X: p.X * scale, Y: p.Y * scale}
	}
	outline = normalizeOutline(outline)
	if outline.Area() < 1 {
		result.Errors = append(result.Errors, "Outline encloses no area")
		return result
	}

	room := model.NewPolygonRoom(outline, opts.ExpansionGapMm)
	result.Room = &room
	return result
}

// lwPolylineToOutline converts a DXF LWPOLYLINE entity to an Outline.
// Bulge values on vertices produce interpolated arc segments.
func lwPolylineToOutline(lw *entity.LwPolyline) model.Outline {
	var outline model.Outline
	for i, v := range lw.Vertices {
		current := model.Point2D{X: v[0], Y: v[1]}
		bulge := 0.0
		if i < len(lw.Bulges) {
			bulge = lw.Bulges[i]
		}
		if math.Abs(bulge) > model.Epsilon {
			nv := lw.Vertices[(i+1)%len(lw.Vertices)]
			arc := bulgeArcPoints(current, model.Point2D{X: nv[0], Y: nv[1]}, bulge, 16)
			outline = append(outline, arc[:len(arc)-1]...)
			continue
		}
		outline = append(outline, current)
	}
	return outline
}

// bulgeArcPoints generates points along an arc defined by two endpoints and
// a DXF bulge factor, the tangent of a quarter of the included angle.
func bulgeArcPoints(p1, p2 model.Point2D, bulge float64, numSegments int) model.Outline {
	mx, my := (p1.X+p2.X)/2, (p1.Y+p2.Y)/2
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	chord := math.Hypot(dx, dy)
	if chord < model.Epsilon {
		return model.Outline{p1, p2}
	}

	sagitta := math.Abs(bulge) * chord / 2
	radius := (chord*chord/(4*sagitta) + sagitta) / 2

	perpX, perpY := -dy/chord, dx/chord
	if bulge > 0 {
		perpX, perpY = -perpX, -perpY
	}
	dist := radius - sagitta
	cx, cy := mx+perpX*dist, my+perpY*dist

	start := math.Atan2(p1.Y-cy, p1.X-cx)
	end := math.Atan2(p2.Y-cy, p2.X-cx)
	if bulge < 0 && end > start {
		end -= 2 * math.Pi
	}
	if bulge > 0 && end < start {
		end += 2 * math.Pi
	}

	pts := make(model.Outline, 0, numSegments+1)
	for i := 0; i <= numSegments; i++ {
		a := start + float64(i)/float64(numSegments)*(end-start)
		pts = append(pts, model.Point2D{X: cx + radius*math.Cos(a), Y: cy + radius*math.Sin(a)})
	}
	return pts
}

// arcToPoints converts a DXF ARC entity to a series of points.
func arcToPoints(a *entity.Arc, numSegments int) []model.Point2D {
	cx, cy := a.Circle.Center[0], a.Circle.Center[1]
	r := a.Circle.Radius
	start := a.Angle[0] * math.Pi / 180
	end := a.Angle[1] * math.Pi / 180
	if end <= start {
		end += 2 * math.Pi
	}

	pts := make([]model.Point2D, numSegments+1)
	for i := 0; i <= numSegments; i++ {
		angle := start + float64(i)/float64(numSegments)*(end-start)
		pts[i] = model.Point2D{X: cx + r*math.Cos(angle), Y: cy + r*math.Sin(angle)}
	}
	return pts
}
