package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/floorplan/internal/model"
)

// sourceColor is the fill used for pieces of one source.
type sourceColor struct {
	R, G, B int
}

var sourceColors = map[model.PieceSource]sourceColor{
	model.SourceStock:  {R: 76, G: 175, B: 80}, // green
	model.SourceOffcut: {R: 255, G: 152, B: 0}, // orange
	model.SourceNeeded: {R: 244, G: 67, B: 54}, // red
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
	maxCutRows   = 25
)

// ExportPDF writes a layout plan: the room with every piece coloured by its
// source, followed by a summary page with areas, purchases and cuts.
func ExportPDF(path string, r Report) error {
	if r.Room.BoundingLengthMm() <= 0 || r.Room.BoundingWidthMm() <= 0 {
		return fmt.Errorf("room has no area to draw")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderPlanPage(pdf, r)

	pdf.AddPage()
	renderSummaryPage(pdf, r)

	return pdf.OutputFileAndClose(path)
}

// renderPlanPage draws the room outline and the placed pieces.
func renderPlanPage(pdf *fpdf.Fpdf, r Report) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%s: %s (%.0f x %.0f mm)", r.ProjectName, r.Material.Name, r.Room.BoundingLengthMm(), r.Room.BoundingWidthMm())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight

	outline := r.Room.EffectivePoints()
	min, max := outline.BoundingBox()
	roomW, roomH := max.X-min.X, max.Y-min.Y
	scale := math.Min(drawWidth/roomW, drawHeight/roomH)
	offsetX := marginLeft + (drawWidth-roomW*scale)/2
	offsetY := drawAreaTop

	toPage := func(x, y float64) (float64, float64) {
		return offsetX + (x-min.X)*scale, offsetY + (y-min.Y)*scale
	}

	// Room floor
	pts := make([]fpdf.PointType, len(outline))
	for i, p := range outline {
		x, y := toPage(p.X, p.Y)
		pts[i] = fpdf.PointType{X: x, Y: y}
	}
	pdf.SetFillColor(235, 235, 235)
	pdf.SetDrawColor(60, 60, 60)
	pdf.SetLineWidth(0.6)
	pdf.Polygon(pts, "FD")

	origin := r.Room.Origin()
	for _, p := range r.Result.Pieces {
		col, ok := sourceColors[p.Source]
		if !ok {
			col = sourceColor{R: 158, G: 158, B: 158}
		}
		px, py := toPage(origin.X+p.X, origin.Y+p.Y)
		pw, ph := p.LengthMm*scale, p.WidthMm*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.15)

		turned := math.Abs(math.Mod(p.Rotation, 90)) > 0.01
		if turned {
			pdf.TransformBegin()
			pdf.TransformRotate(-p.Rotation, px+pw/2, py+ph/2)
		}
		pdf.Rect(px, py, pw, ph, "FD")
		if pw > 12 && ph > 5 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)
			if w := pdf.GetStringWidth(p.Label); w < pw-1 {
				pdf.SetXY(px+(pw-w)/2, py+ph/2-2)
				pdf.CellFormat(w, 4, p.Label, "", 0, "C", false, 0, "")
			}
		}
		if turned {
			pdf.TransformEnd()
		}
	}

	drawDimensionAnnotations(pdf, roomW, roomH, offsetX, offsetY, roomW*scale, roomH*scale)
	drawLegend(pdf, r.Result, offsetY+roomH*scale+6)
}

// drawDimensionAnnotations adds length and width labels outside the room.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, length, width, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	lengthLabel := fmt.Sprintf("%.0f mm", length)
	lw := pdf.GetStringWidth(lengthLabel)
	pdf.SetXY(offsetX+(canvasW-lw)/2, offsetY+canvasH+1)
	pdf.CellFormat(lw, 4, lengthLabel, "", 0, "C", false, 0, "")

	widthLabel := fmt.Sprintf("%.0f mm", width)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	ww := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX-3-ww/2, offsetY+canvasH/2-2)
	pdf.CellFormat(ww, 4, widthLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawLegend shows the colour of each source with its piece count.
func drawLegend(pdf *fpdf.Fpdf, res model.LayoutResult, y float64) {
	pdf.SetFont("Helvetica", "", 8)
	x := marginLeft
	for _, src := range []model.PieceSource{model.SourceStock, model.SourceOffcut, model.SourceNeeded} {
		col := sourceColors[src]
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(x, y+0.5, 3, 3, "F")
		text := fmt.Sprintf("%s: %d", src, res.CountBySource(src))
		pdf.SetXY(x+4, y)
		w := pdf.GetStringWidth(text) + 2
		pdf.CellFormat(w, 4, text, "", 0, "L", false, 0, "")
		x += w + 10
	}
}

// renderSummaryPage draws the statistics, purchase list and cut list.
func renderSummaryPage(pdf *fpdf.Fpdf, r Report) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Layout Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18
	pdf.SetFont("Helvetica", "", 10)
	for _, item := range SummaryRows(r) {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(45, 6, item[0]+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(60, 6, item[1], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 6
	}

	// Right column: purchases then cuts
	x := marginLeft + 130
	ty := marginTop + 18
	ty = drawTable(pdf, PurchaseTable(r.Result), x, ty, 0)
	drawTable(pdf, CutTable(r.Result), x, ty+6, maxCutRows)

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by floorplan", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// drawTable renders t at (x, y) and returns the y below it. limit caps the
// number of rows when positive.
func drawTable(pdf *fpdf.Fpdf, t Table, x, y float64, limit int) float64 {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(x, y)
	pdf.CellFormat(100, 7, t.Name, "", 0, "L", false, 0, "")
	y += 8

	if len(t.Rows) == 0 {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetXY(x, y)
		pdf.CellFormat(100, 5, "None", "", 0, "L", false, 0, "")
		return y + 5
	}

	colW := (pageWidth - marginRight - x) / float64(len(t.Headers))
	pdf.SetFont("Helvetica", "B", 7)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range t.Headers {
		pdf.SetXY(x+float64(i)*colW, y)
		pdf.CellFormat(colW, 5, h, "1", 0, "C", true, 0, "")
	}
	y += 5

	pdf.SetFont("Helvetica", "", 7)
	for n, row := range t.Rows {
		if limit > 0 && n == limit {
			pdf.SetXY(x, y)
			pdf.CellFormat(100, 5, fmt.Sprintf("... %d more", len(t.Rows)-limit), "", 0, "L", false, 0, "")
			return y + 5
		}
		if n%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		for i, cell := range row {
			pdf.SetXY(x+float64(i)*colW, y)
			pdf.CellFormat(colW, 5, cell, "1", 0, "C", true, 0, "")
		}
		y += 5
	}
	return y
}

// labelFontSize returns a font size that fits a rectangle of w x h mm.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
