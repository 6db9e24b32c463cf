package engine

import (
	"math"

	"github.com/piwi3910/floorplan/internal/model"
	"gonum.org/v1/gonum/floats"
)

// StockArea returns the total area of all stock items in m².
func StockArea(stock []model.StockItem) float64 {
	areas := make([]float64, len(stock))
	for i, s := range stock {
		areas[i] = s.AreaM2()
	}
	return floats.Sum(areas)
}

// InstalledArea sums the area of pieces that come from stock or offcuts.
func InstalledArea(pieces []model.PlacedPiece) float64 {
	return pieceArea(pieces, true)
}

// NeededArea sums the area of pieces that still have to be bought.
func NeededArea(pieces []model.PlacedPiece) float64 {
	return pieceArea(pieces, false)
}

func pieceArea(pieces []model.PlacedPiece, installed bool) float64 {
	areas := make([]float64, 0, len(pieces))
	for _, p := range pieces {
		if p.IsInstalled() == installed {
			areas = append(areas, p.AreaM2())
		}
	}
	return floats.Sum(areas)
}

// WasteArea sums the area of remaining pieces.
func WasteArea(remaining []model.RemainingPiece) float64 {
	areas := make([]float64, len(remaining))
	for i, r := range remaining {
		areas[i] = r.AreaM2()
	}
	return floats.Sum(areas)
}

// Surplus is the stock area not accounted for by installed pieces or waste.
func Surplus(stockArea, installed, waste float64) float64 {
	return math.Max(0, stockArea-installed-waste)
}

// Overlaps reports whether two axis-aligned pieces share more than a
// geometry tolerance of area in both directions.
func Overlaps(a, b model.PlacedPiece) bool {
	dx := math.Min(a.X+a.LengthMm, b.X+b.LengthMm) - math.Max(a.X, b.X)
	dy := math.Min(a.Y+a.WidthMm, b.Y+b.WidthMm) - math.Max(a.Y, b.Y)
	return dx > GeometryToleranceMm && dy > GeometryToleranceMm
}

// FindOverlap returns the indices of the first overlapping pair, or ok=false.
func FindOverlap(pieces []model.PlacedPiece) (i, j int, ok bool) {
	for i = 0; i < len(pieces); i++ {
		for j = i + 1; j < len(pieces); j++ {
			if Overlaps(pieces[i], pieces[j]) {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

// finishAreas fills the area fields of r from its pieces and remaining list.
func finishAreas(r *model.LayoutResult, stock []model.StockItem, useStock bool) {
	r.InstalledAreaM2 = InstalledArea(r.Pieces)
	r.NeededAreaM2 = NeededArea(r.Pieces)
	stockArea := 0.0
	if useStock {
		stockArea = StockArea(stock)
	}
	r.SurplusAreaM2 = Surplus(stockArea, r.InstalledAreaM2, r.WasteAreaM2)
}
