package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/piwi3910/floorplan/internal/model"
)

// EdgeCutDimensions is the description on the aggregate tile cut record.
const EdgeCutDimensions = "Edge tiles (various dimensions)"

// GridLayout places tiles or sheets on a regular grid clipped to the room.
type GridLayout struct{}

func (GridLayout) Kind() Kind { return KindGrid }

// matchesCell reports whether a stock item has the cell's dimensions in
// either orientation.
func matchesCell(s model.StockItem, cellL, cellW float64) bool {
	same := math.Abs(s.LengthMm-cellL) <= StockMatchToleranceMm && math.Abs(s.WidthMm-cellW) <= StockMatchToleranceMm
	turned := math.Abs(s.LengthMm-cellW) <= StockMatchToleranceMm && math.Abs(s.WidthMm-cellL) <= StockMatchToleranceMm
	return same || turned
}

// stockTilePrices returns one price per matching stock unit, cheapest
// first. Unpriced units cost nothing.
func stockTilePrices(stock []model.StockItem, cellL, cellW float64) []float64 {
	var prices []float64
	for _, s := range stock {
		if !matchesCell(s, cellL, cellW) {
			continue
		}
		price := 0.0
		if s.PricePerUnit != nil {
			price = *s.PricePerUnit
		}
		for i := 0; i < s.Quantity; i++ {
			prices = append(prices, price)
		}
	}
	sort.Float64s(prices)
	return prices
}

// tileOffcut is the rectangle left over after cutting an edge cell from a
// full stock tile.
type tileOffcut struct {
	length, width float64
}

// edgeOffcut returns the larger rectangular remainder of a cellL x cellW
// tile cut down to w x h. Remainders narrower than MinUnitSizeMm are waste.
func edgeOffcut(cellL, cellW, w, h float64) (tileOffcut, bool) {
	along := tileOffcut{length: cellL - w, width: cellW}
	across := tileOffcut{length: cellL, width: cellW - h}
	best := along
	if across.length*across.width > along.length*along.width {
		best = across
	}
	if best.length < MinUnitSizeMm || best.width < MinUnitSizeMm {
		return tileOffcut{}, false
	}
	return best, true
}

// takeTileOffcut removes and reports the first offcut a w x h cell can be
// cut from, in either orientation.
func takeTileOffcut(offcuts *[]tileOffcut, w, h float64) bool {
	for i, o := range *offcuts {
		fits := o.length >= w-model.Epsilon && o.width >= h-model.Epsilon
		turned := o.width >= w-model.Epsilon && o.length >= h-model.Epsilon
		if fits || turned {
			*offcuts = append((*offcuts)[:i], (*offcuts)[i+1:]...)
			return true
		}
	}
	return false
}

// quarterTurn returns the rotation of the cell at (row, col) in a
// quarter-turn pattern. col may be -1.
func quarterTurn(row, col int) float64 {
	if (row+col)&1 == 0 {
		return 0
	}
	return 90
}

// Layout places tiles for req. Missing tile settings yield an empty
// result. Cells are clipped to the usable rectangle, polygon rooms drop
// cells whose clipped centre lies outside the room, and grids above
// MaxPlacements cells are refused.
//
// Edge waste is estimated as half a cell per edge cut. With
// ReuseEdgeOffcuts the remainder of each cut stock tile is kept, later
// edge cells are cut from it where it fits, and waste becomes the exact
// cut-away area less what was reused.
func (GridLayout) Layout(req Request) (model.LayoutResult, error) {
	if req.Tile == nil {
		return model.EmptyResult(), nil
	}
	ts := *req.Tile
	room := req.Room
	cellL := math.Max(ts.CellLengthMm(), MinUnitSizeMm)
	cellW := math.Max(ts.CellWidthMm(), MinUnitSizeMm)

	usableL := room.UsableLengthMm()
	usableW := room.UsableWidthMm()
	if usableL <= 0 || usableW <= 0 {
		return model.EmptyResult(), nil
	}

	// Counted in float64 so huge rooms cannot overflow past the guard.
	alongLength := math.Ceil(usableL / cellL)
	alongWidth := math.Ceil(usableW / cellW)
	if (alongLength+1)*alongWidth > MaxPlacements {
		return model.EmptyResult(), ErrTooManyPieces
	}
	tilesAlongLength := int(alongLength)
	tilesAlongWidth := int(alongWidth)

	var prices []float64
	if req.UseStock {
		prices = stockTilePrices(req.Stock, cellL, cellW)
	}
	origin := room.Origin()
	brick := ts.Pattern == model.TileBrick
	turn := ts.Orientation == model.OrientationQuarterTurn

	res := model.EmptyResult()
	tilesUsed, edgeCuts := 0, 0
	var offcuts []tileOffcut
	cutAway, reused := 0.0, 0.0
	for row := 0; row < tilesAlongWidth; row++ {
		rawY := float64(row) * cellW
		for col := -1; col < tilesAlongLength; col++ {
			rawX := float64(col) * cellL
			if brick && row%2 == 1 {
				rawX += cellL / 2
			}

			x0 := math.Max(0, rawX)
			x1 := math.Min(usableL, rawX+cellL)
			y0 := rawY
			y1 := math.Min(usableW, rawY+cellW)
			w, h := x1-x0, y1-y0
			if w < GeometryToleranceMm || h < GeometryToleranceMm {
				continue
			}
			if !room.Contains(origin.X+(x0+x1)/2, origin.Y+(y0+y1)/2) {
				continue
			}

			piece := model.PlacedPiece{X: x0, Y: y0, LengthMm: w, WidthMm: h}
			if turn {
				piece.Rotation = quarterTurn(row, col)
			}
			cut := w < cellL-GeometryToleranceMm || h < cellW-GeometryToleranceMm
			if cut {
				edgeCuts++
			}

			label := len(res.Pieces) + 1
			switch {
			case cut && ts.ReuseEdgeOffcuts && takeTileOffcut(&offcuts, w, h):
				piece.Source = model.SourceOffcut
				piece.Label = fmt.Sprintf("O%d", label)
				reused += w * h
			case tilesUsed < len(prices):
				piece.Source = model.SourceStock
				piece.Label = fmt.Sprintf("T%d", label)
				res.TotalCost += prices[tilesUsed]
				tilesUsed++
				if cut && ts.ReuseEdgeOffcuts {
					if o, ok := edgeOffcut(cellL, cellW, w, h); ok {
						offcuts = append(offcuts, o)
					}
				}
			default:
				piece.Source = model.SourceNeeded
				piece.Label = fmt.Sprintf("N%d", label)
			}
			if cut && piece.Source != model.SourceOffcut {
				cutAway += cellL*cellW - w*h
			}
			piece.Status = model.StatusFor(piece.Source)
			res.Pieces = append(res.Pieces, piece)
		}
	}

	if edgeCuts > 0 {
		res.Cuts = append(res.Cuts, model.CutRecord{
			EdgeCutCount:  edgeCuts,
			CutDimensions: EdgeCutDimensions,
		})
	}
	for i := tilesUsed; i < len(prices); i++ {
		res.Remaining = append(res.Remaining, model.RemainingPiece{LengthMm: cellL, WidthMm: cellW, Source: model.SourceStock})
	}

	edgeWaste := float64(edgeCuts) * cellL * cellW / 2
	if ts.ReuseEdgeOffcuts {
		edgeWaste = cutAway - reused
	}
	res.WasteAreaM2 = edgeWaste/1e6 + WasteArea(res.Remaining)
	// Unused offcuts are already inside edgeWaste.
	for _, o := range offcuts {
		res.Remaining = append(res.Remaining, model.RemainingPiece{LengthMm: o.length, WidthMm: o.width, Source: model.SourceOffcut})
	}
	finishAreas(&res, req.Stock, req.UseStock)

	if needed := res.CountBySource(model.SourceNeeded); needed > 0 {
		withWaste := math.Ceil(float64(needed) * (1 + req.WasteFactorPercent/100))
		suggestion := model.PurchaseSuggestion{
			UnitLengthMm:  cellL,
			UnitWidthMm:   cellW,
			QuantityValue: withWaste,
			UnitName:      unitNameOr(req.Material, "Tiles"),
		}
		if ts.TilesPerBox != nil && *ts.TilesPerBox > 0 {
			packs := int(math.Ceil(withWaste / float64(*ts.TilesPerBox)))
			suggestion.PacksNeeded = &packs
		}
		if ts.DefaultPricePerTile != nil {
			cost := *ts.DefaultPricePerTile * withWaste
			suggestion.EstimatedCost = &cost
			res.TotalCost += cost
		}
		res.Purchases = append(res.Purchases, suggestion)
	}
	return res, nil
}

// unitNameOr returns the material's unit name or fallback.
func unitNameOr(m model.Material, fallback string) string {
	if m.UnitName != "" {
		return m.UnitName
	}
	return fallback
}
