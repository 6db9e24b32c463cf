package engine

import (
	"math"

	"github.com/piwi3910/floorplan/internal/model"
)

// QuantityMode says how a continuous quantity was derived.
type QuantityMode string

const (
	ModeCoverage QuantityMode = "coverage"
	ModeSheet    QuantityMode = "sheet"
	ModeVolume   QuantityMode = "volume"
)

// ContinuousCalculator converts the usable area into a bulk quantity.
type ContinuousCalculator struct{}

func (ContinuousCalculator) Kind() Kind { return KindContinuous }

// Quantity returns the amount of material for req and the unit it is
// measured in. Coverage wins when set, sheet materials divide by the sheet
// area, everything else is area times thickness.
func (ContinuousCalculator) Quantity(req Request) (float64, string, QuantityMode) {
	m := req.Material
	s := req.Continuous
	area := req.Room.UsableAreaM2()

	var qty float64
	var unit string
	var mode QuantityMode

	coverage := s.CoveragePerUnit
	if coverage <= 0 {
		coverage = m.CoveragePerUnit
	}
	sheetL, sheetW := s.SheetLengthMm, s.SheetWidthMm
	if sheetL <= 0 {
		sheetL = m.DefaultLengthMm
	}
	if sheetW <= 0 {
		sheetW = m.DefaultWidthMm
	}
	isSheet := m.Unit == model.UnitSheet || (s.SheetLengthMm > 0 && s.SheetWidthMm > 0)

	switch {
	case coverage > 0:
		qty = area / coverage
		unit = unitNameOr(m, "Units")
		mode = ModeCoverage
	case isSheet && sheetL > 0 && sheetW > 0:
		qty = area / (sheetL * sheetW / 1e6)
		unit = unitNameOr(m, "Sheets")
		mode = ModeSheet
	default:
		thickness := s.ThicknessMm
		if thickness <= 0 {
			thickness = m.DefaultThicknessMm
		}
		qty = area * thickness / 1000
		unit = unitNameOr(m, "m³")
		mode = ModeVolume
	}

	if s.ApplyWasteFactor && req.WasteFactorPercent > 0 {
		qty *= 1 + req.WasteFactorPercent/100
	}
	if math.IsNaN(qty) || math.IsInf(qty, 0) || qty < 0 {
		qty = 0
	}
	return qty, unit, mode
}

// Layout returns a result without pieces: the whole usable area counts as
// installed and a single suggestion carries the fractional quantity.
func (c ContinuousCalculator) Layout(req Request) (model.LayoutResult, error) {
	qty, unit, _ := c.Quantity(req)

	res := model.EmptyResult()
	res.InstalledAreaM2 = req.Room.UsableAreaM2()
	suggestion := model.PurchaseSuggestion{
		QuantityValue: qty,
		UnitName:      unit,
	}
	if req.Material.PricePerUnit != nil {
		cost := qty * *req.Material.PricePerUnit
		suggestion.EstimatedCost = &cost
		res.TotalCost = cost
	}
	res.Purchases = append(res.Purchases, suggestion)
	return res, nil
}
