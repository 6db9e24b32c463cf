package model

import "math"

// PurchaseEstimate is an area-only estimate of how many units to buy,
// computed without running a layout.
type PurchaseEstimate struct {
	UsableAreaM2     float64 `json:"usable_area_m2"`
	UnitAreaM2       float64 `json:"unit_area_m2"`
	UnitsNeededExact float64 `json:"units_needed_exact"` // fractional number of units
	UnitsNeededMin   int     `json:"units_needed_min"`   // ceiling of exact
	UnitsWithWaste   int     `json:"units_with_waste"`   // including waste factor
	WastePercent     float64 `json:"waste_percent"`
	EstimatedCost    float64 `json:"estimated_cost"`
	PricePerUnit     float64 `json:"price_per_unit"`
}

// CalculatePurchaseEstimate divides the room's usable area by the unit area
// and adds a waste percentage. It is the quick number shown next to a
// layout, not a replacement for one.
func CalculatePurchaseEstimate(room Room, unitLength, unitWidth, wastePercent, pricePerUnit float64) PurchaseEstimate {
	area := room.UsableAreaM2()
	unitArea := unitLength * unitWidth / 1e6
	if unitArea <= 0 {
		return PurchaseEstimate{
			UsableAreaM2: area,
			WastePercent: wastePercent,
		}
	}

	exact := area / unitArea
	minUnits := int(math.Ceil(exact))

	wasteFactor := 1.0 + (wastePercent / 100.0)
	withWaste := int(math.Ceil(exact * wasteFactor))
	if withWaste < minUnits {
		withWaste = minUnits
	}

	return PurchaseEstimate{
		UsableAreaM2:     area,
		UnitAreaM2:       unitArea,
		UnitsNeededExact: exact,
		UnitsNeededMin:   minUnits,
		UnitsWithWaste:   withWaste,
		WastePercent:     wastePercent,
		EstimatedCost:    float64(withWaste) * pricePerUnit,
		PricePerUnit:     pricePerUnit,
	}
}
