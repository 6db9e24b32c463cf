package model

import "math"

// SkirtingSummary holds the skirting board requirements for a room.
type SkirtingSummary struct {
	PerimeterMm      float64 `json:"perimeter_mm"`        // room perimeter
	OpeningsMm       float64 `json:"openings_mm"`         // door openings left unskirted
	TotalLinearMM    float64 `json:"total_linear_mm"`     // board length needed without waste
	WastePercent     float64 `json:"waste_percent"`       // waste percentage applied
	TotalWithWasteMM float64 `json:"total_with_waste_mm"` // rounded up to whole mm
	BoardLengthMm    float64 `json:"board_length_mm"`
	BoardsNeeded     int     `json:"boards_needed"`
	WallCount        int     `json:"wall_count"` // number of wall runs
}

// CalculateSkirting computes the skirting needed along the room walls.
// openingsMm is subtracted from the perimeter; boardLengthMm of 0 skips
// the board count.
func CalculateSkirting(room Room, openingsMm, boardLengthMm, wastePercent float64) SkirtingSummary {
	perimeter := room.PerimeterMm()
	linear := math.Max(0, perimeter-math.Max(0, openingsMm))

	wasteFactor := 1.0 + (wastePercent / 100.0)
	withWaste := math.Ceil(linear * wasteFactor)

	boards := 0
	if boardLengthMm > 0 {
		boards = int(math.Ceil(withWaste / boardLengthMm))
	}

	walls := len(room.EffectivePoints())
	if walls < 3 {
		walls = 0
	}

	return SkirtingSummary{
		PerimeterMm:      perimeter,
		OpeningsMm:       openingsMm,
		TotalLinearMM:    linear,
		WastePercent:     wastePercent,
		TotalWithWasteMM: withWaste,
		BoardLengthMm:    boardLengthMm,
		BoardsNeeded:     boards,
		WallCount:        walls,
	}
}
