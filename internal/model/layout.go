package model

import "math"

// PieceSource says where a placed piece comes from.
type PieceSource string

const (
	SourceStock  PieceSource = "stock"
	SourceOffcut PieceSource = "offcut"
	SourceNeeded PieceSource = "needed"
)

// PieceStatus says whether a placed piece can be installed now or still has
// to be bought.
type PieceStatus string

const (
	StatusInstalled PieceStatus = "installed"
	StatusNeeded    PieceStatus = "needed"
)

// StatusFor returns the status implied by a piece source.
func StatusFor(src PieceSource) PieceStatus {
	if src == SourceNeeded {
		return StatusNeeded
	}
	return StatusInstalled
}

// PlacedPiece is one unit at its final position. X and Y are the top-left
// corner in layout coordinates (origin at the usable area's top-left).
type PlacedPiece struct {
	X        float64     `json:"x"`
	Y        float64     `json:"y"`
	LengthMm float64     `json:"length_mm"`
	WidthMm  float64     `json:"width_mm"`
	Label    string      `json:"label"`
	Source   PieceSource `json:"source"`
	Status   PieceStatus `json:"status"`
	Rotation float64     `json:"rotation"` // degrees
}

// AreaM2 returns the area of the piece.
func (p PlacedPiece) AreaM2() float64 {
	return p.LengthMm * p.WidthMm / 1e6
}

// IsInstalled reports whether the piece comes from stock or an offcut.
func (p PlacedPiece) IsInstalled() bool {
	return p.Status == StatusInstalled
}

// CutType tells which end of a plank was cut.
type CutType string

const (
	CutStart CutType = "startCut"
	CutEnd   CutType = "endCut"
)

// CutRecord describes a cut. Plank layouts fill the row fields; tile layouts
// fill EdgeCutCount and CutDimensions with one aggregate record.
type CutRecord struct {
	Row            int     `json:"row,omitempty"`
	CutType        CutType `json:"cut_type,omitempty"`
	FromLengthMm   float64 `json:"from_length_mm,omitempty"`
	CutToMm        float64 `json:"cut_to_mm,omitempty"`
	OffcutLengthMm float64 `json:"offcut_length_mm,omitempty"`
	WidthMm        float64 `json:"width_mm,omitempty"`
	EdgeCutCount   int     `json:"edge_cut_count,omitempty"`
	CutDimensions  string  `json:"cut_dimensions,omitempty"`
}

// IsTileCut reports whether the record is the aggregate tile form.
func (c CutRecord) IsTileCut() bool {
	return c.EdgeCutCount > 0 || c.CutDimensions != ""
}

// RemainingPiece is material left over after the layout.
type RemainingPiece struct {
	LengthMm float64     `json:"length_mm"`
	WidthMm  float64     `json:"width_mm"`
	Source   PieceSource `json:"source"`
}

// AreaM2 returns the area of the piece.
func (r RemainingPiece) AreaM2() float64 {
	return r.LengthMm * r.WidthMm / 1e6
}

// PurchaseSuggestion is what has to be bought. Continuous materials use
// 0 x 0 unit dimensions and a fractional QuantityValue.
type PurchaseSuggestion struct {
	UnitLengthMm  float64  `json:"unit_length_mm"`
	UnitWidthMm   float64  `json:"unit_width_mm"`
	QuantityValue float64  `json:"quantity_value"`
	PacksNeeded   *int     `json:"packs_needed,omitempty"`
	EstimatedCost *float64 `json:"estimated_cost,omitempty"`
	UnitName      string   `json:"unit_name,omitempty"`
}

// QuantityNeeded rounds QuantityValue up to whole units.
func (s PurchaseSuggestion) QuantityNeeded() int {
	return int(math.Ceil(s.QuantityValue - Epsilon))
}

// LayoutResult is the full output of one layout pass.
type LayoutResult struct {
	Pieces          []PlacedPiece        `json:"pieces"`
	Cuts            []CutRecord          `json:"cuts"`
	Remaining       []RemainingPiece     `json:"remaining"`
	Purchases       []PurchaseSuggestion `json:"purchases"`
	InstalledAreaM2 float64              `json:"installed_area_m2"`
	NeededAreaM2    float64              `json:"needed_area_m2"`
	WasteAreaM2     float64              `json:"waste_area_m2"`
	SurplusAreaM2   float64              `json:"surplus_area_m2"`
	TotalCost       float64              `json:"total_cost"`
}

// EmptyResult returns a result with non-nil empty slices.
func EmptyResult() LayoutResult {
	return LayoutResult{
		Pieces:    []PlacedPiece{},
		Cuts:      []CutRecord{},
		Remaining: []RemainingPiece{},
		Purchases: []PurchaseSuggestion{},
	}
}

// IsComplete reports whether stock covers the room.
func (r LayoutResult) IsComplete() bool {
	return r.NeededAreaM2 <= CompleteToleranceM2
}

// CountBySource returns how many pieces came from src.
func (r LayoutResult) CountBySource(src PieceSource) int {
	n := 0
	for _, p := range r.Pieces {
		if p.Source == src {
			n++
		}
	}
	return n
}
