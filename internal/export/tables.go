// Package export writes layout results as CSV, XLSX and PDF documents.
package export

import (
	"fmt"
	"strconv"

	"github.com/piwi3910/floorplan/internal/model"
)

// Table is one flat view of a layout result.
type Table struct {
	Name    string
	Headers []string
	Rows    [][]string
}

// Report is everything the document exporters need besides the result.
type Report struct {
	ProjectName string
	Room        model.Room
	Material    model.Material
	Result      model.LayoutResult
	Currency    string
}

func mm(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// PlacementTable has one row per placed piece.
func PlacementTable(res model.LayoutResult) Table {
	t := Table{
		Name:    "Placement",
		Headers: []string{"Label", "X(mm)", "Y(mm)", "Length(mm)", "Width(mm)", "Source", "Status", "Rotation"},
	}
	for _, p := range res.Pieces {
		t.Rows = append(t.Rows, []string{
			p.Label, mm(p.X), mm(p.Y), mm(p.LengthMm), mm(p.WidthMm),
			string(p.Source), string(p.Status), mm(p.Rotation),
		})
	}
	return t
}

// CutTable has one row per cut record. Tile layouts only produce aggregate
// edge-cut records and get their own columns.
func CutTable(res model.LayoutResult) Table {
	tile := len(res.Cuts) > 0
	for _, c := range res.Cuts {
		if !c.IsTileCut() {
			tile = false
		}
	}

	if tile {
		t := Table{Name: "Cuts", Headers: []string{"EdgeCutCount", "Dimensions"}}
		for _, c := range res.Cuts {
			t.Rows = append(t.Rows, []string{strconv.Itoa(c.EdgeCutCount), c.CutDimensions})
		}
		return t
	}

	t := Table{
		Name:    "Cuts",
		Headers: []string{"Row", "CutType", "FromLength(mm)", "CutTo(mm)", "Offcut(mm)", "Width(mm)"},
	}
	for _, c := range res.Cuts {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(c.Row), string(c.CutType), mm(c.FromLengthMm),
			mm(c.CutToMm), mm(c.OffcutLengthMm), mm(c.WidthMm),
		})
	}
	return t
}

// RemainingTable lists unused stock and offcuts.
func RemainingTable(res model.LayoutResult) Table {
	t := Table{Name: "Remaining", Headers: []string{"Length(mm)", "Width(mm)", "Source"}}
	for _, r := range res.Remaining {
		t.Rows = append(t.Rows, []string{mm(r.LengthMm), mm(r.WidthMm), string(r.Source)})
	}
	return t
}

// PurchaseTable lists what still has to be bought.
func PurchaseTable(res model.LayoutResult) Table {
	t := Table{
		Name:    "Purchase",
		Headers: []string{"UnitLength(mm)", "UnitWidth(mm)", "Quantity", "Packs", "Unit", "EstimatedCost"},
	}
	for _, s := range res.Purchases {
		packs := ""
		if s.PacksNeeded != nil {
			packs = strconv.Itoa(*s.PacksNeeded)
		}
		cost := ""
		if s.EstimatedCost != nil {
			cost = money(*s.EstimatedCost)
		}
		qty := strconv.Itoa(s.QuantityNeeded())
		if s.UnitLengthMm == 0 && s.UnitWidthMm == 0 {
			qty = strconv.FormatFloat(s.QuantityValue, 'f', 2, 64)
		}
		t.Rows = append(t.Rows, []string{mm(s.UnitLengthMm), mm(s.UnitWidthMm), qty, packs, s.UnitName, cost})
	}
	return t
}

// Tables returns the four views in export order.
func Tables(res model.LayoutResult) []Table {
	return []Table{
		PlacementTable(res),
		CutTable(res),
		RemainingTable(res),
		PurchaseTable(res),
	}
}

// SummaryRows returns label/value pairs describing the result.
func SummaryRows(r Report) [][2]string {
	res := r.Result
	currency := r.Currency
	if currency == "" {
		currency = "EUR"
	}
	rows := [][2]string{
		{"Project", r.ProjectName},
		{"Material", r.Material.Name},
		{"Room", fmt.Sprintf("%.0f x %.0f mm", r.Room.BoundingLengthMm(), r.Room.BoundingWidthMm())},
		{"Usable area", fmt.Sprintf("%.2f m²", r.Room.UsableAreaM2())},
		{"Pieces", strconv.Itoa(len(res.Pieces))},
		{"From stock", strconv.Itoa(res.CountBySource(model.SourceStock))},
		{"From offcuts", strconv.Itoa(res.CountBySource(model.SourceOffcut))},
		{"To buy", strconv.Itoa(res.CountBySource(model.SourceNeeded))},
		{"Installed area", fmt.Sprintf("%.2f m²", res.InstalledAreaM2)},
		{"Needed area", fmt.Sprintf("%.2f m²", res.NeededAreaM2)},
		{"Waste area", fmt.Sprintf("%.2f m²", res.WasteAreaM2)},
		{"Surplus area", fmt.Sprintf("%.2f m²", res.SurplusAreaM2)},
		{"Total cost", fmt.Sprintf("%s %s", money(res.TotalCost), currency)},
	}
	if res.IsComplete() {
		rows = append(rows, [2]string{"Status", "Complete"})
	} else {
		rows = append(rows, [2]string{"Status", "Material needed"})
	}
	return rows
}
