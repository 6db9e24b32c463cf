package engine

import (
	"fmt"
	"sync"

	"github.com/piwi3910/floorplan/internal/model"
)

// ComparisonScenario defines a named request variant to compare.
type ComparisonScenario struct {
	Name    string
	Request Request
}

// ComparisonResult holds the layout and computed statistics for a single
// scenario.
type ComparisonResult struct {
	Scenario     ComparisonScenario
	Result       model.LayoutResult
	Err          error
	PieceCount   int
	NeededCount  int
	CutCount     int
	NeededAreaM2 float64
	WasteAreaM2  float64
	WastePercent float64
	TotalCost    float64
}

// CompareScenarios runs the layout for each scenario and returns the
// results in scenario order. Scenarios are independent, so they run
// concurrently.
func CompareScenarios(scenarios []ComparisonScenario) []ComparisonResult {
	results := make([]ComparisonResult, len(scenarios))

	var wg sync.WaitGroup
	for i, scenario := range scenarios {
		wg.Add(1)
		go func(i int, scenario ComparisonScenario) {
			defer wg.Done()
			results[i] = runScenario(scenario)
		}(i, scenario)
	}
	wg.Wait()

	return results
}

func runScenario(scenario ComparisonScenario) ComparisonResult {
	result, err := Generate(scenario.Request)

	cuts := 0
	for _, c := range result.Cuts {
		if c.IsTileCut() {
			cuts += c.EdgeCutCount
		} else {
			cuts++
		}
	}

	covered := result.InstalledAreaM2 + result.NeededAreaM2
	wastePercent := 0.0
	if covered > 0 {
		wastePercent = result.WasteAreaM2 / covered * 100
	}

	return ComparisonResult{
		Scenario:     scenario,
		Result:       result,
		Err:          err,
		PieceCount:   len(result.Pieces),
		NeededCount:  result.CountBySource(model.SourceNeeded),
		CutCount:     cuts,
		NeededAreaM2: result.NeededAreaM2,
		WasteAreaM2:  result.WasteAreaM2,
		WastePercent: wastePercent,
		TotalCost:    result.TotalCost,
	}
}

// BuildDefaultScenarios generates a set of comparison scenarios based on
// the current request, varying key parameters to show what-if alternatives.
func BuildDefaultScenarios(base Request) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{Name: "Current Settings", Request: base},
	}

	switch algorithmFor(base).Kind() {
	case KindPlank:
		if base.Plank != nil {
			// Scenario: rows in the other direction
			turned := cloneRequest(base)
			if base.Plank.Direction == model.DirectionAlongWidth {
				turned.Plank.Direction = model.DirectionAlongLength
				scenarios = append(scenarios, ComparisonScenario{Name: "Along Length", Request: turned})
			} else {
				turned.Plank.Direction = model.DirectionAlongWidth
				scenarios = append(scenarios, ComparisonScenario{Name: "Along Width", Request: turned})
			}

			// Scenario: wider stagger
			wide := cloneRequest(base)
			wide.Plank.MinStaggerMm = base.Plank.MinStaggerMm * 1.5
			scenarios = append(scenarios, ComparisonScenario{
				Name:    fmt.Sprintf("Stagger %.0fmm", wide.Plank.MinStaggerMm),
				Request: wide,
			})
		}
	case KindGrid:
		if base.Tile != nil {
			// Scenario: the other grid pattern
			alt := cloneRequest(base)
			if base.Tile.Pattern == model.TileBrick {
				alt.Tile.Pattern = model.TileStraight
				scenarios = append(scenarios, ComparisonScenario{Name: "Straight Grid", Request: alt})
			} else {
				alt.Tile.Pattern = model.TileBrick
				scenarios = append(scenarios, ComparisonScenario{Name: "Brick Pattern", Request: alt})
			}
		}
	case KindContinuous:
		return scenarios
	}

	// Scenario: diagonal installation
	if !IsDiagonal(base.Room) {
		diag := cloneRequest(base)
		diag.Room.Pattern = model.PatternDiagonal
		diag.Room.AngleDegrees = 45
		scenarios = append(scenarios, ComparisonScenario{Name: "Diagonal 45°", Request: diag})
	}

	// Scenario: buy everything new
	if base.UseStock && len(base.Stock) > 0 {
		fresh := cloneRequest(base)
		fresh.UseStock = false
		scenarios = append(scenarios, ComparisonScenario{Name: "Ignore Stock", Request: fresh})
	}

	return scenarios
}

// cloneRequest copies the settings pointers so scenario edits stay local.
func cloneRequest(r Request) Request {
	if r.Plank != nil {
		p := *r.Plank
		r.Plank = &p
	}
	if r.Tile != nil {
		t := *r.Tile
		r.Tile = &t
	}
	return r
}
