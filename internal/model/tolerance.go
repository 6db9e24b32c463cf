package model

// Numeric limits shared by the model and the layout engine. Engine-only
// geometry tolerances live in the engine package.
const (
	// Epsilon absorbs floating point noise when comparing lengths and
	// rounding quantities up.
	Epsilon = 1e-9
	// CompleteToleranceM2 is the needed area below which a layout counts
	// as fully covered by stock.
	CompleteToleranceM2 = 0.01
	// MaxDimensionMm bounds every room length, gap and outline coordinate
	// (10 km).
	MaxDimensionMm = 1e7
)
